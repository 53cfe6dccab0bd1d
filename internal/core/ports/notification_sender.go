package ports

import (
	"context"
)

// NotificationChannel selects the delivery medium for a notification.
type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "sms"
	ChannelEmail NotificationChannel = "email"
	ChannelPush  NotificationChannel = "push"
)

// Notification is one outbound message to a merchant, customer or rider.
type Notification struct {
	Recipient string
	Channel   NotificationChannel
	Title     string
	Body      string
	Data      map[string]string
}

// NotificationSender delivers notifications fire-and-forget. Implementations
// must not block the caller on delivery; failures are logged, never returned
// to the business operation that triggered the send.
type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

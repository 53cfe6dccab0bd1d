// Package rmq provides RabbitMQ-backed implementations of the outbound
// messaging ports. All publishers share one connection and one durable topic
// exchange; routing keys carry the audience so consumers bind only to what
// they care about.
package rmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"parcelhub/internal/pkg/errs"
)

// Client wraps an AMQP connection and channel bound to a single topic
// exchange. It is the shared transport for the event, notification and audit
// publishers.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewClient dials the broker and declares the topic exchange. The exchange is
// durable so published facts survive a broker restart.
func NewClient(url, exchange string) (*Client, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Close releases the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return fmt.Errorf("close channel: %w", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}
	return nil
}

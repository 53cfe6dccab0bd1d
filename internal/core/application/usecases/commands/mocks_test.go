package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/pickup"
	"parcelhub/internal/core/domain/model/riderloc"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, sh *shipment.Shipment) error {
	args := m.Called(ctx, sh)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, sh *shipment.Shipment) error {
	args := m.Called(ctx, sh)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByAWB(ctx context.Context, awb shipment.AWB) (*shipment.Shipment, error) {
	args := m.Called(ctx, awb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllByAWBs(ctx context.Context, awbs []shipment.AWB) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, awbs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllByManifest(ctx context.Context, manifestID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, manifestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllInDeliveryOlderThan(ctx context.Context, cutoff time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllInTransitNotUpdatedSince(ctx context.Context, cutoff time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockManifestRepository struct{ mock.Mock }

func (m *MockManifestRepository) Add(ctx context.Context, mf *manifest.Manifest) error {
	args := m.Called(ctx, mf)
	return args.Error(0)
}

func (m *MockManifestRepository) Update(ctx context.Context, mf *manifest.Manifest) error {
	args := m.Called(ctx, mf)
	return args.Error(0)
}

func (m *MockManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) GetByNumber(ctx context.Context, number string) (*manifest.Manifest, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) NextNumberForDay(ctx context.Context, day time.Time) (string, error) {
	args := m.Called(ctx, day)
	return args.String(0), args.Error(1)
}

type MockPickupRepository struct{ mock.Mock }

func (m *MockPickupRepository) Add(ctx context.Context, p *pickup.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupRepository) Update(ctx context.Context, p *pickup.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Pickup), args.Error(1)
}

type MockRiderLocationRepository struct{ mock.Mock }

func (m *MockRiderLocationRepository) Add(ctx context.Context, ping *riderloc.RiderLocation) error {
	args := m.Called(ctx, ping)
	return args.Error(0)
}

func (m *MockRiderLocationRepository) GetFirstForShipment(ctx context.Context, shipmentID kernel.UUID) (*riderloc.RiderLocation, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*riderloc.RiderLocation), args.Error(1)
}

func (m *MockRiderLocationRepository) GetTrailForShipment(ctx context.Context, shipmentID kernel.UUID) ([]*riderloc.RiderLocation, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*riderloc.RiderLocation), args.Error(1)
}

// MockUoW satisfies every unit-of-work shape the handlers need.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) ManifestRepository() ports.ManifestRepository {
	args := m.Called()
	return args.Get(0).(ports.ManifestRepository)
}

func (m *MockUoW) PickupRepository() ports.PickupRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupRepository)
}

func (m *MockUoW) RiderLocationRepository() ports.RiderLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderLocationRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockManifestUoWFactory struct{ mock.Mock }

func (m *MockManifestUoWFactory) Create() commands.ManifestUoW {
	args := m.Called()
	return args.Get(0).(commands.ManifestUoW)
}

type MockPickupUoWFactory struct{ mock.Mock }

func (m *MockPickupUoWFactory) Create() commands.PickupUoW {
	args := m.Called()
	return args.Get(0).(commands.PickupUoW)
}

type MockRiderLocationUoWFactory struct{ mock.Mock }

func (m *MockRiderLocationUoWFactory) Create() commands.RiderLocationUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderLocationUoW)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) Send(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockAuditLogger struct{ mock.Mock }

func (m *MockAuditLogger) Append(ctx context.Context, entry ports.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// FakeCache is an in-memory stand-in with real key semantics so dedup tests
// can run the sweep twice against the same marker state.
type FakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	// Published records topic/payload pairs in publish order.
	Published []string
}

func NewFakeCache() *FakeCache {
	return &FakeCache{entries: make(map[string]string)}
}

func (c *FakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return "", errs.NewObjectNotFoundError("cache key", key)
	}
	return v, nil
}

func (c *FakeCache) SetWithTTL(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *FakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *FakeCache) Publish(_ context.Context, topic, payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Published = append(c.Published, topic+" "+payload)
	return nil
}

func (c *FakeCache) Expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// restoreTestShipment builds a persisted-looking shipment for handler tests.
type testShipmentParams struct {
	status     shipment.Status
	hub        *kernel.HubCode
	riderID    *kernel.UUID
	manifestID *kernel.UUID
	otp        *string
	method     shipment.PaymentMethod
	codAmount  decimal.Decimal
	attempts   int
	createdAt  time.Time
	updatedAt  time.Time
}

func restoreTestShipment(t *testing.T, awb string, p testShipmentParams) *shipment.Shipment {
	t.Helper()

	parsed, err := shipment.AWBFromString(awb)
	require.NoError(t, err)

	if p.method == shipment.PaymentMethodUnknown {
		p.method = shipment.Prepaid
	}
	paymentStatus := shipment.PaymentCollected
	if p.method == shipment.COD {
		paymentStatus = shipment.PaymentPending
	}
	if p.createdAt.IsZero() {
		p.createdAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	if p.updatedAt.IsZero() {
		p.updatedAt = p.createdAt
	}

	sh, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:               kernel.NewUUID(),
		AWB:              parsed,
		MerchantID:       kernel.NewUUID(),
		Status:           p.status,
		ReceiverName:     "Asha Rao",
		ReceiverPhone:    "9876543210",
		ReceiverAddress:  "12 Lake View Road",
		CurrentHub:       p.hub,
		RiderID:          p.riderID,
		ManifestID:       p.manifestID,
		OTPCode:          p.otp,
		DeliveryAttempts: p.attempts,
		PaymentMethod:    p.method,
		CODAmount:        p.codAmount,
		PaymentStatus:    paymentStatus,
		CreatedAt:        p.createdAt,
		UpdatedAt:        p.updatedAt,
		Version:          1,
	})
	require.NoError(t, err)
	return sh
}

// nowOfCall mirrors the handlers' own clock. Manifest numbers embed the
// calendar day, so mocked numbers must share the handler's date.
func nowOfCall() time.Time { return time.Now().UTC() }

func mustAWB(t *testing.T, s string) shipment.AWB {
	t.Helper()

	awb, err := shipment.AWBFromString(s)
	require.NoError(t, err)
	return awb
}

func mustHubCode(t *testing.T, s string) kernel.HubCode {
	t.Helper()

	hub, err := kernel.NewHubCode(s)
	require.NoError(t, err)
	return hub
}

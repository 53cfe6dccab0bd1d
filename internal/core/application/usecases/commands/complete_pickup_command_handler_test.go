package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pickup"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	scheduled := time.Now().UTC().Add(24 * time.Hour)

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Asha Rao", "9876543210", "12 Lake View Road",
		shipment.COD, decimal.NewFromInt(1499),
		scheduled, nil,
	)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	pickupRepo := new(MockPickupRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PickupRepository").Return(pickupRepo)
	shipmentRepo.On("Add", ctx, mock.MatchedBy(func(sh *shipment.Shipment) bool {
		return sh.Status() == shipment.Pending && sh.PaymentStatus() == shipment.PaymentPending
	})).Return(nil).Once()
	pickupRepo.On("Add", ctx, mock.MatchedBy(func(p *pickup.Pickup) bool {
		return p.Status() == pickup.Pending
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory)
	awb, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, awb.Validate())
	shipmentRepo.AssertExpectations(t)
	pickupRepo.AssertExpectations(t)
}

func TestCompletePickupCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pickupID := kernel.NewUUID()
	agent := kernel.NewUUID()

	pk, err := pickup.RestorePickup(
		pickupID, kernel.NewUUID(), &agent,
		pickup.Assigned, time.Now().UTC(), nil, 2,
	)
	require.NoError(t, err)

	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{status: shipment.PickupAssigned})

	cmd, err := commands.NewCompletePickupCommand(pickupID, sh.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	pickupRepo := new(MockPickupRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PickupRepository").Return(pickupRepo)
	pickupRepo.On("Get", ctx, pickupID).Return(pk, nil).Once()
	shipmentRepo.On("Get", ctx, sh.ID()).Return(sh, nil).Once()
	pickupRepo.On("Update", ctx, pk).Return(nil).Once()
	shipmentRepo.On("Update", ctx, sh).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompletePickupCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, pickup.Completed, pk.Status())
	assert.Equal(t, shipment.PickedUp, sh.Status())
	require.NotNil(t, pk.CompletedAt())
}

func TestCompletePickupCommandHandler_Handle_WrongShipmentState(t *testing.T) {
	ctx := t.Context()
	pickupID := kernel.NewUUID()
	agent := kernel.NewUUID()

	pk, err := pickup.RestorePickup(
		pickupID, kernel.NewUUID(), &agent,
		pickup.Assigned, time.Now().UTC(), nil, 2,
	)
	require.NoError(t, err)

	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{status: shipment.Pending})

	cmd, err := commands.NewCompletePickupCommand(pickupID, sh.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	pickupRepo := new(MockPickupRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PickupRepository").Return(pickupRepo)
	pickupRepo.On("Get", ctx, pickupID).Return(pk, nil).Once()
	shipmentRepo.On("Get", ctx, sh.ID()).Return(sh, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompletePickupCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}

package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOutboundScanCommand_Validation(t *testing.T) {
	origin := mustHubCode(t, "BLR-01")
	next := mustHubCode(t, "MAA-01")
	rider := kernel.NewUUID()
	awbs := []shipment.AWB{mustAWB(t, "PH0000000001")}

	t.Run("rejects both destinations", func(t *testing.T) {
		_, err := commands.NewOutboundScanCommand(awbs, origin, &next, &rider)
		require.ErrorIs(t, err, commands.ErrOutboundDestinationIsAmbiguous)
	})

	t.Run("rejects neither destination", func(t *testing.T) {
		_, err := commands.NewOutboundScanCommand(awbs, origin, nil, nil)
		require.ErrorIs(t, err, commands.ErrOutboundDestinationIsAmbiguous)
	})
}

func TestOutboundScanCommandHandler_Handle_ToRider(t *testing.T) {
	ctx := t.Context()
	origin := mustHubCode(t, "BLR-01")
	rider := kernel.NewUUID()
	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.InHub, hub: &origin,
	})

	cmd, err := commands.NewOutboundScanCommand([]shipment.AWB{sh.AWB()}, origin, nil, &rider)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetAllByAWBs", ctx, cmd.AWBs()).Return([]*shipment.Shipment{sh}, nil).Once()
	repo.On("Update", ctx, sh).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOutboundScanCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.OutForDelivery, sh.Status())
	require.NotNil(t, sh.RiderID())
	assert.True(t, sh.RiderID().IsEqual(rider))
}

func TestOutboundScanCommandHandler_Handle_ToHub(t *testing.T) {
	ctx := t.Context()
	origin := mustHubCode(t, "BLR-01")
	next := mustHubCode(t, "MAA-01")
	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.InHub, hub: &origin,
	})

	cmd, err := commands.NewOutboundScanCommand([]shipment.AWB{sh.AWB()}, origin, &next, nil)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetAllByAWBs", ctx, cmd.AWBs()).Return([]*shipment.Shipment{sh}, nil).Once()
	repo.On("Update", ctx, sh).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOutboundScanCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.InTransit, sh.Status())
	require.NotNil(t, sh.NextHub())
	assert.True(t, sh.NextHub().IsEqual(next))
}

func TestOutboundScanCommandHandler_Handle_RejectsWrongHub(t *testing.T) {
	ctx := t.Context()
	origin := mustHubCode(t, "BLR-01")
	elsewhere := mustHubCode(t, "DEL-01")
	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.InHub, hub: &elsewhere,
	})

	cmd, err := commands.NewOutboundScanCommand(
		[]shipment.AWB{sh.AWB()}, origin, nil, ptr(kernel.NewUUID()),
	)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetAllByAWBs", ctx, cmd.AWBs()).Return([]*shipment.Shipment{sh}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOutboundScanCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBatchRejected)
	assert.Equal(t, shipment.InHub, sh.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func ptr[T any](v T) *T { return &v }

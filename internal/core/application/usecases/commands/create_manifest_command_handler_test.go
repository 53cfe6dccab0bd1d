package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateManifestCommand_Validation(t *testing.T) {
	hub := mustHubCode(t, "BLR-01")
	awbs := []shipment.AWB{mustAWB(t, "PH0000000001")}

	t.Run("rejects identical hubs", func(t *testing.T) {
		_, err := commands.NewCreateManifestCommand(kernel.NewUUID(), awbs, hub, hub)
		require.ErrorIs(t, err, commands.ErrManifestHubsAreEqual)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		_, err := commands.NewCreateManifestCommand(
			kernel.NewUUID(), nil, hub, mustHubCode(t, "MAA-01"),
		)
		require.ErrorIs(t, err, commands.ErrNoAWBsInBatch)
	})
}

func TestCreateManifestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	origin := mustHubCode(t, "BLR-01")
	destination := mustHubCode(t, "MAA-01")
	manifestID := kernel.NewUUID()

	a := restoreTestShipment(t, "PH0000000001", testShipmentParams{status: shipment.InHub, hub: &origin})
	b := restoreTestShipment(t, "PH0000000002", testShipmentParams{status: shipment.InHub, hub: &origin})

	cmd, err := commands.NewCreateManifestCommand(
		manifestID, []shipment.AWB{a.AWB(), b.AWB()}, origin, destination,
	)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("ManifestRepository").Return(manifestRepo)
	shipmentRepo.On("GetAllByAWBs", ctx, cmd.AWBs()).Return([]*shipment.Shipment{a, b}, nil).Once()
	manifestRepo.On("NextNumberForDay", ctx, mock.AnythingOfType("time.Time")).
		Return(manifest.FormatNumber(nowOfCall(), 7), nil).Once()
	manifestRepo.On("Add", ctx, mock.AnythingOfType("*manifest.Manifest")).
		Run(func(args mock.Arguments) {
			mf := args.Get(1).(*manifest.Manifest)
			// dispatched the instant it is created
			assert.Equal(t, manifest.InTransit, mf.Status())
			assert.Equal(t, 2, mf.TotalShipments())
		}).Return(nil).Once()
	shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateManifestCommandHandler(factory)
	number, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, manifest.FormatNumber(nowOfCall(), 7), number)
	assert.Equal(t, shipment.InTransit, a.Status())
	require.NotNil(t, a.ManifestID())
	assert.True(t, a.ManifestID().IsEqual(manifestID))
	require.NotNil(t, a.NextHub())
	assert.True(t, a.NextHub().IsEqual(destination))
	manifestRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestCreateManifestCommandHandler_Handle_RejectsShipmentElsewhere(t *testing.T) {
	ctx := t.Context()
	origin := mustHubCode(t, "BLR-01")
	destination := mustHubCode(t, "MAA-01")
	elsewhere := mustHubCode(t, "DEL-01")

	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{status: shipment.InHub, hub: &elsewhere})

	cmd, err := commands.NewCreateManifestCommand(
		kernel.NewUUID(), []shipment.AWB{sh.AWB()}, origin, destination,
	)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	shipmentRepo.On("GetAllByAWBs", ctx, cmd.AWBs()).Return([]*shipment.Shipment{sh}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateManifestCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBatchRejected)
	uow.AssertNotCalled(t, "ManifestRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

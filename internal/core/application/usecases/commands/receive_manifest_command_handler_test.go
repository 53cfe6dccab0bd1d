package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiveManifestCommandHandler_Handle_PartialMatch(t *testing.T) {
	ctx := t.Context()
	origin := mustHubCode(t, "BLR-01")
	destination := mustHubCode(t, "MAA-01")
	manifestID := kernel.NewUUID()
	dispatchAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	expected1 := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.InTransit, manifestID: &manifestID,
	})
	expected2 := restoreTestShipment(t, "PH0000000002", testShipmentParams{
		status: shipment.InTransit, manifestID: &manifestID,
	})
	stray := mustAWB(t, "PH0000000009")

	mf, err := manifest.RestoreManifest(
		manifestID, manifest.FormatNumber(dispatchAt, 1),
		origin, destination, manifest.InTransit, 2,
		dispatchAt, nil, "", 1,
	)
	require.NoError(t, err)

	// expected1 and a stray parcel were scanned; expected2 never arrived
	cmd, err := commands.NewReceiveManifestCommand(manifestID, []shipment.AWB{expected1.AWB(), stray})
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("ManifestRepository").Return(manifestRepo)
	manifestRepo.On("Get", ctx, manifestID).Return(mf, nil).Once()
	shipmentRepo.On("GetAllByManifest", ctx, manifestID).
		Return([]*shipment.Shipment{expected1, expected2}, nil).Once()
	shipmentRepo.On("Update", ctx, expected1).Return(nil).Once()
	manifestRepo.On("Update", ctx, mf).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReceiveManifestCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{expected1.AWB().String()}, result.Received)
	assert.Equal(t, []string{stray.String()}, result.NotInManifest)
	assert.Equal(t, []string{expected2.AWB().String()}, result.NotReceived)

	// only the intersection changes status
	assert.Equal(t, shipment.InHub, expected1.Status())
	assert.Equal(t, shipment.InTransit, expected2.Status())

	// the manifest is received regardless of the discrepancies
	assert.Equal(t, manifest.Received, mf.Status())
	assert.Contains(t, mf.Notes(), "not received")
	assert.Contains(t, mf.Notes(), "not in manifest")
	shipmentRepo.AssertExpectations(t)
	manifestRepo.AssertExpectations(t)
}

// A member cancelled after dispatch keeps its manifest link and can still be
// scanned at the dock. The receipt must complete anyway, reporting the dead
// parcel with the missing goods rather than failing on its status.
func TestReceiveManifestCommandHandler_Handle_CancelledMemberBecomesDiscrepancy(t *testing.T) {
	ctx := t.Context()
	manifestID := kernel.NewUUID()
	dispatchAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	alive := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.InTransit, manifestID: &manifestID,
	})
	dead := restoreTestShipment(t, "PH0000000002", testShipmentParams{
		status: shipment.Cancelled, manifestID: &manifestID,
	})

	mf, err := manifest.RestoreManifest(
		manifestID, manifest.FormatNumber(dispatchAt, 1),
		mustHubCode(t, "BLR-01"), mustHubCode(t, "MAA-01"),
		manifest.InTransit, 2,
		dispatchAt, nil, "", 1,
	)
	require.NoError(t, err)

	store := newMemStore()
	store.shipments[alive.ID().String()] = alive
	store.shipments[dead.ID().String()] = dead
	store.manifests[manifestID.String()] = mf

	cmd, err := commands.NewReceiveManifestCommand(manifestID, []shipment.AWB{alive.AWB(), dead.AWB()})
	require.NoError(t, err)

	h := commands.NewReceiveManifestCommandHandler(&memManifestUoWFactory{uow: &memUoW{store: store}})
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{alive.AWB().String()}, result.Received)
	assert.Equal(t, []string{dead.AWB().String()}, result.NotReceived)
	assert.Empty(t, result.NotInManifest)

	assert.Equal(t, shipment.InHub, alive.Status())
	assert.Equal(t, shipment.Cancelled, dead.Status())
	assert.Equal(t, manifest.Received, mf.Status())
	assert.Contains(t, mf.Notes(), "not received: "+dead.AWB().String())
}

func TestReceiveManifestCommandHandler_Handle_AlreadyReceived(t *testing.T) {
	ctx := t.Context()
	manifestID := kernel.NewUUID()
	dispatchAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	receivedAt := dispatchAt.Add(6 * time.Hour)

	mf, err := manifest.RestoreManifest(
		manifestID, manifest.FormatNumber(dispatchAt, 1),
		mustHubCode(t, "BLR-01"), mustHubCode(t, "MAA-01"),
		manifest.Received, 1,
		dispatchAt, &receivedAt, "received 1 shipments, no discrepancies", 2,
	)
	require.NoError(t, err)

	cmd, err := commands.NewReceiveManifestCommand(manifestID, nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("ManifestRepository").Return(manifestRepo)
	manifestRepo.On("Get", ctx, manifestID).Return(mf, nil).Once()
	shipmentRepo.On("GetAllByManifest", ctx, manifestID).Return([]*shipment.Shipment{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReceiveManifestCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}

package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateOtpCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	rider := kernel.NewUUID()
	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.OutForDelivery, riderID: &rider,
	})

	cmd, err := commands.NewGenerateOtpCommand(sh.AWB(), rider)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetByAWB", ctx, sh.AWB()).Return(sh, nil).Once()
	repo.On("Update", ctx, sh).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationSender)
	notifier.On("Send", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		// the code goes to the receiver's phone, never to the rider
		return n.Recipient == sh.ReceiverPhone() && n.Channel == ports.ChannelSMS
	})).Return(nil).Once()

	h := commands.NewGenerateOtpCommandHandler(factory, notifier, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, sh.OTPCode())
	assert.Len(t, *sh.OTPCode(), 6)
	notifier.AssertExpectations(t)
}

func TestGenerateOtpCommandHandler_Handle_NotAssigned(t *testing.T) {
	ctx := t.Context()
	assigned := kernel.NewUUID()
	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.OutForDelivery, riderID: &assigned,
	})

	cmd, err := commands.NewGenerateOtpCommand(sh.AWB(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetByAWB", ctx, sh.AWB()).Return(sh, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationSender)

	h := commands.NewGenerateOtpCommandHandler(factory, notifier, discardLogger())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAssigned)
	assert.Nil(t, sh.OTPCode())
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestGenerateOtpCommandHandler_Handle_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	rider := kernel.NewUUID()
	sh := restoreTestShipment(t, "PH0000000001", testShipmentParams{
		status: shipment.OutForDelivery, riderID: &rider,
	})

	cmd, err := commands.NewGenerateOtpCommand(sh.AWB(), rider)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetByAWB", ctx, sh.AWB()).Return(sh, nil).Once()
	repo.On("Update", ctx, sh).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationSender)
	notifier.On("Send", ctx, mock.AnythingOfType("ports.Notification")).
		Return(assert.AnError).Once()

	h := commands.NewGenerateOtpCommandHandler(factory, notifier, discardLogger())

	// a dead sms gateway must not fail the issued code
	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, sh.OTPCode())
}

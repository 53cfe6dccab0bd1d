package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestWriteError_MapsErrorClassesToStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", errs.NewObjectNotFoundError("awb", "PH0000000001"), http.StatusNotFound},
		{"state conflict", errs.NewInvalidStateTransitionError("shipment", "pending", "delivered"), http.StatusConflict},
		{"version conflict", errs.NewConcurrentModificationError("shipment", "abc"), http.StatusConflict},
		{"wrong otp", errs.NewInvalidOtpError("PH0000000001"), http.StatusUnprocessableEntity},
		{"cod mismatch", errs.NewCodMismatchError("PH0000000001", "1499", "1400"), http.StatusUnprocessableEntity},
		{"not assigned", errs.NewNotAssignedError("rider-1", "PH0000000001"), http.StatusUnprocessableEntity},
		{"forbidden", services.ErrActionNotPermitted, http.StatusForbidden},
		{"missing value", errs.NewValueIsRequiredError("reason"), http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("hub"), http.StatusBadRequest},
		{"unclassified", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newTestContext(t, nil)

			require.NoError(t, writeError(ctx, tc.err))
			assert.Equal(t, tc.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteError_BatchRejectionListsEveryFailure(t *testing.T) {
	ctx, rec := newTestContext(t, nil)

	err := commands.NewBatchValidationError([]commands.BatchFailure{
		{AWB: "PH0000000001", Reason: "unknown tracking number"},
		{AWB: "PH0000000002", Reason: "invalid state transition"},
	})

	require.NoError(t, writeError(ctx, err))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Failures, 2)
	assert.Equal(t, "PH0000000001", body.Failures[0].AWB)
	assert.Equal(t, "unknown tracking number", body.Failures[0].Reason)
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	ctx, rec := newTestContext(t, nil)

	require.NoError(t, writeError(ctx, assert.AnError))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body.Message)
}

func TestActorFromContext(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("reads identity headers", func(t *testing.T) {
		ctx, _ := newTestContext(t, map[string]string{
			HeaderActorID:   id.String(),
			HeaderActorRole: "hub_staff",
		})

		actor, err := actorFromContext(ctx)
		require.NoError(t, err)
		assert.True(t, actor.ID.IsEqual(id))
		assert.Equal(t, services.RoleHubStaff, actor.Role)
	})

	t.Run("rejects missing headers", func(t *testing.T) {
		ctx, _ := newTestContext(t, nil)

		_, err := actorFromContext(ctx)
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		ctx, _ := newTestContext(t, map[string]string{
			HeaderActorID:   id.String(),
			HeaderActorRole: "superuser",
		})

		_, err := actorFromContext(ctx)
		require.Error(t, err)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		ctx, _ := newTestContext(t, map[string]string{
			HeaderActorID:   "not-a-uuid",
			HeaderActorRole: "rider",
		})

		_, err := actorFromContext(ctx)
		require.Error(t, err)
	})
}

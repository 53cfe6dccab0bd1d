package http

import (
	"errors"
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Code     int                    `json:"code"`
	Message  string                 `json:"message"`
	Failures []BatchFailureResponse `json:"failures,omitempty"`
}

// BatchFailureResponse names one tracking number that caused a batch to be
// rejected.
type BatchFailureResponse struct {
	AWB    string `json:"awb"`
	Reason string `json:"reason"`
}

// writeError maps an application error onto an HTTP status. The mapping
// follows the error class, not the operation: not-found is 404, a state or
// version conflict is 409, a business precondition miss is 422, bad input
// is 400.
func writeError(ctx echo.Context, err error) error {
	var batchErr *commands.BatchValidationError
	if errors.As(err, &batchErr) {
		failures := make([]BatchFailureResponse, 0, len(batchErr.Failures))
		for _, f := range batchErr.Failures {
			failures = append(failures, BatchFailureResponse{AWB: f.AWB, Reason: f.Reason})
		}
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:     http.StatusUnprocessableEntity,
			Message:  "batch rejected; no shipment in the request was changed",
			Failures: failures,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrConcurrentModification):
		return respond(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrInvalidOtp),
		errors.Is(err, errs.ErrCodMismatch),
		errors.Is(err, errs.ErrNotAssigned):
		return respond(ctx, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrActionNotPermitted):
		return respond(ctx, http.StatusForbidden, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return respond(ctx, http.StatusBadRequest, err)
	}

	// Internal detail stays out of the response body.
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}

func respond(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

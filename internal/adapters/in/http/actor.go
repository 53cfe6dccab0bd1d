package http

import (
	"fmt"
	"net/http"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the API gateway after authentication. The service
// trusts them; it never sees credentials.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// actorFromContext reads the authenticated caller from the identity headers.
func actorFromContext(ctx echo.Context) (services.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderActorID)
	rawRole := ctx.Request().Header.Get(HeaderActorRole)
	if rawID == "" || rawRole == "" {
		return services.Actor{}, fmt.Errorf("missing %s or %s header", HeaderActorID, HeaderActorRole)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return services.Actor{}, fmt.Errorf("invalid %s header: %w", HeaderActorID, err)
	}

	role, err := services.RoleFromString(rawRole)
	if err != nil {
		return services.Actor{}, fmt.Errorf("invalid %s header: %w", HeaderActorRole, err)
	}

	return services.Actor{ID: id, Role: role}, nil
}

func unauthorized(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: err.Error(),
	})
}

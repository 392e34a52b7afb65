package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/api/middleware"
	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// actor extracts the authenticated user injected by the Auth middleware and
// fast-fails before any service call: presence proves the middleware ran, and
// a CLIENT_ADMIN without a tenant is structurally valid but operationally
// unusable, so it is rejected with 401.
func actor(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(middleware.ActorKey).(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if u.Role == domain.RoleClientAdmin && u.ClientID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "account missing client identity")
	}
	return u, nil
}

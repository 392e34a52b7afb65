package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// RBAC enforces role-based access control plus the tenancy rule: a
// CLIENT_ADMIN addressing another tenant's data (via the clientId path or
// query parameter) is denied even when the role check passes. Admins bypass
// tenant scoping entirely.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(ActorKey).(*domain.User)
			if actor == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			if len(allowed) > 0 {
				if _, ok := allowed[actor.Role]; !ok {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
			}

			if actor.Role == domain.RoleClientAdmin {
				requested := c.Param("clientId")
				if requested == "" {
					requested = c.QueryParam("client_id")
				}
				if requested != "" && requested != actor.ClientID {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden: other client's data")
				}
			}

			return next(c)
		}
	}
}

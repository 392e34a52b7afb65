package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/core/ports"
	"github.com/ecotriz/cee-visits/internal/pkg/auth"
)

// ActorKey is the context key under which the authenticated user is stored.
const ActorKey = "actor"

// Auth validates the bearer token, rejects revoked sessions, and loads the
// account behind the token's subject into the request context. Loading from
// the store (rather than trusting embedded claims) means role or tenant
// changes take effect on the next request, and deleted accounts lose access
// immediately.
func Auth(secret string, users ports.UserRepository, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := auth.ValidateToken(parts[1], secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if claims.TokenID != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					return err
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			actor, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

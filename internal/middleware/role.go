package middleware

import (
	"net/http"

	"staymart/internal/common"
	"staymart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// RequireRole loads the authenticated caller and rejects the request unless
// their role is in the allowed set. It must run after RequireSession. The
// legacy service shipped admin actions with no role check at all; this gate
// closes that gap.
func RequireRole(users repositories.UserRepository, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Login first to access this page")
			}

			user, err := users.GetByID(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			if !allowed[user.Role] {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to perform this action")
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"
	"strings"

	"staymart/internal/common"
	"staymart/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireSession is the auth gate: it locates the session token in the
// session cookie or the Authorization header, verifies it, and puts the
// resolved user id into the request context. It is a pure pass/fail filter;
// no business logic lives here.
func RequireSession(tokens *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if cookie, err := c.Cookie(services.SessionCookieName); err == nil && cookie.Value != "" {
				raw = cookie.Value
			} else if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Login first to access this page")
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
			}

			ctx := common.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

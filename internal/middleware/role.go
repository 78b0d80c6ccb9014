package middleware

import (
	"github.com/labstack/echo/v4"

	"cardvault/internal/auth"
	"cardvault/internal/errors"
	"cardvault/internal/model"
)

// RequireRole asks the authorization gate whether the session principal
// holds one of the allowed roles. Ownership rules are applied further down,
// in the services, where the resource's owner is known.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := auth.Authorize(Principal(c), roles, nil)
			if !decision.Allowed {
				err := errors.ErrForbidden
				if decision.Reason == auth.DenyLoginRequired {
					err = errors.ErrLoginRequired
				}
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

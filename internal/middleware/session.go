package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"cardvault/internal/auth"
	"cardvault/internal/errors"
)

const principalContextKey = "principal"

// CookieAuth validates the signed session cookie. It only proves the token
// was issued by us; LoadPrincipal must follow it to check the session is
// still alive server-side.
func CookieAuth(mgr *auth.SessionManager) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  mgr.Secret(),
		TokenLookup: "cookie:" + auth.SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := errors.MapErrorToHTTP(errors.ErrLoginRequired)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// LoadPrincipal resolves the validated cookie claims against the session
// store and puts the live principal in the request context. A destroyed or
// expired session fails here even though its signature is still valid.
func LoadPrincipal(mgr *auth.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized()
			}
			claims, ok := token.Claims.(*auth.SessionClaims)
			if !ok {
				return unauthorized()
			}

			principal, err := mgr.Lookup(c.Request().Context(), claims.SessionID)
			if err != nil {
				if err == auth.ErrNoSession {
					return unauthorized()
				}
				c.Logger().Errorf("session lookup: %v", err)
				return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// Principal returns the session principal set by LoadPrincipal, or nil on
// an unauthenticated request.
func Principal(c echo.Context) *auth.Principal {
	p, _ := c.Get(principalContextKey).(*auth.Principal)
	return p
}

func unauthorized() error {
	httpErr := errors.MapErrorToHTTP(errors.ErrLoginRequired)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

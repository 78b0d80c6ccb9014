package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardvault/internal/errors"
)

// respondError maps a service error onto the HTTP taxonomy. Store-layer
// detail is logged server-side with the failed action; the client only ever
// sees the generic taxonomy message.
func respondError(c echo.Context, action string, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s: %v", action, err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

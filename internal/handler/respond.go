package handler

import (
	stderrors "errors"

	"github.com/labstack/echo/v4"

	"stockroom/internal/errors"
)

// respondError translates a domain error into the standard error envelope.
func respondError(c echo.Context, err error) error {
	var httpErr *errors.HTTPError
	if !stderrors.As(err, &httpErr) {
		httpErr = errors.MapErrorToHTTP(err)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

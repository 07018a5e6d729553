package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelkins/studyplanner/internal/common"
)

// errorPayload is the JSON shape of every error response:
//
//	{"statusCode": 404, "error": "Not Found", "message": "not found"}
type errorPayload struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// httpErrorHandler maps sentinel errors from the service layer to HTTP
// status codes and renders the uniform error payload. Unexpected errors
// become a generic 500; their details are only logged.
func (s *HTTPServer) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		message = fmt.Sprint(he.Message)
	case errors.Is(err, common.ErrorValidation):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, common.ErrorForbidden):
		code = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, common.ErrorNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, common.ErrorConflict):
		code = http.StatusConflict
		message = err.Error()
	default:
		s.logger.Error(c.Request().Context(), err.Error())
	}

	payload := errorPayload{StatusCode: code, Error: http.StatusText(code), Message: message}

	if err := c.JSON(code, payload); err != nil {
		s.logger.Error(c.Request().Context(), err.Error())
	}
}

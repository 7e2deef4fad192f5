package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// statusFor maps an error returned by a handler to an HTTP status and the
// message shown to the client. Unknown errors become an opaque 500.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else if e, ok := he.Message.(error); ok {
			msg = e.Error()
		}
		return he.Code, msg
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorNotFound):
		code = http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorForbidden):
		code = http.StatusUnauthorized
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		code = http.StatusForbidden
	case errors.Is(err, common.ErrorConflict):
		code = http.StatusConflict
	case errors.Is(err, common.ErrorValidation):
		code = http.StatusBadRequest
	}
	if code == http.StatusInternalServerError {
		return code, "Internal Server Error"
	}

	var ce *common.Error
	if errors.As(err, &ce) && ce.Message != "" {
		return code, ce.Message
	}
	return code, http.StatusText(code)
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := statusFor(err)
	ctx := c.Request().Context()
	if code >= http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{StatusCode: code, Message: msg})
	}
	if err != nil {
		s.logger.Error(ctx, "write error response", "error", fmt.Sprint(err))
	}
}

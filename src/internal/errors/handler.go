package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error      string    `json:"error"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	Path       string    `json:"path,omitempty"`
	Method     string    `json:"method,omitempty"`
	StatusCode int       `json:"status_code"`
}

// ErrorHandler maps application errors onto HTTP responses
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HTTPErrorHandler handles HTTP errors for Echo
func (h *ErrorHandler) HTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message = "internal server error"
		errType = string(ErrorTypeDatabase)
	)

	var appErr *AppError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &appErr):
		code = appErr.StatusCode
		message = appErr.Message
		errType = string(appErr.Type)
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
		if code == http.StatusNotFound {
			errType = string(ErrorTypeNotFound)
		} else if code < http.StatusInternalServerError {
			errType = string(ErrorTypeValidation)
		}
	}

	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"error", err,
			"path", c.Request().URL.Path,
			"method", c.Request().Method,
		)
	}

	if c.Response().Committed {
		return
	}

	resp := ErrorResponse{
		Error:      message,
		Type:       errType,
		Timestamp:  time.Now().UTC(),
		Path:       c.Request().URL.Path,
		Method:     c.Request().Method,
		StatusCode: code,
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, resp)
	}
	if err != nil {
		h.logger.Error("failed to send error response", "error", err)
	}
}

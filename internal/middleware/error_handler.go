package middleware

import (
	"errors"
	"net/http"

	"devMart/pkg/logger"
	jsonres "devMart/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler for errors that escaped the
// handlers (bad routes, panics recovered by the Recover middleware).
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	} else {
		logger.Error("Unhandled request error", err)
	}

	if jsonErr := c.JSON(code, jsonres.Error("ERROR", message, nil)); jsonErr != nil {
		logger.Error("Failed to write error response", jsonErr)
	}
}

package serviceutils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/apperr"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/validation"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status     string                 `json:"status"`
	Violations []validation.Violation `json:"violations,omitempty"`
}

// ResponseSuccess writes data as the raw JSON body.
func ResponseSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, data)
}

// ResponseError writes message with the given status and logs err, if any.
func ResponseError(c echo.Context, status int, message string, err error) error {
	ctx := c.Request().Context()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if fields := ae.Context(); fields != nil {
			ctx = logger.WithLogger(ctx, fields)
		}
	}
	switch {
	case status >= http.StatusInternalServerError:
		logger.ErrorLog(ctx, "%s: %v", message, err)
	case err != nil:
		logger.WarnLog(ctx, "%s: %v", message, err)
	}
	return c.JSON(status, ErrorResponse{Status: message})
}

// ResponseViolations rejects a request body that failed validation.
func ResponseViolations(c echo.Context, v validation.Violations) error {
	logger.DebugLog(c.Request().Context(), "Validation failed: %v", v)
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Status:     "Validation failed",
		Violations: v,
	})
}

// ResponseAppError renders err using the status of its apperr kind.
func ResponseAppError(c echo.Context, err error) error {
	var v validation.Violations
	if errors.As(err, &v) {
		return ResponseViolations(c, v)
	}

	// full causes go to the log only
	ae := apperr.Ensure(err)
	return ResponseError(c, ae.HTTPStatus(), ae.ClientMessage(), err)
}

// HTTPErrorHandler replaces echo's default so routing and binding failures
// use the same body as handler errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		err = ResponseError(c, he.Code, msg, he.Internal)
	} else {
		err = ResponseAppError(c, err)
	}
	if err != nil {
		logger.ErrorLog(c.Request().Context(), "Failed to write error response: %v", err)
	}
}

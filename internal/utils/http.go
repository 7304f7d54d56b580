package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the standard error response shape
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   "Bad request",
		Message: message,
	})
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorBody{
		Error:   "Access token required",
		Message: message,
	})
}

// ForbiddenResponse sends a 403 Forbidden response
func ForbiddenResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, ErrorBody{
		Error:   "Invalid token",
		Message: message,
	})
}

// NotFoundResponse sends the 404 fallback for unmatched routes
func NotFoundResponse(c echo.Context, path string) error {
	return c.JSON(http.StatusNotFound, ErrorBody{
		Error: "Route not found",
		Path:  path,
	})
}

// InternalServerErrorResponse sends a 500 Internal Server Error response.
// The message must never include secrets or internal stack detail.
func InternalServerErrorResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, ErrorBody{
		Error:   "Something went wrong!",
		Message: message,
	})
}

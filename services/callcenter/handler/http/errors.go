package http

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/utils"
	"github.com/ringdesk/callhub/services/callcenter/gateway"
	"github.com/ringdesk/callhub/services/callcenter/usecase"
)

// writeError maps usecase and gateway failures onto HTTP responses.
// Validation problems are 400s; provider failures surface as 500s with a
// human-readable message, never the provider's raw error object.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, gateway.ErrRecipientUnverified),
		errors.Is(err, gateway.ErrInvalidFormat),
		errors.Is(err, gateway.ErrCodeInvalid),
		errors.Is(err, gateway.ErrCodeExpired):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, gateway.ErrProviderUnconfigured):
		return utils.InternalServerErrorResponse(c, "Verification service is not configured")
	default:
		return utils.InternalServerErrorResponse(c, "Verification service failed")
	}
}

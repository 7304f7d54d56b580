package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/pkg/models"
)

// SystemHandler serves the root status and health endpoints
type SystemHandler struct {
	cfg *models.Config
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(cfg *models.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// Root reports that the server is running
func (h *SystemHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Call Center Backend Server",
		"status":    "running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Health reports configuration presence flags only, never secret values
func (h *SystemHandler) Health(c echo.Context) error {
	twilio := h.cfg.Twilio
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"twilio": map[string]interface{}{
			"configured":       twilio.IsValid(),
			"accountSid":       configuredFlag(twilio.AccountSid != ""),
			"phoneNumber":      twilio.PhoneNumber,
			"verifyService":    configuredFlag(twilio.HasVerifyService()),
			"tokenCredentials": configuredFlag(twilio.HasTokenCredentials()),
		},
	})
}

func configuredFlag(present bool) string {
	if present {
		return "configured"
	}
	return "missing"
}

package http

import (
	"net/http"
	"testing"

	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	h := NewSystemHandler(&models.Config{})

	c, rec := newContext(http.MethodGet, "/", "")
	require.NoError(t, h.Root(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Call Center Backend Server", body["message"])
	assert.Equal(t, "running", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealth_Configured(t *testing.T) {
	cfg := &models.Config{Twilio: models.TwilioConfig{
		AccountSid:     "ACtest",
		AuthToken:      "secret-auth-token",
		PhoneNumber:    "+15005550006",
		PhoneNumberSid: "PNtest",
		TokenSid:       "SKtest",
		Secret:         "api-key-secret",
		VerifyService:  "VAtest",
	}}
	h := NewSystemHandler(cfg)

	c, rec := newContext(http.MethodGet, "/health", "")
	require.NoError(t, h.Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])

	twilio, ok := body["twilio"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, twilio["configured"])
	assert.Equal(t, "configured", twilio["accountSid"])
	assert.Equal(t, "configured", twilio["verifyService"])
	assert.Equal(t, "configured", twilio["tokenCredentials"])
	assert.Equal(t, "+15005550006", twilio["phoneNumber"])

	// Presence flags only; the secrets themselves never appear
	assert.NotContains(t, rec.Body.String(), "ACtest")
	assert.NotContains(t, rec.Body.String(), "secret-auth-token")
	assert.NotContains(t, rec.Body.String(), "api-key-secret")
}

func TestHealth_Unconfigured(t *testing.T) {
	h := NewSystemHandler(&models.Config{})

	c, rec := newContext(http.MethodGet, "/health", "")
	require.NoError(t, h.Health(c))

	body := decodeBody(t, rec)
	twilio, ok := body["twilio"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, twilio["configured"])
	assert.Equal(t, "missing", twilio["accountSid"])
	assert.Equal(t, "missing", twilio["verifyService"])
	assert.Equal(t, "missing", twilio["tokenCredentials"])
}

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/models"
)

// Twilio Verify error codes this gateway understands
const (
	twilioCodeNotFound            = 20404
	twilioCodeInvalidParameter    = 60200
	twilioCodeMaxCheckAttempts    = 60202
	twilioCodeMaxSendAttempts     = 60203
	twilioCodeInvalidPhoneNumber  = 21211
	twilioCodeUnverifiedRecipient = 21608
)

// TwilioGateway is the stateless adapter to the Twilio Verify API. It
// projects provider responses into flat DTOs and maps provider failures
// into the gateway error taxonomy.
type TwilioGateway struct {
	cfg        models.TwilioConfig
	httpClient *http.Client
}

// NewTwilioGateway creates a new Verify adapter
func NewTwilioGateway(cfg models.TwilioConfig) *TwilioGateway {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &TwilioGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// twilioVerification is the subset of the provider response we consume.
// Everything else in the provider's object graph stays behind the boundary.
type twilioVerification struct {
	Sid         string `json:"sid"`
	Status      string `json:"status"`
	To          string `json:"to"`
	Channel     string `json:"channel"`
	Valid       bool   `json:"valid"`
	DateCreated string `json:"date_created"`
	DateUpdated string `json:"date_updated"`
}

type twilioAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// RequestCode asks the provider to deliver a verification code
func (g *TwilioGateway) RequestCode(ctx context.Context, to, channel string) (*models.VerificationAttempt, error) {
	if !g.cfg.HasVerifyService() {
		return nil, ErrProviderUnconfigured
	}
	if channel == "" {
		channel = models.VerificationChannelSMS
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("Channel", channel)

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", g.cfg.BaseURL, g.cfg.VerifyService)
	verification, err := g.post(ctx, endpoint, form, false)
	if err != nil {
		return nil, err
	}

	logger.Info("Verification requested",
		logger.String("to", verification.To),
		logger.String("channel", verification.Channel),
		logger.String("status", verification.Status))

	return project(verification), nil
}

// CheckCode submits a code for verification. An incorrect code is not an
// error: the provider reports it as a pending, invalid attempt.
func (g *TwilioGateway) CheckCode(ctx context.Context, to, code string) (*models.VerificationAttempt, error) {
	if !g.cfg.HasVerifyService() {
		return nil, ErrProviderUnconfigured
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationChecks", g.cfg.BaseURL, g.cfg.VerifyService)
	verification, err := g.post(ctx, endpoint, form, true)
	if err != nil {
		return nil, err
	}

	logger.Info("Verification checked",
		logger.String("to", verification.To),
		logger.String("status", verification.Status),
		logger.Bool("valid", verification.Valid))

	return project(verification), nil
}

func (g *TwilioGateway) post(ctx context.Context, endpoint string, form url.Values, isCheck bool) (*twilioVerification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if g.cfg.HasTokenCredentials() {
		req.SetBasicAuth(g.cfg.TokenSid, g.cfg.Secret)
	} else {
		req.SetBasicAuth(g.cfg.AccountSid, g.cfg.AuthToken)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr twilioAPIError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil {
			apiErr = twilioAPIError{Status: resp.StatusCode, Message: "provider returned an unreadable error"}
		}
		return nil, g.mapError(resp.StatusCode, apiErr, isCheck)
	}

	var verification twilioVerification
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: "provider returned an unreadable response"}
	}
	return &verification, nil
}

// mapError translates a provider failure into the gateway taxonomy
func (g *TwilioGateway) mapError(statusCode int, apiErr twilioAPIError, isCheck bool) error {
	logger.Warn("Provider request failed",
		logger.Int("status", statusCode),
		logger.Int("code", apiErr.Code),
		logger.String("message", apiErr.Message))

	switch {
	case apiErr.Code == twilioCodeNotFound || statusCode == http.StatusNotFound:
		if isCheck {
			// Checks 404 once the verification expired or was consumed
			return ErrCodeExpired
		}
		return ErrNotFound
	case apiErr.Code == twilioCodeMaxCheckAttempts:
		return ErrCodeExpired
	case apiErr.Code == twilioCodeInvalidPhoneNumber:
		return ErrRecipientUnverified
	case apiErr.Code == twilioCodeUnverifiedRecipient:
		return ErrRecipientUnverified
	case apiErr.Code == twilioCodeInvalidParameter:
		if isCheck {
			return ErrCodeInvalid
		}
		return ErrInvalidFormat
	default:
		return &ProviderError{StatusCode: statusCode, Code: apiErr.Code, Message: apiErr.Message}
	}
}

// project applies the allow-list transform at the provider boundary
func project(v *twilioVerification) *models.VerificationAttempt {
	return &models.VerificationAttempt{
		Status:      v.Status,
		To:          v.To,
		Sid:         v.Sid,
		Channel:     v.Channel,
		Valid:       v.Valid,
		DateCreated: v.DateCreated,
		DateUpdated: v.DateUpdated,
	}
}

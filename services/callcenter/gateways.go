package callcenter

import (
	"context"

	"github.com/ringdesk/callhub/internal/pkg/models"
)

// VerifyGW is the boundary to the external OTP provider
type VerifyGW interface {
	RequestCode(ctx context.Context, to, channel string) (*models.VerificationAttempt, error)
	CheckCode(ctx context.Context, to, code string) (*models.VerificationAttempt, error)
}

// EventGW mirrors lifecycle events to an external consumer, best-effort
type EventGW interface {
	Publish(event string, payload interface{})
}

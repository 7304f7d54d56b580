package jwt

import "github.com/ringdesk/callhub/internal/pkg/models"

// Validator validates credentials with a fixed signing secret. It exists
// so components can depend on validation without carrying the secret.
type Validator struct {
	secret string
}

// NewValidator creates a validator bound to the signing secret
func NewValidator(secret string) *Validator {
	return &Validator{secret: secret}
}

// Validate checks a credential and returns its claims
func (v *Validator) Validate(token string) (*models.UserClaims, error) {
	return ValidateToken(token, v.secret)
}

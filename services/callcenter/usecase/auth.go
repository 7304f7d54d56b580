package usecase

import (
	"context"
	"fmt"

	jwtpkg "github.com/ringdesk/callhub/internal/pkg/jwt"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/ringdesk/callhub/internal/utils"
)

// RequestCode validates the destination and asks the provider to deliver
// a verification code. Malformed input never reaches the provider.
func (u *CallCenterUC) RequestCode(ctx context.Context, to, channel string) (*models.VerificationAttempt, error) {
	to, err := utils.ValidatePhoneNumber(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	attempt, err := u.verifyGW.RequestCode(ctx, to, channel)
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// VerifyCode validates input, checks the code with the provider and mints
// a session credential when the check is approved. On any non-approved
// outcome the attempt is returned without a credential.
func (u *CallCenterUC) VerifyCode(ctx context.Context, to, code string) (*models.VerificationAttempt, *models.AuthResponse, error) {
	to, err := utils.ValidatePhoneNumber(to)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := utils.ValidateOTPCode(code); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	attempt, err := u.verifyGW.CheckCode(ctx, to, code)
	if err != nil {
		return nil, nil, err
	}

	if !attempt.Approved() {
		return attempt, nil, nil
	}

	token, claims, err := jwtpkg.GenerateToken(to, u.cfg.JWT)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue credential: %w", err)
	}

	logger.Info("Verification approved, credential issued",
		logger.String("to", to),
		logger.Int64("expires_at", claims.ExpiresAt))

	return attempt, &models.AuthResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// RefreshToken reissues a credential with the same identity claims and a
// fresh expiry window. An expired credential cannot be refreshed.
func (u *CallCenterUC) RefreshToken(token string) (*models.AuthResponse, error) {
	newToken, claims, err := jwtpkg.RefreshToken(token, u.cfg.JWT)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token:     newToken,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

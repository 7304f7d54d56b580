package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ringdesk/callhub/internal/pkg/models"
)

// Validation failure reasons. ValidateToken always returns one of these
// wrapped in the error; callers map them to an access-denied outcome.
var (
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
)

// Claims represents the session credential payload: a verified phone
// identity plus the registered validity window.
type Claims struct {
	PhoneNumber string `json:"phoneNumber"`
	Verified    bool   `json:"verified"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed credential for a verified phone identity
func GenerateToken(phoneNumber string, cfg models.JWTConfig) (string, *models.UserClaims, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(cfg.Expiration) * time.Minute)

	claims := Claims{
		PhoneNumber: phoneNumber,
		Verified:    true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, &models.UserClaims{
		PhoneNumber: phoneNumber,
		Verified:    true,
		IssuedAt:    now.Unix(),
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

// ValidateToken validates a credential and returns its claims. It is a pure
// function of the token and the signing secret; failures are reported as
// ErrExpired, ErrSignatureInvalid or ErrMalformed.
func ValidateToken(tokenString string, secret string) (*models.UserClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if !token.Valid {
		return nil, ErrMalformed
	}

	user := &models.UserClaims{
		PhoneNumber: claims.PhoneNumber,
		Verified:    claims.Verified,
	}
	if claims.IssuedAt != nil {
		user.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return user, nil
}

// RefreshToken reissues a credential carrying the same identity claims with
// a fresh expiry window. Refreshing an already-expired credential fails.
func RefreshToken(tokenString string, cfg models.JWTConfig) (string, *models.UserClaims, error) {
	claims, err := ValidateToken(tokenString, cfg.Secret)
	if err != nil {
		return "", nil, err
	}
	return GenerateToken(claims.PhoneNumber, cfg)
}

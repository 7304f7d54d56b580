package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = models.JWTConfig{
	Secret:     "test-secret-key",
	Issuer:     "callhub-test",
	Expiration: 60,
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, claims, err := GenerateToken("+14155551234", testCfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "+14155551234", claims.PhoneNumber)
	assert.True(t, claims.Verified)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)

	validated, err := ValidateToken(token, testCfg.Secret)
	require.NoError(t, err)
	assert.Equal(t, "+14155551234", validated.PhoneNumber)
	assert.True(t, validated.Verified)
	assert.Equal(t, claims.ExpiresAt, validated.ExpiresAt)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken("+14155551234", testCfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "a-different-secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	token := signToken(t, "+14155551234", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	_, err := ValidateToken(token, testCfg.Secret)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateToken_Malformed(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := ValidateToken(token, testCfg.Secret)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func TestValidateToken_RejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never validate regardless of payload
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		PhoneNumber: "+14155551234",
		Verified:    true,
	})
	signed, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testCfg.Secret)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	// Backdate issuance so the refreshed expiry is strictly later without
	// sleeping through the test.
	issued := time.Now().Add(-30 * time.Minute)
	old := signToken(t, "+14155551234", issued, issued.Add(time.Duration(testCfg.Expiration)*time.Minute))

	refreshed, claims, err := RefreshToken(old, testCfg)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed)
	assert.NotEqual(t, old, refreshed)

	assert.Equal(t, "+14155551234", claims.PhoneNumber)
	assert.True(t, claims.Verified)

	oldClaims, err := ValidateToken(old, testCfg.Secret)
	require.NoError(t, err)
	assert.Greater(t, claims.ExpiresAt, oldClaims.ExpiresAt)
}

func TestRefreshToken_ExpiredFails(t *testing.T) {
	token := signToken(t, "+14155551234", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	_, _, err := RefreshToken(token, testCfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
}

func signToken(t *testing.T, phoneNumber string, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		PhoneNumber: phoneNumber,
		Verified:    true,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    testCfg.Issuer,
			IssuedAt:  jwtlib.NewNumericDate(issuedAt),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testCfg.Secret))
	require.NoError(t, err)
	return signed
}

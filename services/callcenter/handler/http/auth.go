package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/pkg/middleware"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/ringdesk/callhub/internal/utils"
	"github.com/ringdesk/callhub/services/callcenter"
)

// AuthHandler serves the OTP login flow and the credential endpoints
type AuthHandler struct {
	uc callcenter.CallCenterUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(uc callcenter.CallCenterUC) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type loginRequest struct {
	To      string `json:"to" query:"to"`
	Channel string `json:"channel" query:"channel"`
}

type verifyRequest struct {
	To   string `json:"to" query:"to"`
	Code string `json:"code" query:"code"`
}

type verifyResponse struct {
	*models.VerificationAttempt
	Token string             `json:"token,omitempty"`
	User  *models.UserClaims `json:"user,omitempty"`
}

// Login requests a verification code for a phone number.
// The JSON body is the canonical form; query parameters are the legacy one.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	attempt, err := h.uc.RequestCode(c.Request().Context(), req.To, req.Channel)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, attempt)
}

// Verify checks a code and issues a session credential when approved
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	attempt, auth, err := h.uc.VerifyCode(c.Request().Context(), req.To, req.Code)
	if err != nil {
		return writeError(c, err)
	}

	resp := verifyResponse{VerificationAttempt: attempt}
	if auth != nil {
		resp.Token = auth.Token
		resp.User = &models.UserClaims{
			PhoneNumber: attempt.To,
			Verified:    true,
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated user's claims
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Please provide a valid authentication token")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": claims,
	})
}

// RefreshToken reissues the presented credential with a fresh expiry
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	token := bearerToken(c)
	auth, err := h.uc.RefreshToken(token)
	if err != nil {
		return utils.ForbiddenResponse(c, "The provided token is invalid or expired")
	}

	return c.JSON(http.StatusOK, auth)
}

// Logout acknowledges logout. Credentials are stateless: the client
// discards its token, nothing is revoked server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

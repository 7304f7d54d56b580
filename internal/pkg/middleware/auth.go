package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/ringdesk/callhub/internal/pkg/jwt"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/ringdesk/callhub/internal/utils"
)

// Context keys set by the auth middleware
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// extractBearerToken pulls the token out of the Authorization header
func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth creates middleware that rejects requests without a valid
// credential: 401 when the token is absent, 403 when invalid or expired.
func RequireAuth(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return utils.UnauthorizedResponse(c, "Please provide a valid authentication token")
			}

			claims, err := jwtpkg.ValidateToken(token, config.Secret)
			if err != nil {
				logger.Warn("Token validation failed",
					logger.String("path", c.Path()),
					logger.Err(err))
				return utils.ForbiddenResponse(c, "The provided token is invalid or expired")
			}

			c.Set(ContextUserKey, claims)
			c.Set(ContextUserIDKey, claims.PhoneNumber)

			return next(c)
		}
	}
}

// UserFromContext returns the authenticated claims set by RequireAuth
func UserFromContext(c echo.Context) (*models.UserClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*models.UserClaims)
	return claims, ok
}

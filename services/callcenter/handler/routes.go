package handler

import (
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/middleware"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/ringdesk/callhub/internal/utils"
	callhttp "github.com/ringdesk/callhub/services/callcenter/handler/http"
	callws "github.com/ringdesk/callhub/services/callcenter/handler/websocket"
)

// Handler coordinates all protocol handlers for the call-center service
type Handler struct {
	authHandler   *callhttp.AuthHandler
	callHandler   *callhttp.CallHandler
	systemHandler *callhttp.SystemHandler
	wsHandler     *callws.CallCenterWS
	cfg           *models.Config
	redisClient   *redis.Client
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *callhttp.AuthHandler,
	callHandler *callhttp.CallHandler,
	systemHandler *callhttp.SystemHandler,
	wsHandler *callws.CallCenterWS,
	cfg *models.Config,
	redisClient *redis.Client,
) *Handler {
	return &Handler{
		authHandler:   authHandler,
		callHandler:   callHandler,
		systemHandler: systemHandler,
		wsHandler:     wsHandler,
		cfg:           cfg,
		redisClient:   redisClient,
	}
}

// RegisterRoutes registers all service routes on the Echo instance
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = httpErrorHandler

	e.GET("/", h.systemHandler.Root)
	e.GET("/health", h.systemHandler.Health)

	// OTP login flow. POST with a JSON body is canonical; GET with query
	// parameters is kept for legacy clients via the same binder.
	limiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: h.redisClient,
		Key:         "ratelimit",
		Limit:       10,
		Period:      time.Minute,
	})
	e.GET("/login", h.authHandler.Login, limiter)
	e.POST("/login", h.authHandler.Login, limiter)
	e.GET("/verify", h.authHandler.Verify, limiter)
	e.POST("/verify", h.authHandler.Verify, limiter)

	// Streaming channel; credential is presented in the handshake
	e.GET("/socket", h.wsHandler.HandleWebSocket)

	// Authenticated API
	api := e.Group("/api", middleware.RequireAuth(h.cfg.JWT))
	api.GET("/profile", h.authHandler.Profile)
	api.POST("/refresh-token", h.authHandler.RefreshToken)
	api.POST("/logout", h.authHandler.Logout)
	api.POST("/calls/accept", h.callHandler.Accept)
	api.POST("/calls/end", h.callHandler.End)
	api.POST("/calls/transfer", h.callHandler.Transfer)
	api.GET("/calls/queue", h.callHandler.Queue)
}

// RegisterMiddleware installs the shared middleware stack
func RegisterMiddleware(e *echo.Echo, zapLogger *logger.ZapLogger) {
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
}

// httpErrorHandler renders unmatched routes and uncaught handler errors
// in the service's error shapes.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		if he.Code == http.StatusNotFound {
			_ = utils.NotFoundResponse(c, c.Request().URL.Path)
			return
		}
		if he.Code == http.StatusMethodNotAllowed {
			_ = utils.NotFoundResponse(c, c.Request().URL.Path)
			return
		}
		msg, _ := he.Message.(string)
		_ = c.JSON(he.Code, utils.ErrorBody{Error: http.StatusText(he.Code), Message: msg})
		return
	}

	logger.Error("Unhandled request error",
		logger.String("path", c.Request().URL.Path),
		logger.Err(err))
	_ = utils.InternalServerErrorResponse(c, err.Error())
}

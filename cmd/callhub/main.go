package main

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/pkg/config"
	jwtpkg "github.com/ringdesk/callhub/internal/pkg/jwt"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/middleware"
	nsqpkg "github.com/ringdesk/callhub/internal/pkg/nsq"
	"github.com/ringdesk/callhub/internal/pkg/server"
	wspkg "github.com/ringdesk/callhub/internal/pkg/websocket"
	"github.com/ringdesk/callhub/services/callcenter/gateway"
	"github.com/ringdesk/callhub/services/callcenter/handler"
	callhttp "github.com/ringdesk/callhub/services/callcenter/handler/http"
	callws "github.com/ringdesk/callhub/services/callcenter/handler/websocket"
	"github.com/ringdesk/callhub/services/callcenter/usecase"
)

func main() {
	configPath := config.GetEnv("CONFIG_PATH", ".env")
	configs, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", configs.App.Name),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	shutdownManager := server.NewShutdownManager(zapLogger)

	// Redis is optional; when configured it backs the login rate limiter
	var redisClient *redis.Client
	if configs.Redis.Enabled() {
		redisClient, err = middleware.NewRedisClient(
			configs.Redis.Host, configs.Redis.Port, configs.Redis.Password, configs.Redis.DB)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdownManager.Register(func(context.Context) error {
			return redisClient.Close()
		})
	}

	// NSQ is optional; when configured, lifecycle events are mirrored to it
	var producer *nsqpkg.Producer
	if configs.NSQ.Enabled() {
		producer, err = nsqpkg.NewProducer(configs.NSQ.Address)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		shutdownManager.Register(func(context.Context) error {
			producer.Stop()
			return nil
		})
	}

	// Realtime hub with connection-time credential validation
	hub := wspkg.NewHub(jwtpkg.NewValidator(configs.JWT.Secret))

	// Gateways
	verifyGW := gateway.NewTwilioGateway(configs.Twilio)
	eventGW := gateway.NewEventPublisher(producer, configs.NSQ.Topic)

	// UseCase
	callCenterUC := usecase.NewCallCenterUC(verifyGW, eventGW, hub, configs)

	// Handlers
	authHandler := callhttp.NewAuthHandler(callCenterUC)
	callHandler := callhttp.NewCallHandler(callCenterUC)
	systemHandler := callhttp.NewSystemHandler(configs)
	wsHandler := callws.NewCallCenterWS(callCenterUC, hub)

	h := handler.NewHandler(authHandler, callHandler, systemHandler, wsHandler, configs, redisClient)

	e := echo.New()
	handler.RegisterMiddleware(e, zapLogger)
	h.RegisterRoutes(e)

	zapLogger.Info("Twilio provider",
		logger.Bool("configured", configs.Twilio.IsValid()),
		logger.Bool("verify_service", configs.Twilio.HasVerifyService()))

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = shutdownManager.Shutdown(ctx)
}

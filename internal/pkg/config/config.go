package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ringdesk/callhub/internal/pkg/models"
)

// InitConfig loads configuration from an env file (local only) and the
// environment, then validates the mandatory values.
func InitConfig(configPath string) (*models.Config, error) {
	env := GetEnv("APP_ENV", "local")
	if env == "local" && configPath != "" {
		// Load config from file
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	configs := loadConfigFromEnv()
	if err := Validate(configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "callhub")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("PORT", 3000)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Twilio config
	configs.Twilio.AccountSid = GetEnv("TWILIO_ACCOUNT_SID", "")
	configs.Twilio.AuthToken = GetEnv("TWILIO_AUTH_TOKEN", "")
	configs.Twilio.PhoneNumber = GetEnv("TWILIO_PHONE_NUMBER", "")
	configs.Twilio.PhoneNumberSid = GetEnv("TWILIO_PHONE_NUMBER_SID", "")
	configs.Twilio.TokenSid = GetEnv("TWILIO_TOKEN_SID", "")
	configs.Twilio.Secret = GetEnv("TWILIO_SECRET", "")
	configs.Twilio.VerifyService = GetEnv("TWILIO_VERIFY_SERVICE", "")
	configs.Twilio.BaseURL = GetEnv("TWILIO_VERIFY_BASE_URL", "https://verify.twilio.com/v2")
	configs.Twilio.TimeoutSeconds = GetEnvAsInt("TWILIO_TIMEOUT_SECONDS", 10)

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 24*60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "callhub")

	// Redis config (optional, enables rate limiting)
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)

	// NSQ config (optional, mirrors lifecycle events)
	configs.NSQ.Address = GetEnv("NSQD_ADDRESS", "")
	configs.NSQ.Topic = GetEnv("NSQ_TOPIC", "callhub.events")

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Validate fails fast when a mandatory value is missing
func Validate(configs *models.Config) error {
	required := map[string]string{
		"TWILIO_ACCOUNT_SID":      configs.Twilio.AccountSid,
		"TWILIO_AUTH_TOKEN":       configs.Twilio.AuthToken,
		"TWILIO_PHONE_NUMBER":     configs.Twilio.PhoneNumber,
		"TWILIO_PHONE_NUMBER_SID": configs.Twilio.PhoneNumberSid,
		"JWT_SECRET":              configs.JWT.Secret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s environment variable is required", name)
		}
	}
	return nil
}

// Helper functions to get environment variables with different types

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

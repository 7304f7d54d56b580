package models

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Server ServerConfig
	Twilio TwilioConfig
	JWT    JWTConfig
	Redis  RedisConfig
	NSQ    NSQConfig
	Logger LoggerConfig
}

// AppConfig contains application metadata
type AppConfig struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Debug       bool   `json:"debug"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	ReadTimeout     int    `json:"read_timeout"`
	WriteTimeout    int    `json:"write_timeout"`
	ShutdownTimeout int    `json:"shutdown_timeout"`
}

// TwilioConfig contains the Verify provider credentials.
// AccountSid, AuthToken, PhoneNumber and PhoneNumberSid are mandatory;
// the token credentials and verify service are optional capabilities.
type TwilioConfig struct {
	AccountSid     string `json:"account_sid"`
	AuthToken      string `json:"auth_token"`
	PhoneNumber    string `json:"phone_number"`
	PhoneNumberSid string `json:"phone_number_sid"`
	TokenSid       string `json:"token_sid"`
	Secret         string `json:"secret"`
	VerifyService  string `json:"verify_service"`
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// IsValid reports whether the mandatory Twilio credentials are present
func (t TwilioConfig) IsValid() bool {
	return t.AccountSid != "" && t.AuthToken != "" && t.PhoneNumber != "" && t.PhoneNumberSid != ""
}

// HasVerifyService reports whether a Verify service SID is configured
func (t TwilioConfig) HasVerifyService() bool {
	return t.VerifyService != ""
}

// HasTokenCredentials reports whether API key credentials are configured
func (t TwilioConfig) HasTokenCredentials() bool {
	return t.TokenSid != "" && t.Secret != ""
}

// JWTConfig contains settings for signing session credentials
type JWTConfig struct {
	Secret     string `json:"secret"`
	Issuer     string `json:"issuer"`
	Expiration int    `json:"expiration"` // minutes
}

// RedisConfig contains Redis connection settings for rate limiting
type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Enabled reports whether a Redis host is configured
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// NSQConfig contains the optional NSQ event mirror settings
type NSQConfig struct {
	Address string `json:"address"`
	Topic   string `json:"topic"`
}

// Enabled reports whether an nsqd address is configured
func (n NSQConfig) Enabled() bool {
	return n.Address != ""
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level    string `json:"level"`
	FilePath string `json:"file_path"`
}

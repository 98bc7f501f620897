package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Langflow LangflowConfig
	Webhook  WebhookConfig
	Twilio   TwilioConfig
	Forward  ForwardConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"checkin"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"24h"`
}

// LangflowConfig holds analysis provider configuration
type LangflowConfig struct {
	// APIURL is the full flow endpoint used by the transcript relay.
	APIURL string `envconfig:"LANGFLOW_API_URL"`
	// ServerAddress and FlowID compose the run endpoint for /summarize.
	ServerAddress string `envconfig:"LANGFLOW_SERVER_ADDRESS"`
	FlowID        string `envconfig:"LANGFLOW_FLOW_ID"`
}

// WebhookConfig holds the shared secret for inbound webhook verification
type WebhookConfig struct {
	Secret string `envconfig:"ELEVENLABS_WEBHOOK_SECRET"`
}

// TwilioConfig holds SMS provider credentials
type TwilioConfig struct {
	AccountSID string `envconfig:"TWILIO_SID"`
	AuthToken  string `envconfig:"TWILIO_TOKEN"`
	FromNumber string `envconfig:"TWILIO_NUMBER"`
}

// ForwardConfig holds the downstream transcript forwarding target
type ForwardConfig struct {
	URL   string `envconfig:"FORWARD_SERVER_URL"`
	Token string `envconfig:"FORWARD_SERVER_AUTH_TOKEN"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks presence of required values. Values are not parsed or
// validated beyond presence.
func (c *Config) Validate() error {
	if c.Langflow.APIURL == "" && c.Langflow.ServerAddress == "" {
		return fmt.Errorf("LANGFLOW_API_URL or LANGFLOW_SERVER_ADDRESS is required")
	}
	if c.Webhook.Secret == "" {
		log.Printf("Warning: ELEVENLABS_WEBHOOK_SECRET not set, inbound webhooks will be rejected")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// RunEndpoint returns the Langflow flow-run URL used by /summarize
func (c *LangflowConfig) RunEndpoint() string {
	if c.ServerAddress == "" || c.FlowID == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/v1/run/%s", c.ServerAddress, c.FlowID)
}

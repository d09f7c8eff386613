package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the connection settings for the Casdoor identity
// provider, used when USER_DIRECTORY=casdoor.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// Config is the full service configuration, loaded from environment
// variables with an optional .env file for local development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// "static" (demo in-memory table) or "casdoor"
	UserDirectory string
	Casdoor       CasdoorConfig

	SessionTTL time.Duration

	// Fixed demo delays that make loading states observable in the UI.
	LoginDelay  time.Duration
	NotifyDelay time.Duration

	// Outbound chat webhook; empty disables real delivery.
	ChatWebhookURL string

	KafkaBrokers []string
	EventTopic   string
}

// LoadConfig reads configuration from the environment. A missing .env file
// is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		UserDirectory: getEnv("USER_DIRECTORY", "static"),
		Casdoor: CasdoorConfig{
			Endpoint:     getEnv("CASDOOR_ENDPOINT", ""),
			ClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
			ClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
			Cert:         getEnv("CASDOOR_CERT", ""),
			Organization: getEnv("CASDOOR_ORGANIZATION", ""),
			Application:  getEnv("CASDOOR_APPLICATION", ""),
		},

		SessionTTL:  getDuration("SESSION_TTL", 12*time.Hour),
		LoginDelay:  getDuration("LOGIN_DELAY", time.Second),
		NotifyDelay: getDuration("NOTIFY_DELAY", 800*time.Millisecond),

		ChatWebhookURL: getEnv("CHAT_WEBHOOK_URL", ""),

		EventTopic: getEnv("EVENT_TOPIC", "pulse.notifications"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.UserDirectory != "static" && c.UserDirectory != "casdoor" {
		return fmt.Errorf("config: unknown USER_DIRECTORY %q", c.UserDirectory)
	}
	if c.UserDirectory == "casdoor" && c.Casdoor.Endpoint == "" {
		return fmt.Errorf("config: CASDOOR_ENDPOINT is required when USER_DIRECTORY=casdoor")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Accept bare seconds as well
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

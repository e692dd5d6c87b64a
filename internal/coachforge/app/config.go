package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Issuer claim stamped on session tokens (default: coachforge)
	BaseURL        string // Required: public origin used to build invite URLs
	BootstrapToken string // Optional: if set, required to perform bootstrap

	DatabaseFile   string // Path to SQLite database file (default: ./coachforge.db)
	PepperFile     string // Path to token/password pepper file (default: ./pepper)
	SessionKeyFile string // Path to HS256 session signing key file (default: ./session.key)

	InviteTTL  time.Duration // Invite lifetime (default: 24h)
	SessionTTL time.Duration // Session lifetime (default: 12h)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:         getEnvOrDefault("COACHFORGE_ISSUER", "coachforge"),
		BaseURL:        os.Getenv("COACHFORGE_BASE_URL"),
		BootstrapToken: os.Getenv("COACHFORGE_BOOTSTRAP_TOKEN"),

		DatabaseFile:   getEnvOrDefault("COACHFORGE_DATABASE_FILE", "coachforge.db"),
		PepperFile:     getEnvOrDefault("COACHFORGE_PEPPER_FILE", "pepper"),
		SessionKeyFile: getEnvOrDefault("COACHFORGE_SESSION_KEY_FILE", "session.key"),

		InviteTTL:  getEnvDurationOrDefault("COACHFORGE_INVITE_TTL", 24*time.Hour),
		SessionTTL: getEnvDurationOrDefault("COACHFORGE_SESSION_TTL", 12*time.Hour),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

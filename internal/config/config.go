package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Contact relay (Resend)
	ResendAPIKey     string
	ContactToEmail   string
	ContactFromEmail string

	// Instagram feed mirror
	InstagramAccessToken string
	InstagramUserID      string
	InstagramPostLimit   string
	FeedCacheTTL         int // seconds
	FeedPrefetch         bool

	// Redis Configuration (optional; in-process cache when unset)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Telemetry
	OTelEnabled  bool
	OTelEndpoint string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		ContactToEmail:   getEnv("CONTACT_TO_EMAIL", ""),
		ContactFromEmail: getEnv("CONTACT_FROM_EMAIL", ""),

		InstagramAccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
		InstagramUserID:      getEnv("INSTAGRAM_USER_ID", ""),
		InstagramPostLimit:   getEnv("INSTAGRAM_POST_LIMIT", "6"),
		FeedCacheTTL:         getEnvInt("FEED_CACHE_TTL_SECONDS", 300),
		FeedPrefetch:         getEnvBool("FEED_PREFETCH", false),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OTelEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}

	return cfg, nil
}

// EmailConfigured reports whether the contact relay has everything it needs.
// The relay fails closed with a configuration error when any piece is missing.
func (c *Config) EmailConfigured() bool {
	return c.ResendAPIKey != "" && c.ContactToEmail != "" && c.ContactFromEmail != ""
}

// InstagramConfigured reports whether the feed mirror can reach the Graph API.
func (c *Config) InstagramConfigured() bool {
	return c.InstagramAccessToken != "" && c.InstagramUserID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

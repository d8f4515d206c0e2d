package app

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ClientID     string // Required: OAuth2 client id
	ClientSecret string // Optional: OAuth2 client secret
	AppToken     string // Required for catalogue endpoints: application bearer token
	RedirectURI  string // Optional: OAuth2 redirect URI (default: http://127.0.0.1:18423/callback)
	Scopes       string // Optional: space-separated OAuth2 scopes requested at login

	DatabaseFile string // Optional: path to SQLite token cache file (default: ./animesched.db)
	CacheKey     string // Required for login/refresh: key material sealing cached tokens

	Timezone string // Optional: IANA timezone for timetable output (default: API default)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)

	HTTPTimeout time.Duration // Optional: per-request timeout (default: 30s)
}

// LoadConfig reads configuration from the environment, after loading a
// .env file from the working directory when one exists.
func LoadConfig() Config {
	// Missing .env is fine; explicit environment wins either way.
	_ = godotenv.Load()

	return Config{
		ClientID:     os.Getenv("ANIMESCHED_CLIENT_ID"),
		ClientSecret: os.Getenv("ANIMESCHED_CLIENT_SECRET"),
		AppToken:     os.Getenv("ANIMESCHED_APP_TOKEN"),
		RedirectURI:  getEnvOrDefault("ANIMESCHED_REDIRECT_URI", "http://127.0.0.1:18423/callback"),
		Scopes:       os.Getenv("ANIMESCHED_SCOPES"),
		DatabaseFile: getEnvOrDefault("ANIMESCHED_DATABASE_FILE", "animesched.db"),
		CacheKey:     os.Getenv("ANIMESCHED_CACHE_KEY"),
		Timezone:     os.Getenv("ANIMESCHED_TZ"),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
		HTTPTimeout:  getEnvDurationOrDefault("ANIMESCHED_HTTP_TIMEOUT", 30*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

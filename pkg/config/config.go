package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is built once at startup and handed to the composition layer.
type Config struct {
	Port          string
	DatabaseURL   string
	SecretKey     string // carried for deployments that set it; nothing signs with it yet
	AppEnv        string
	BaseURL       string // empty means derive from the request host
	ShortIDLength int
	QRColor       string
	LogLevel      slog.Level
}

const (
	minShortIDLength = 4
	maxShortIDLength = 32
)

func Load() (*Config, error) {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		DatabaseURL: getEnv("DATABASE_URL", "file:db.sqlite"),
		SecretKey:   getEnv("SECRET_KEY", "your-default-secret-key"),
		AppEnv:      getEnv("APP_ENV", "local"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", ""), "/"),
		QRColor:     getEnv("QR_COLOR", "#667eea"),
	}

	length, err := strconv.Atoi(getEnv("SHORT_ID_LENGTH", "6"))
	if err != nil {
		return nil, fmt.Errorf("SHORT_ID_LENGTH: %w", err)
	}
	if length < minShortIDLength || length > maxShortIDLength {
		return nil, fmt.Errorf("SHORT_ID_LENGTH must be between %d and %d, got %d",
			minShortIDLength, maxShortIDLength, length)
	}
	cfg.ShortIDLength = length

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

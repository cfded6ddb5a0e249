package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Addr        string
	CORSOrigins string
}

type AppConfig struct {
	ServiceName string
	LogLevel    string
	Env         string
	HTTP        HTTPConfig
}

// IsProd reports whether APP_ENV=production. Production forbids the
// in-memory fallbacks used for local development.
func (c AppConfig) IsProd() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads the platform settings from the environment. A .env file in the
// working directory, if any, seeds variables that are not already set.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	cfg := AppConfig{
		ServiceName: Env("SERVICE_NAME"),
		LogLevel:    Env("LOG_LEVEL"),
		Env:         Env("APP_ENV"),
		HTTP: HTTPConfig{
			Addr:        Env("HTTP_ADDR"),
			CORSOrigins: Env("CORS_ALLOWED_ORIGINS"),
		},
	}
	if cfg.ServiceName == "" {
		return AppConfig{}, errors.New("SERVICE_NAME is required")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func Env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func EnvInt(key string, fallback int) int {
	v := Env(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := Env(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

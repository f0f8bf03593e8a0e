package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT         string
	API_PREFIX       string
	SHUTDOWN_TIMEOUT time.Duration
	// upstream employee service
	UPSTREAM_BASE_URL         string
	UPSTREAM_TIMEOUT          time.Duration
	UPSTREAM_FALLBACK_ENABLED bool
	UPSTREAM_MAX_IDLE_CONNS   int
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
	// observability
	METRICS_ENABLED bool
	// export
	EXPORT_LAYOUT_PATH string
}

// LoadEnvConfig reads an optional .env file and builds DefaultEnvConfig from the environment.
func LoadEnvConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:                  getEnvString("APP_PORT", "8080"),
		API_PREFIX:                strings.TrimSuffix(getEnvString("API_PREFIX", "/api/v1"), "/"),
		SHUTDOWN_TIMEOUT:          getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		UPSTREAM_BASE_URL:         strings.TrimSuffix(getEnvString("UPSTREAM_BASE_URL", "http://localhost:8112/api/v1/employee"), "/"),
		UPSTREAM_TIMEOUT:          getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UPSTREAM_FALLBACK_ENABLED: getEnvBool("UPSTREAM_FALLBACK_ENABLED", true),
		UPSTREAM_MAX_IDLE_CONNS:   getEnvInt("UPSTREAM_MAX_IDLE_CONNS", 100),
		LOG_FILE_PATH:             getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:                 getEnvString("LOG_LEVEL", "info"),
		METRICS_ENABLED:           getEnvBool("METRICS_ENABLED", true),
		EXPORT_LAYOUT_PATH:        getEnvString("EXPORT_LAYOUT_PATH", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}

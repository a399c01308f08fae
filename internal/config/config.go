package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-upload-form/internal/domain"
)

const (
	defaultProcessEndpoint = "http://127.0.0.1:8000/process"
	defaultMaxFileSize     = 10 * 1024 * 1024
	defaultProgressStep    = 5
	defaultProgressCeiling = 95
	defaultProgressMillis  = 300
	defaultSessionMinutes  = 30
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort            string
	ProcessEndpoint       string
	ProcessHealthEndpoint string
	MaxFileSize           int64
	LogLevel              string
	AllowedOrigins        []string
	ProgressStep          int
	ProgressInterval      time.Duration
	ProgressCeiling       int
	SessionTTL            time.Duration
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	cfg := &AppConfig{
		// PORT wins over SERVER_PORT when both are set.
		ServerPort:            getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		ProcessEndpoint:       getEnvOrDefault("PROCESS_ENDPOINT", defaultProcessEndpoint),
		ProcessHealthEndpoint: getEnvOrDefault("PROCESS_HEALTH_ENDPOINT", ""),
		MaxFileSize:           getEnvInt64OrDefault("MAX_FILE_SIZE", defaultMaxFileSize),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		AllowedOrigins:        getEnvListOrDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		ProgressStep:          int(getEnvInt64OrDefault("PROGRESS_STEP", defaultProgressStep)),
		ProgressInterval:      time.Duration(getEnvInt64OrDefault("PROGRESS_INTERVAL_MS", defaultProgressMillis)) * time.Millisecond,
		ProgressCeiling:       int(getEnvInt64OrDefault("PROGRESS_CEILING", defaultProgressCeiling)),
		SessionTTL:            time.Duration(getEnvInt64OrDefault("SESSION_TTL_MINUTES", defaultSessionMinutes)) * time.Minute,
	}
	cfg.normalize()
	return cfg
}

// normalize replaces values the progress loop and session janitor cannot work with
func (c *AppConfig) normalize() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = defaultMaxFileSize
	}
	if c.ProgressStep <= 0 {
		c.ProgressStep = defaultProgressStep
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = defaultProgressMillis * time.Millisecond
	}
	if c.ProgressCeiling <= 0 || c.ProgressCeiling >= domain.ProgressComplete {
		c.ProgressCeiling = defaultProgressCeiling
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = defaultSessionMinutes * time.Minute
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetProcessEndpoint returns the URL documents are posted to
func (c *AppConfig) GetProcessEndpoint() string {
	return c.ProcessEndpoint
}

// GetProcessHealthEndpoint returns the upstream health URL, empty when not probed
func (c *AppConfig) GetProcessHealthEndpoint() string {
	return c.ProcessHealthEndpoint
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAllowedOrigins returns the CORS origin allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetProgressStep returns how many percent each progress tick adds
func (c *AppConfig) GetProgressStep() int {
	return c.ProgressStep
}

// GetProgressInterval returns the time between progress ticks
func (c *AppConfig) GetProgressInterval() time.Duration {
	return c.ProgressInterval
}

// GetProgressCeiling returns the value progress holds at until a response arrives
func (c *AppConfig) GetProgressCeiling() int {
	return c.ProgressCeiling
}

// GetSessionTTL returns how long an idle form is kept before it is discarded
func (c *AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

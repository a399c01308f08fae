package config

import (
	"reflect"
	"testing"
	"time"
)

const defaultMaxFileSizeBytes int64 = 10 * 1024 * 1024

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "PROCESS_ENDPOINT", "PROCESS_HEALTH_ENDPOINT",
		"MAX_FILE_SIZE", "LOG_LEVEL", "ALLOWED_ORIGINS", "PROGRESS_STEP",
		"PROGRESS_INTERVAL_MS", "PROGRESS_CEILING", "SESSION_TTL_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetProcessEndpoint() != "http://127.0.0.1:8000/process" {
		t.Fatalf("unexpected default process endpoint %s", cfg.GetProcessEndpoint())
	}
	if cfg.GetProcessHealthEndpoint() != "" {
		t.Fatalf("expected no health endpoint by default, got %s", cfg.GetProcessHealthEndpoint())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSizeBytes {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSizeBytes, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetProgressStep() != 5 {
		t.Fatalf("expected progress step 5, got %d", cfg.GetProgressStep())
	}
	if cfg.GetProgressInterval() != 300*time.Millisecond {
		t.Fatalf("expected progress interval 300ms, got %s", cfg.GetProgressInterval())
	}
	if cfg.GetProgressCeiling() != 95 {
		t.Fatalf("expected progress ceiling 95, got %d", cfg.GetProgressCeiling())
	}
	if cfg.GetSessionTTL() != 30*time.Minute {
		t.Fatalf("expected session ttl 30m, got %s", cfg.GetSessionTTL())
	}
	want := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.GetAllowedOrigins())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("PROCESS_ENDPOINT", "http://backend:8000/api/v1/process")
	t.Setenv("PROCESS_HEALTH_ENDPOINT", "http://backend:8000/api/v1/health")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example,")
	t.Setenv("PROGRESS_STEP", "10")
	t.Setenv("PROGRESS_INTERVAL_MS", "50")
	t.Setenv("PROGRESS_CEILING", "90")
	t.Setenv("SESSION_TTL_MINUTES", "5")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetProcessEndpoint() != "http://backend:8000/api/v1/process" {
		t.Fatalf("unexpected process endpoint %s", cfg.GetProcessEndpoint())
	}
	if cfg.GetProcessHealthEndpoint() != "http://backend:8000/api/v1/health" {
		t.Fatalf("unexpected health endpoint %s", cfg.GetProcessHealthEndpoint())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.GetAllowedOrigins())
	}
	if cfg.GetProgressStep() != 10 || cfg.GetProgressCeiling() != 90 {
		t.Fatalf("unexpected progress settings step=%d ceiling=%d", cfg.GetProgressStep(), cfg.GetProgressCeiling())
	}
	if cfg.GetProgressInterval() != 50*time.Millisecond {
		t.Fatalf("expected interval 50ms, got %s", cfg.GetProgressInterval())
	}
	if cfg.GetSessionTTL() != 5*time.Minute {
		t.Fatalf("expected ttl 5m, got %s", cfg.GetSessionTTL())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("PROGRESS_STEP", "-1")
	t.Setenv("PROGRESS_CEILING", "100")
	t.Setenv("PROGRESS_INTERVAL_MS", "0")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSizeBytes {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSizeBytes, cfg.GetMaxFileSize())
	}
	if cfg.GetProgressStep() != 5 {
		t.Fatalf("expected invalid step to fall back to 5, got %d", cfg.GetProgressStep())
	}
	if cfg.GetProgressCeiling() != 95 {
		t.Fatalf("expected ceiling at or above 100 to fall back to 95, got %d", cfg.GetProgressCeiling())
	}
	if cfg.GetProgressInterval() != 300*time.Millisecond {
		t.Fatalf("expected interval fallback 300ms, got %s", cfg.GetProgressInterval())
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SolveTimeout != 10*time.Second {
		t.Fatalf("expected default timeout 10s, got %s", cfg.SolveTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.ServiceName != "mathsolver" {
		t.Fatalf("expected default service name mathsolver, got %q", cfg.ServiceName)
	}
	if cfg.OTELEndpoint != "" {
		t.Fatalf("expected OTEL disabled by default, got %q", cfg.OTELEndpoint)
	}
	if cfg.DegreeMode {
		t.Fatal("expected degree mode off by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MATHSOLVER_SOLVE_TIMEOUT", "250ms")
	t.Setenv("MATHSOLVER_LOG_LEVEL", "debug")
	t.Setenv("MATHSOLVER_CORRECTIONS_FILE", "/etc/mathsolver/corrections.yaml")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	t.Setenv("MATHSOLVER_DEGREE_MODE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SolveTimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", cfg.SolveTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug, got %q", cfg.LogLevel)
	}
	if cfg.CorrectionsFile != "/etc/mathsolver/corrections.yaml" {
		t.Fatalf("unexpected corrections file %q", cfg.CorrectionsFile)
	}
	if !cfg.OTELInsecure {
		t.Fatal("expected insecure OTEL exporter")
	}
	if !cfg.DegreeMode {
		t.Fatal("expected degree mode enabled")
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("MATHSOLVER_LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown log level, got nil")
	}
}

func TestEnvDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("TEST_DURATION_BAD", "soon")
	if d := envDuration("TEST_DURATION_BAD", time.Second); d != time.Second {
		t.Fatalf("expected fallback 1s, got %s", d)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "1")
	if !envBool("TEST_BOOL", false) {
		t.Fatal("expected true for \"1\"")
	}
	t.Setenv("TEST_BOOL_BAD", "maybe")
	if envBool("TEST_BOOL_BAD", true) != true {
		t.Fatal("expected fallback for unrecognized value")
	}
}

// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Solver settings.
	SolveTimeout    time.Duration
	DegreeMode      bool   // Interpret trig-call arguments as degrees.
	CorrectionsFile string // Optional YAML file extending the OCR correction table.
	LeadInsFile     string // Optional file adding question lead-in phrases, one per line.

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string

	// Operational settings.
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		SolveTimeout:    envDuration("MATHSOLVER_SOLVE_TIMEOUT", 10*time.Second),
		DegreeMode:      envBool("MATHSOLVER_DEGREE_MODE", false),
		CorrectionsFile: envStr("MATHSOLVER_CORRECTIONS_FILE", ""),
		LeadInsFile:     envStr("MATHSOLVER_LEADINS_FILE", ""),
		OTELEndpoint:    envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		ServiceName:     envStr("OTEL_SERVICE_NAME", "mathsolver"),
		LogLevel:        envStr("MATHSOLVER_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c Config) Validate() error {
	if c.SolveTimeout < 0 {
		return fmt.Errorf("config: MATHSOLVER_SOLVE_TIMEOUT must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: MATHSOLVER_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("config: OTEL_SERVICE_NAME must not be empty")
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

package config

import (
	"fmt"
	"time"
)

// ServiceName identifies this service in logs, traces and APM dashboards.
const ServiceName = "todo-api"

// ObservabilityConfig groups all configuration related to telemetry and
// runtime visibility: logging, New Relic APM and health checks.
//
// It is optional at the root level (pointer in Config). If omitted,
// defaults are injected.
type ObservabilityConfig struct {
	ServiceName  string             `koanf:"service_name" validate:"required"`
	Environment  string             `koanf:"environment" validate:"required"`
	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the output format ("json" or "console").
	Format string `koanf:"format" validate:"required,oneof=json console"`

	// SlowQueryThreshold is the storage call duration above which the
	// item service logs a warning. Zero disables the warning.
	// Env values must be duration strings such as "100ms" or "1s".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey means New Relic is not configured and every
// integration degrades into a no-op.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks run by the status endpoint.
type HealthChecksConfig struct {
	// Enabled toggles the storage ping. When disabled the status
	// endpoint only reports that the process is up.
	Enabled bool `koanf:"enabled"`

	// Timeout bounds a single dependency check.
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// DefaultObservabilityConfig provides a safe set of defaults.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "local",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // mixes agent output into app logs
		},
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
	}
}

// Validate applies rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	if c.HealthChecks.Enabled && c.HealthChecks.Timeout <= 0 {
		return fmt.Errorf("health_checks timeout must be positive when checks are enabled")
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// Production falls back to "info" and development to "debug" when no
// level is set; otherwise the configured level wins.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development":
		if c.Logging.Level == "" {
			return "debug"
		}
	}
	return c.Logging.Level
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

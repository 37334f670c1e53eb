package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func setPostgresEnv(t *testing.T) {
	t.Helper()

	t.Setenv("TODO_DATABASE.HOST", "localhost")
	t.Setenv("TODO_DATABASE.USER", "todo")
	t.Setenv("TODO_DATABASE.NAME", "todo")
}

func TestLoadConfigDefaults(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Primary.Env != "local" {
		t.Errorf("env = %q, want local", cfg.Primary.Env)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres || cfg.Database.Port != 5432 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Errorf("service name = %q", cfg.Observability.ServiceName)
	}
	if cfg.Observability.Environment != cfg.Primary.Env {
		t.Errorf("observability environment %q does not follow primary env %q",
			cfg.Observability.Environment, cfg.Primary.Env)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TODO_PRIMARY.ENV", "production")
	t.Setenv("TODO_SERVER.PORT", "9090")
	t.Setenv("TODO_SERVER.CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TODO_SERVER.RATE_LIMIT", "0")
	t.Setenv("TODO_DATABASE.DRIVER", "sqlite")
	t.Setenv("TODO_DATABASE.SQLITE_PATH", "/tmp/items.db")
	t.Setenv("TODO_OBSERVABILITY.LOGGING.SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, wantOrigins) {
		t.Errorf("origins = %v, want %v", cfg.Server.CORSAllowedOrigins, wantOrigins)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("rate limit = %v, want 0", cfg.Server.RateLimit)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.SQLitePath != "/tmp/items.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if got := cfg.Observability.Logging.SlowQueryThreshold; got != 250*time.Millisecond {
		t.Errorf("slow query threshold = %v", got)
	}
	if !cfg.Observability.IsProduction() {
		t.Error("expected production observability config")
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("TODO_DATABASE.DRIVER", "mongo")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}

func TestLoadConfigPostgresRequiresHost(t *testing.T) {
	// Defaults select postgres without a host.
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error without database.host")
	}
}

func TestValidateRedisRequiresAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Driver = DriverRedis

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "redis.address") {
		t.Fatalf("Validate() = %v, want redis.address error", err)
	}

	cfg.Redis.Address = "localhost:6379"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() with address = %v", err)
	}
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{"defaults", func(*ObservabilityConfig) {}, false},
		{"bad level", func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, true},
		{"negative threshold", func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, true},
		{"zero health timeout", func(c *ObservabilityConfig) { c.HealthChecks.Timeout = 0 }, true},
		{
			"zero timeout with checks disabled",
			func(c *ObservabilityConfig) {
				c.HealthChecks.Enabled = false
				c.HealthChecks.Timeout = 0
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Environment = "production"
	c.Logging.Level = ""
	if got := c.GetLogLevel(); got != "info" {
		t.Errorf("production default = %q", got)
	}

	c.Environment = "development"
	if got := c.GetLogLevel(); got != "debug" {
		t.Errorf("development default = %q", got)
	}

	c.Logging.Level = "warn"
	if got := c.GetLogLevel(); got != "warn" {
		t.Errorf("explicit level = %q", got)
	}
}

func TestLoadConfigSingleOrigin(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("TODO_SERVER.CORS_ALLOWED_ORIGINS", "https://only.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if want := []string{"https://only.example"}; !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, want) {
		t.Errorf("origins = %v, want %v", cfg.Server.CORSAllowedOrigins, want)
	}
}

func TestSplitList(t *testing.T) {
	tests := map[string][]string{
		"a":        {"a"},
		"a,b":      {"a", "b"},
		" a , b ,": {"a", "b"},
		",,":       {},
		"*":        {"*"},
	}

	for in, want := range tests {
		if got := splitList(in); !reflect.DeepEqual(got, want) {
			t.Errorf("splitList(%q) = %v, want %v", in, got, want)
		}
	}
}

// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional blocks (storage, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix TODO_. Keys are lowercased and the
	prefix removed; nesting uses "." as delimiter:

		TODO_SERVER.PORT        -> server.port      -> Config.Server.Port
		TODO_DATABASE.DRIVER    -> database.driver  -> Config.Database.Driver
*/

// EnvPrefix is the prefix every configuration env var must carry.
const EnvPrefix = "TODO_"

// Storage drivers understood by DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig selects the storage backend and carries its parameters.
//
// Postgres parameters are only required when Driver is "postgres",
// SQLitePath only when Driver is "sqlite". The redis driver reads the
// top-level RedisConfig block.
type DatabaseConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres sqlite redis"`

	Host            string `koanf:"host" validate:"required_if=Driver postgres"`
	Port            int    `koanf:"port" validate:"required_if=Driver postgres"`
	User            string `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode         string `koanf:"ssl_mode" validate:"required_if=Driver postgres"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`

	SQLitePath string `koanf:"sqlite_path" validate:"required_if=Driver sqlite"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// DefaultConfig returns the configuration used as the base layer before
// env vars are applied. Only values that are safe for a local run are set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
			SQLitePath:      "./data/todo.db",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// listKeys are the keys whose env value is a comma-separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix TODO_, splitting list values on commas
//   - Unmarshals into a Config pre-filled with defaults
//   - Validates struct tags, then storage and observability rules
//   - Overrides observability service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal only overwrites keys present in the environment, so the
	// defaults above survive for everything that is not set.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env so
	// logs and traces are labelled consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs struct tag validation followed by the rules that span
// several blocks.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Database.Driver == DriverRedis && c.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when database.driver is %q", DriverRedis)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

// Package config holds the tasktrack application configuration.
package config

import (
	"fmt"
	"time"

	"github.com/jrazmi/tasktrack/infrastructure/mongodb"
	"github.com/jrazmi/tasktrack/infrastructure/postgresdb"
	"github.com/jrazmi/tasktrack/infrastructure/redisdb"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/environment"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

// AppName is the environment prefix, e.g. TASKTRACK_PORT.
const AppName = "TASKTRACK"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_EXPIRES_IN" default:"168h"`
}

type Store struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" default:"memory"`

	// AutoMigrate applies pending migrations (postgres) or creates indexes
	// (mongo) when serving.
	AutoMigrate bool `yaml:"auto_migrate" env:"STORE_AUTO_MIGRATE" default:"false"`
}

// RateLimit throttles the unauthenticated /auth endpoints per client address.
// Redis backs the window when configured, process memory otherwise.
type RateLimit struct {
	Disabled bool          `yaml:"disabled" env:"RATE_LIMIT_DISABLED" default:"false"`
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" default:"20"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" default:"15m"`
}

// Config is the whole application configuration. Values come from the
// optional YAML file first and the environment second.
type Config struct {
	Server    web.ServerConfig   `yaml:"server"`
	Auth      Auth               `yaml:"auth"`
	Store     Store              `yaml:"store"`
	Postgres  postgresdb.Options `yaml:"postgres"`
	Mongo     mongodb.Options    `yaml:"mongo"`
	Redis     redisdb.Options    `yaml:"redis"`
	RateLimit RateLimit          `yaml:"rate_limit"`
	Logger    logger.Options     `yaml:"logger"`
}

// Load reads the YAML file at path (when given) and the environment under
// prefix, then validates the result.
func Load(prefix, path string) (Config, error) {
	var cfg Config
	if err := environment.Load(prefix, path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if !c.RateLimit.Disabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit needs positive requests and window")
	}
	return nil
}

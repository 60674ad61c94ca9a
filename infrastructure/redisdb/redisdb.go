// Package redisdb builds go-redis clients from configuration.
package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/jrazmi/tasktrack/sdk/environment"
	"github.com/redis/go-redis/v9"
)

// Options is the exportable redis configuration.
type Options struct {
	Addr         string        `yaml:"addr" env:"REDIS_ADDR"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB           int           `yaml:"db" env:"REDIS_DB" default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether an address is configured.
func (o Options) Enabled() bool {
	return o.Addr != ""
}

// NewFromEnv creates a client from environment variables under prefix.
func NewFromEnv(ctx context.Context, prefix string) (*redis.Client, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing redis config: %w", err)
	}
	return New(ctx, cfg)
}

// New creates a client from cfg and verifies it with a ping.
func New(ctx context.Context, cfg Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: 2,
	})

	if err := StatusCheck(ctx, rdb); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// StatusCheck returns nil if it can successfully talk to redis.
func StatusCheck(ctx context.Context, rdb redis.UniversalClient) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return rdb.Ping(ctx).Err()
}

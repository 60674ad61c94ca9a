// Package mongodb builds mongo clients from configuration.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasktrack/sdk/environment"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Options is the exportable mongo configuration.
type Options struct {
	URI            string        `yaml:"uri" env:"MONGODB_URI" default:"mongodb://localhost:27017"`
	Database       string        `yaml:"database" env:"MONGODB_DATABASE" default:"tasktrack"`
	MaxPoolSize    int           `yaml:"max_pool_size" env:"MONGODB_MAX_POOL_SIZE" default:"25"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGODB_CONNECT_TIMEOUT" default:"10s"`
}

// Database pairs a connected client with the configured database.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewFromEnv connects using environment variables under prefix.
func NewFromEnv(ctx context.Context, prefix string) (*Database, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mongo config: %w", err)
	}
	return New(ctx, cfg)
}

// New connects to cfg.URI and verifies the connection with a ping.
func New(ctx context.Context, cfg Options) (*Database, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is not set")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo database is not set")
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(uint64(cfg.MaxPoolSize))
	}
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(cfg.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Database{Client: client, DB: client.Database(cfg.Database)}, nil
}

// StatusCheck returns nil if it can successfully talk to the server.
func (d *Database) StatusCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return d.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

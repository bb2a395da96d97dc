package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

func GetConnectionString(cfg *Config) (string, error) {
	return cfg.GetConnectionString()
}

func NewClient(connectionString string, lifecycle fx.Lifecycle) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ContextTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

func NewDatabase(client *mongo.Client, cfg *Config) (*mongo.Database, error) {
	return client.Database(cfg.DatabaseName), nil
}

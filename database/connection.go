package database

import (
	"context"
	"fmt"
	"time"

	"medilink-backend/config"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes database connection based on config
func Connect(cfg *config.Config) error {
	switch cfg.Database.Type {
	case "mongodb":
		return ConnectMongoDB(cfg)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

// Disconnect closes database connection
func Disconnect(cfg *config.Config) error {
	switch cfg.Database.Type {
	case "mongodb":
		return DisconnectMongoDB()
	default:
		return nil
	}
}

// HealthCheck performs a database health check
func HealthCheck(ctx context.Context, cfg *config.Config) error {
	switch cfg.Database.Type {
	case "mongodb":
		if mongoClient == nil {
			return ErrNotConnected
		}
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return mongoClient.Ping(ctx, readpref.Primary())
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

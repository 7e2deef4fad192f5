// Package repomanager owns the storage backend chosen at startup and vends
// the repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/listings"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations brings the schema up to date: goose migrations on
	// PostgreSQL, indexes on MongoDB.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Listings() listings.Repository
	Close(ctx context.Context) error
}

// New opens the backend named by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		return NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverPostgres:
		return OpenPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.DriverMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

package repomanager

import (
	"context"
	"fmt"

	"github.com/MrSidSir/sidEstate/internal/server/repositories/listings"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepositoryManager struct {
	client   *mongo.Client
	users    *users.MongoRepository
	listings *listings.MongoRepository
}

// NewMongoRepositoryManager connects to uri and binds the repositories to
// database dbName.
func NewMongoRepositoryManager(ctx context.Context, uri, dbName string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}
	return newMongoManager(client, client.Database(dbName)), nil
}

func newMongoManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client:   client,
		users:    users.NewMongoRepository(db),
		listings: listings.NewMongoRepository(db),
	}
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Listings() listings.Repository {
	return m.listings
}

// RunMigrations creates the collection indexes; the unique ones back the
// username and email conflict checks.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := m.listings.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("listings indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

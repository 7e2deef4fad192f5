package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/listings"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNew_Memory(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.DriverMemory}

	m, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepositoryManager{}, m)
	assert.NoError(t, m.RunMigrations(context.Background()))
	assert.NoError(t, m.Close(context.Background()))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageDriver: "cassandra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

func TestMemory_SharesRepositories(t *testing.T) {
	m := NewMemoryRepositoryManager()

	assert.Same(t, m.Users(), m.Users())
	assert.Same(t, m.Listings(), m.Listings())
}

func TestPostgres_Factories(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)

	var _ RepositoryManager = m
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
	assert.IsType(t, &listings.PostgresRepository{}, m.Listings())
}

func TestPostgres_RunMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	gooseUpContext = func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if got != db {
			return errors.New("unexpected db")
		}
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	err := m.RunMigrations(context.Background())
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPostgres_Close(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMongo_RunMigrations(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("indexes created", func(mt *mtest.T) {
		m := newMongoManager(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		assert.NoError(mt, m.RunMigrations(context.Background()))
		assert.IsType(mt, &users.MongoRepository{}, m.Users())
		assert.IsType(mt, &listings.MongoRepository{}, m.Listings())
	})

	mt.Run("index failure", func(mt *mtest.T) {
		m := newMongoManager(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 85, Message: "IndexOptionsConflict"}))

		err := m.RunMigrations(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "users indexes")
	})
}

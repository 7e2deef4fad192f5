package repomanager

import (
	"context"

	"github.com/MrSidSir/sidEstate/internal/server/repositories/listings"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost
// on exit.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	listings *listings.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		listings: listings.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Listings() listings.Repository {
	return m.listings
}

func (m *MemoryRepositoryManager) Close(ctx context.Context) error {
	return nil
}

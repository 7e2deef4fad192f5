package users

import (
	"context"
	"sync"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]models.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// taken reports whether username or email belongs to a user other than id.
func (r *MemoryRepository) taken(id, username, email string) bool {
	for _, u := range r.users {
		if u.ID == id {
			continue
		}
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken("", user.Username, user.Email) {
		return nil, common.ErrorConflict
	}

	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = r.now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = u

	return &u, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	patch.Apply(&u)
	if r.taken(id, u.Username, u.Email) {
		return nil, common.ErrorConflict
	}
	u.UpdatedAt = r.now()
	r.users[id] = u

	return &u, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, id)
	return nil
}

// Package users holds the credential store: user records keyed by id and
// unique by username and by email.
package users

import (
	"context"

	"github.com/MrSidSir/sidEstate/internal/server/models"
)

// Repository persists users. Implementations stamp CreatedAt/UpdatedAt,
// report duplicates as common.ErrorConflict and missing records as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

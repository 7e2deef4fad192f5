// Package listings holds the listing store and the per-backend translation
// of models.ListingQuery.
package listings

import (
	"context"

	"github.com/MrSidSir/sidEstate/internal/server/models"
)

// Repository persists listings. Ownership is not checked here.
type Repository interface {
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	// Update replaces every mutable field of the stored listing with the
	// values in listing. ID, UserRef and CreatedAt are kept.
	Update(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q models.ListingQuery) ([]models.Listing, error)
	// ListByOwner returns the listings whose UserRef is ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
}

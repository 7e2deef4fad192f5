package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/logging"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/listings"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/repomanager"
)

var errListingNotFound = common.NewError(common.ErrorNotFound, "Listing not found!")

type ListingService struct {
	listings listings.Repository
	logger   logging.Logger
}

func NewListingService(m repomanager.RepositoryManager, logger logging.Logger) *ListingService {
	return &ListingService{
		listings: m.Listings(),
		logger:   logger.With("module", "listings"),
	}
}

// Create stores listing on behalf of ownerID. Any id or owner sent by the
// client is discarded.
func (s *ListingService) Create(ctx context.Context, ownerID string, listing models.Listing) (*models.Listing, error) {
	listing.ID = ""
	listing.UserRef = ownerID
	if err := validateStruct(listing); err != nil {
		return nil, err
	}

	created, err := s.listings.Create(ctx, &listing)
	if err != nil {
		return nil, fmt.Errorf("error creating listing: %w", err)
	}

	s.logger.Info(ctx, "listing created", "listing_id", created.ID, "owner", ownerID)
	return created, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errListingNotFound
		}
		return nil, fmt.Errorf("error loading listing: %w", err)
	}
	return l, nil
}

// owned loads listing id and checks that actorID owns it.
func (s *ListingService) owned(ctx context.Context, actorID, id, verb string) (*models.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserRef != actorID {
		s.logger.Warn(ctx, "ownership check failed", "listing_id", id, "actor", actorID)
		return nil, common.NewError(common.ErrorForbidden, "You can only "+verb+" your own listings!")
	}
	return l, nil
}

// Update applies patch to the actor's listing and re-validates the result.
func (s *ListingService) Update(ctx context.Context, actorID, id string, patch models.ListingPatch) (*models.Listing, error) {
	l, err := s.owned(ctx, actorID, id, "update")
	if err != nil {
		return nil, err
	}

	patch.Apply(l)
	if err := validateStruct(*l); err != nil {
		return nil, err
	}

	updated, err := s.listings.Update(ctx, l)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errListingNotFound
		}
		return nil, fmt.Errorf("error updating listing: %w", err)
	}
	return updated, nil
}

func (s *ListingService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.owned(ctx, actorID, id, "delete"); err != nil {
		return err
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errListingNotFound
		}
		return fmt.Errorf("error deleting listing: %w", err)
	}

	s.logger.Info(ctx, "listing deleted", "listing_id", id)
	return nil
}

func (s *ListingService) Search(ctx context.Context, q models.ListingQuery) ([]models.Listing, error) {
	found, err := s.listings.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("error searching listings: %w", err)
	}
	return found, nil
}

// ListByOwner returns the listings of ownerID, which must be the actor.
func (s *ListingService) ListByOwner(ctx context.Context, actorID, ownerID string) ([]models.Listing, error) {
	if actorID != ownerID {
		return nil, common.NewError(common.ErrorForbidden, "You can only view your own listings!")
	}

	found, err := s.listings.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing user listings: %w", err)
	}
	return found, nil
}

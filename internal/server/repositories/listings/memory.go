package listings

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	listings map[string]models.Listing
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		listings: make(map[string]models.Listing),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func clone(l models.Listing) models.Listing {
	l.ImageURLs = slices.Clone(l.ImageURLs)
	return l
}

func (r *MemoryRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := clone(*listing)
	l.ID = uuid.NewString()
	l.CreatedAt = r.now()
	l.UpdatedAt = l.CreatedAt
	r.listings[l.ID] = l

	out := clone(l)
	return &out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := clone(l)
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.listings[listing.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	l := clone(*listing)
	l.UserRef = stored.UserRef
	l.CreatedAt = stored.CreatedAt
	l.UpdatedAt = r.now()
	r.listings[l.ID] = l

	out := clone(l)
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.listings, id)
	return nil
}

func matches(l models.Listing, q models.ListingQuery) bool {
	if q.SearchTerm != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(q.SearchTerm)) {
		return false
	}
	if q.Type != "" && l.Type != q.Type {
		return false
	}
	return q.Offer.Matches(l.Offer) && q.Furnished.Matches(l.Furnished) && q.Parking.Matches(l.Parking)
}

func compareBy(field string, a, b models.Listing) int {
	switch field {
	case models.SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case models.SortRegularPrice:
		return cmp.Compare(a.RegularPrice, b.RegularPrice)
	case models.SortDiscountPrice:
		return cmp.Compare(a.DiscountPrice, b.DiscountPrice)
	case models.SortName:
		return strings.Compare(a.Name, b.Name)
	case models.SortBedroom:
		return cmp.Compare(a.Bedroom, b.Bedroom)
	case models.SortBathroom:
		return cmp.Compare(a.Bathroom, b.Bathroom)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (r *MemoryRepository) collect(keep func(models.Listing) bool) []models.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]models.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if keep(l) {
			found = append(found, clone(l))
		}
	}
	return found
}

func sortListings(ls []models.Listing, field string, desc bool) {
	slices.SortFunc(ls, func(a, b models.Listing) int {
		c := cmp.Or(compareBy(field, a, b), strings.Compare(a.ID, b.ID))
		if desc {
			return -c
		}
		return c
	})
}

func (r *MemoryRepository) Search(ctx context.Context, q models.ListingQuery) ([]models.Listing, error) {
	found := r.collect(func(l models.Listing) bool { return matches(l, q) })
	sortListings(found, q.SortField, q.Descending)

	start := min(max(q.StartIndex, 0), len(found))
	end := len(found)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(found))
	}
	return found[start:end], nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	found := r.collect(func(l models.Listing) bool { return l.UserRef == ownerID })
	sortListings(found, models.SortCreatedAt, true)
	return found, nil
}

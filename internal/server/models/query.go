package models

// BoolFilter is a tri-state predicate on a boolean listing field.
type BoolFilter int

const (
	BoolAny BoolFilter = iota
	BoolTrue
	BoolFalse
)

// Matches reports whether v passes the filter.
func (f BoolFilter) Matches(v bool) bool {
	switch f {
	case BoolTrue:
		return v
	case BoolFalse:
		return !v
	default:
		return true
	}
}

// Sortable listing fields, named as they appear in JSON.
const (
	SortCreatedAt     = "createdAt"
	SortUpdatedAt     = "updatedAt"
	SortRegularPrice  = "regularPrice"
	SortDiscountPrice = "discountPrice"
	SortName          = "name"
	SortBedroom       = "bedroom"
	SortBathroom      = "bathroom"
)

// ListingQuery is a backend-neutral listing search: a conjunction of
// predicates, one sort key (ties broken by id in the same direction) and an
// offset/limit window.
type ListingQuery struct {
	SearchTerm string
	Offer      BoolFilter
	Furnished  BoolFilter
	Parking    BoolFilter
	// Type is "" for any type.
	Type       string
	SortField  string
	Descending bool
	StartIndex int
	Limit      int
}

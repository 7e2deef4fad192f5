// Package query turns listing search parameters from a URL query string into
// a models.ListingQuery understood by every listing repository.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/models"
)

const (
	DefaultLimit = 9
	MaxLimit     = 100
	DefaultSort  = models.SortCreatedAt
)

var sortable = map[string]bool{
	models.SortCreatedAt:     true,
	models.SortUpdatedAt:     true,
	models.SortRegularPrice:  true,
	models.SortDiscountPrice: true,
	models.SortName:          true,
	models.SortBedroom:       true,
	models.SortBathroom:      true,
}

// Parse builds a ListingQuery from v.
//
// offer, furnished and parking treat an absent value and the literal "false"
// alike: no filtering on that field. Only "0", "no" and "off" select listings
// where the field is false.
func Parse(v url.Values) (models.ListingQuery, error) {
	q := models.ListingQuery{
		SearchTerm: v.Get("searchTerm"),
		Limit:      positiveInt(v.Get("limit"), DefaultLimit),
		StartIndex: positiveInt(v.Get("startIndex"), 0),
		SortField:  DefaultSort,
		Descending: true,
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	var err error
	if q.Offer, err = boolFilter("offer", v); err != nil {
		return q, err
	}
	if q.Furnished, err = boolFilter("furnished", v); err != nil {
		return q, err
	}
	if q.Parking, err = boolFilter("parking", v); err != nil {
		return q, err
	}

	if t := v.Get("type"); t != "" && t != "all" {
		q.Type = t
	}

	if s := v.Get("sort"); sortable[s] {
		q.SortField = s
	}

	switch strings.ToLower(v.Get("order")) {
	case "asc", "ascending", "1":
		q.Descending = false
	}

	return q, nil
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func boolFilter(name string, v url.Values) (models.BoolFilter, error) {
	if _, present := v[name]; !present {
		return models.BoolAny, nil
	}
	switch strings.ToLower(v.Get(name)) {
	case "", "false":
		return models.BoolAny, nil
	case "true", "1", "yes", "on":
		return models.BoolTrue, nil
	case "0", "no", "off":
		return models.BoolFalse, nil
	default:
		return models.BoolAny, fmt.Errorf("%w: %s must be a boolean", common.ErrorValidation, name)
	}
}

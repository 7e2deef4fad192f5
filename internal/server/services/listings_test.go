package services

import (
	"context"
	"testing"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingCreate_OwnerFromActor(t *testing.T) {
	_, ls := newServices(t)

	in := validListing()
	in.ID = "forged"
	in.UserRef = "someone-else"
	l, err := ls.Create(context.Background(), "owner-a", in)
	require.NoError(t, err)
	assert.NotEqual(t, "forged", l.ID)
	assert.Equal(t, "owner-a", l.UserRef)
}

func TestListingCreate_Validation(t *testing.T) {
	_, ls := newServices(t)

	in := validListing()
	in.Bathroom = 0
	_, err := ls.Create(context.Background(), "owner-a", in)
	assert.ErrorIs(t, err, common.ErrorValidation)

	found, err := ls.Search(context.Background(), models.ListingQuery{Limit: 9})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestListingOwnership(t *testing.T) {
	ctx := context.Background()
	_, ls := newServices(t)

	l, err := ls.Create(ctx, "user-a", validListing())
	require.NoError(t, err)

	_, err = ls.Update(ctx, "user-b", l.ID, models.ListingPatch{Name: ptr("Mine now")})
	assert.ErrorIs(t, err, common.ErrorForbidden)
	assert.EqualError(t, err, "You can only update your own listings!")

	err = ls.Delete(ctx, "user-b", l.ID)
	assert.ErrorIs(t, err, common.ErrorForbidden)
	assert.EqualError(t, err, "You can only delete your own listings!")

	unchanged, err := ls.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l, unchanged, "store is unchanged after forbidden attempts")

	updated, err := ls.Update(ctx, "user-a", l.ID, models.ListingPatch{Name: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, l.Address, updated.Address)

	require.NoError(t, ls.Delete(ctx, "user-a", l.ID))
	_, err = ls.Get(ctx, l.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListingUpdate_RevalidatesMergedListing(t *testing.T) {
	ctx := context.Background()
	_, ls := newServices(t)

	l, err := ls.Create(ctx, "user-a", validListing())
	require.NoError(t, err)

	_, err = ls.Update(ctx, "user-a", l.ID, models.ListingPatch{Offer: ptr(true), DiscountPrice: ptr(600.0)})
	assert.ErrorIs(t, err, common.ErrorValidation)

	got, err := ls.Update(ctx, "user-a", l.ID, models.ListingPatch{Offer: ptr(true), DiscountPrice: ptr(450.0)})
	require.NoError(t, err)
	assert.True(t, got.Offer)
}

func TestListingMissing(t *testing.T) {
	ctx := context.Background()
	_, ls := newServices(t)

	_, err := ls.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = ls.Update(ctx, "user-a", "missing", models.ListingPatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, ls.Delete(ctx, "user-a", "missing"), common.ErrorNotFound)
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	_, ls := newServices(t)

	_, err := ls.Create(ctx, "user-a", validListing())
	require.NoError(t, err)
	_, err = ls.Create(ctx, "user-b", validListing())
	require.NoError(t, err)

	mine, err := ls.ListByOwner(ctx, "user-a", "user-a")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "user-a", mine[0].UserRef)

	_, err = ls.ListByOwner(ctx, "user-b", "user-a")
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

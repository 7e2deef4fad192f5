package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/dbx"
	"github.com/MrSidSir/sidEstate/internal/server/models"
)

const listingColumns = `id, name, description, address, type, bedroom, bathroom,
		 regular_price, discount_price, offer, parking, furnished, image_urls, user_ref,
		 created_at, updated_at`

// sortColumns maps query sort keys onto columns; keys outside it never reach SQL.
var sortColumns = map[string]string{
	models.SortCreatedAt:     "created_at",
	models.SortUpdatedAt:     "updated_at",
	models.SortRegularPrice:  "regular_price",
	models.SortDiscountPrice: "discount_price",
	models.SortName:          "name",
	models.SortBedroom:       "bedroom",
	models.SortBathroom:      "bathroom",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (*models.Listing, error) {
	var (
		l      models.Listing
		images []byte
	)
	err := s.Scan(&l.ID, &l.Name, &l.Description, &l.Address, &l.Type, &l.Bedroom, &l.Bathroom,
		&l.RegularPrice, &l.DiscountPrice, &l.Offer, &l.Parking, &l.Furnished, &images, &l.UserRef,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &l.ImageURLs); err != nil {
		return nil, fmt.Errorf("image_urls: %w", err)
	}
	return &l, nil
}

func imagesJSON(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}
	b, err := json.Marshal(urls)
	return string(b), err
}

func (r *PostgresRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {

	query :=
		`INSERT INTO listings (name, description, address, type, bedroom, bathroom,
		   regular_price, discount_price, offer, parking, furnished, image_urls, user_ref,
		   created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		 RETURNING id
		 `

	images, err := imagesJSON(listing.ImageURLs)
	if err != nil {
		return nil, err
	}

	l := *listing
	l.CreatedAt = r.now()
	l.UpdatedAt = l.CreatedAt

	err = r.db.QueryRowContext(ctx, query,
		l.Name, l.Description, l.Address, l.Type, l.Bedroom, l.Bathroom,
		l.RegularPrice, l.DiscountPrice, l.Offer, l.Parking, l.Furnished, images, l.UserRef,
		l.CreatedAt).Scan(&l.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &l, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if !dbx.IsUUID(id) {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Update(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if !dbx.IsUUID(listing.ID) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE listings SET
		   name = $2, description = $3, address = $4, type = $5, bedroom = $6, bathroom = $7,
		   regular_price = $8, discount_price = $9, offer = $10, parking = $11, furnished = $12,
		   image_urls = $13, updated_at = $14
		 WHERE id = $1
		 RETURNING ` + listingColumns

	images, err := imagesJSON(listing.ImageURLs)
	if err != nil {
		return nil, err
	}

	l := listing
	// user_ref and created_at are never rewritten
	updated, err := scanListing(r.db.QueryRowContext(ctx, query, l.ID,
		l.Name, l.Description, l.Address, l.Type, l.Bedroom, l.Bathroom,
		l.RegularPrice, l.DiscountPrice, l.Offer, l.Parking, l.Furnished, images, r.now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !dbx.IsUUID(id) {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// buildSearch renders q as a parameterised SELECT. Only whitelisted column
// names are interpolated; every value travels as an argument.
func buildSearch(q models.ListingQuery) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if q.SearchTerm != "" {
		add("name ILIKE $%d", "%"+likeEscaper.Replace(q.SearchTerm)+"%")
	}
	boolFilters := []struct {
		col string
		f   models.BoolFilter
	}{{"offer", q.Offer}, {"furnished", q.Furnished}, {"parking", q.Parking}}
	for _, bf := range boolFilters {
		if bf.f != models.BoolAny {
			add(bf.col+" = $%d", bf.f == models.BoolTrue)
		}
	}
	if q.Type != "" {
		add("type = $%d", q.Type)
	}

	col, ok := sortColumns[q.SortField]
	if !ok {
		col = sortColumns[models.SortCreatedAt]
	}
	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}

	var b strings.Builder
	b.WriteString("SELECT " + listingColumns + " FROM listings")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	fmt.Fprintf(&b, " ORDER BY %s %s, id %s", col, dir, dir)

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	args = append(args, max(q.StartIndex, 0))
	fmt.Fprintf(&b, " OFFSET $%d", len(args))

	return b.String(), args
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Search(ctx context.Context, q models.ListingQuery) ([]models.Listing, error) {
	query, args := buildSearch(q)
	return r.list(ctx, query, args...)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE user_ref = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, ownerID)
}

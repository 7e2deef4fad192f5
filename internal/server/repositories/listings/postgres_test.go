package listings

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingID = "0b5e3f8a-7c1d-4e2f-9a6b-3c4d5e6f7a8b"

var columns = []string{"id", "name", "description", "address", "type", "bedroom", "bathroom",
	"regular_price", "discount_price", "offer", "parking", "furnished", "image_urls", "user_ref",
	"created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo := NewPostgresRepository(db)
	repo.now = func() time.Time { return base }
	return repo, mock, db
}

func row(rows *sqlmock.Rows, id, name string) *sqlmock.Rows {
	return rows.AddRow(id, name, "desc", "addr", "sale", 2, 1, 120.0, 0.0, false, true, false,
		`["https://img/1.jpg","https://img/2.jpg"]`, "owner-a", base, base)
}

func TestBuildSearch_Defaults(t *testing.T) {
	query, args := buildSearch(models.ListingQuery{SortField: models.SortCreatedAt, Descending: true, Limit: 9})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{9, 0}, args)
}

func TestBuildSearch_AllPredicates(t *testing.T) {
	query, args := buildSearch(models.ListingQuery{
		SearchTerm: "50%_off",
		Offer:      models.BoolTrue,
		Parking:    models.BoolFalse,
		Type:       "rent",
		SortField:  models.SortRegularPrice,
		StartIndex: 4,
		Limit:      2,
	})

	assert.Contains(t, query, "WHERE name ILIKE $1 AND offer = $2 AND parking = $3 AND type = $4")
	assert.Contains(t, query, "ORDER BY regular_price ASC, id ASC LIMIT $5 OFFSET $6")
	assert.Equal(t, []any{`%50\%\_off%`, true, false, "rent", 2, 4}, args)
}

func TestBuildSearch_UnknownSortFallsBack(t *testing.T) {
	query, _ := buildSearch(models.ListingQuery{SortField: "password; DROP TABLE listings", Descending: true})

	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC OFFSET $1")
	assert.NotContains(t, query, "DROP")
}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+listings\s*\(.*\)\s*VALUES\s*\(\$1,.*\$14,\s*\$14\)\s*RETURNING\s+id\s*$`
	mock.ExpectQuery(q).
		WithArgs("Flat", "desc", "addr", "sale", 1, 1, 100.0, 0.0, false, false, false,
			`["https://img/1.jpg"]`, "owner-a", base).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(listingID))

	got, err := repo.Create(context.Background(), sample("Flat", 100))
	require.NoError(t, err)
	assert.Equal(t, listingID, got.ID)
	assert.Equal(t, base, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+listings`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sample("Flat", 100))
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+listings\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs(listingID).WillReturnRows(row(sqlmock.NewRows(columns), listingID, "Flat"))
	mock.ExpectQuery(q).WithArgs(listingID).WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), listingID)
	require.NoError(t, err)
	assert.Equal(t, "Flat", got.Name)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, got.ImageURLs)
	assert.True(t, got.Parking)

	_, err = repo.GetByID(context.Background(), listingID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByID(context.Background(), "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+listings\s+SET.*updated_at\s*=\s*\$14\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,`
	mock.ExpectQuery(q).WillReturnRows(row(sqlmock.NewRows(columns), listingID, "Loft"))
	mock.ExpectQuery(q).WillReturnError(sql.ErrNoRows)

	l := sample("Loft", 120)
	l.ID = listingID
	got, err := repo.Update(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Name)

	_, err = repo.Update(context.Background(), l)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `^DELETE\s+FROM\s+listings\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs(listingID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(listingID).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), listingID))
	assert.ErrorIs(t, repo.Delete(context.Background(), listingID), common.ErrorNotFound)
}

func TestPostgresSearch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+listings\s+WHERE\s+offer\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$2\s+OFFSET\s+\$3$`
	rows := sqlmock.NewRows(columns)
	row(rows, listingID, "First")
	row(rows, "1b5e3f8a-7c1d-4e2f-9a6b-3c4d5e6f7a8b", "Second")
	mock.ExpectQuery(q).WithArgs(true, 2, 0).WillReturnRows(rows)

	got, err := repo.Search(context.Background(), models.ListingQuery{
		Offer: models.BoolTrue, SortField: models.SortCreatedAt, Descending: true, Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, names(got))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSearch_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT`).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.Search(context.Background(), models.ListingQuery{Limit: 9})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+listings\s+WHERE\s+user_ref\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC$`
	mock.ExpectQuery(q).WithArgs("owner-a").WillReturnRows(row(sqlmock.NewRows(columns), listingID, "Mine"))

	got, err := repo.ListByOwner(context.Background(), "owner-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "owner-a", got[0].UserRef)
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/dbx"
	"github.com/MrSidSir/sidEstate/internal/server/models"
)

type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func wrap(err error) error {
	if dbx.IsUniqueViolation(err) {
		return common.ErrorConflict
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password, avatar, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING id
		 `

	u := *user
	u.CreatedAt = r.now()
	u.UpdatedAt = u.CreatedAt

	err := r.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.Password, u.Avatar, u.CreatedAt).Scan(&u.ID)

	if err != nil {
		return nil, wrap(err)
	}

	return &u, nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, wrap(err)
	}

	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if !dbx.IsUUID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, username, email, password, avatar, created_at, updated_at FROM users
		 WHERE id = $1
		 `
	return r.scanOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password, avatar, created_at, updated_at FROM users
		 WHERE email = $1
		 `
	return r.scanOne(ctx, query, email)
}

// Update changes only the fields set in patch, in a single statement.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if !dbx.IsUUID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE users SET
		   username = COALESCE($2, username),
		   email = COALESCE($3, email),
		   avatar = COALESCE($4, avatar),
		   password = COALESCE($5, password),
		   updated_at = $6
		 WHERE id = $1
		 RETURNING id, username, email, password, avatar, created_at, updated_at
		 `
	return r.scanOne(ctx, query, id, patch.Username, patch.Email, patch.Avatar, patch.Password, r.now())
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !dbx.IsUUID(id) {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

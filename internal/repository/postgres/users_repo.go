package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopera/savings-backend/internal/models"
	"github.com/coopera/savings-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

// Insert is conditional on the auth_id unique constraint: a concurrent
// create for the same identity becomes a no-op instead of an error, and the
// caller re-reads.
func (r *usersRepo) Insert(ctx context.Context, u models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, auth_id, name, email, avatar_url)
		 VALUES($1,$2,$3,$4,$5)
		 ON CONFLICT (auth_id) DO NOTHING`,
		u.ID, u.AuthID, u.Name, u.Email, u.AvatarURL,
	)
	return err
}

func (r *usersRepo) GetByAuthID(ctx context.Context, authID string) (models.User, error) {
	return r.get(ctx, `WHERE auth_id=$1`, authID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.get(ctx, `WHERE id=$1`, id)
}

func (r *usersRepo) get(ctx context.Context, where, arg string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, auth_id, name, email, avatar_url, created_at, updated_at FROM users `+where,
		arg,
	).Scan(&u.ID, &u.AuthID, &u.Name, &u.Email, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	return u, err
}

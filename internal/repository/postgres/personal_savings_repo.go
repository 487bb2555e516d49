package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/models"
)

type personalSavingsRepo struct{ pool *pgxpool.Pool }

// Add upserts the aggregate row and moves its balance in one statement, so
// the mirror update stays inside the caller's transaction.
func (r *personalSavingsRepo) Add(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal) (models.PersonalSavings, error) {
	var p models.PersonalSavings
	err := tx.QueryRow(ctx,
		`INSERT INTO personal_savings(user_id, balance, last_updated_at)
		 VALUES($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET balance = personal_savings.balance + EXCLUDED.balance,
		     last_updated_at = now()
		 RETURNING user_id, balance, last_updated_at`,
		userID, delta,
	).Scan(&p.UserID, &p.Balance, &p.LastUpdatedAt)
	return p, err
}

func (r *personalSavingsRepo) GetOrCreate(ctx context.Context, userID string) (models.PersonalSavings, error) {
	if p, err := r.get(ctx, userID); err == nil {
		return p, nil
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO personal_savings(user_id, balance, last_updated_at)
		 VALUES($1, 0, now())
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return models.PersonalSavings{}, err
	}
	return r.get(ctx, userID)
}

func (r *personalSavingsRepo) get(ctx context.Context, userID string) (models.PersonalSavings, error) {
	var p models.PersonalSavings
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, balance, last_updated_at FROM personal_savings WHERE user_id=$1`,
		userID,
	).Scan(&p.UserID, &p.Balance, &p.LastUpdatedAt)
	return p, err
}

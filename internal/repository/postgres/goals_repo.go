package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/models"
	"github.com/coopera/savings-backend/internal/repository"
)

type goalsRepo struct{ pool *pgxpool.Pool }

const goalCols = `id, user_id, name, target_amount, current_amount, is_completed, deadline, created_at, updated_at`

func (r *goalsRepo) Create(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO savings_goals(id, user_id, name, target_amount, deadline)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING `+goalCols,
		g.ID, g.UserID, g.Name, g.TargetAmount, g.Deadline,
	)
	return scanGoal(row)
}

func (r *goalsRepo) GetOwned(ctx context.Context, goalID, userID string) (models.SavingsGoal, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+goalCols+` FROM savings_goals WHERE id=$1 AND user_id=$2`,
		goalID, userID,
	)
	return scanGoal(row)
}

func (r *goalsRepo) ListByUser(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+goalCols+` FROM savings_goals WHERE user_id=$1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetOwnedForUpdate locks the goal row for the remainder of the enclosing
// transaction so two concurrent withdrawals cannot both pass the
// sufficient-funds check.
func (r *goalsRepo) GetOwnedForUpdate(ctx context.Context, tx pgx.Tx, goalID, userID string) (models.SavingsGoal, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+goalCols+` FROM savings_goals WHERE id=$1 AND user_id=$2 FOR UPDATE`,
		goalID, userID,
	)
	return scanGoal(row)
}

func (r *goalsRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, goalID string, delta decimal.Decimal, completed bool) (models.SavingsGoal, error) {
	row := tx.QueryRow(ctx,
		`UPDATE savings_goals
		    SET current_amount = current_amount + $2,
		        is_completed   = $3,
		        updated_at     = now()
		  WHERE id = $1
		  RETURNING `+goalCols,
		goalID, delta, completed,
	)
	return scanGoal(row)
}

// WithTx runs fn inside one serializable transaction. The unit of work is
// detached from request cancellation: once begun it commits or rolls back
// even if the client goes away.
func (r *goalsRepo) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	ctx = context.WithoutCancel(ctx)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func scanGoal(row pgx.Row) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.IsCompleted, &g.Deadline, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SavingsGoal{}, repository.ErrNotFound
	}
	return g, err
}

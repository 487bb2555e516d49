package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopera/savings-backend/internal/models"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

// Insert appends one ledger record. It only runs inside the ledger's atomic
// unit, so it takes the open transaction rather than the pool.
func (r *transactionsRepo) Insert(ctx context.Context, tx pgx.Tx, t models.SavingsTransaction) (models.SavingsTransaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO savings_transactions(id, goal_id, amount, type, description)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, goal_id, amount, type, description, created_at`,
		t.ID, t.GoalID, t.Amount, t.Type, t.Description,
	).Scan(&t.ID, &t.GoalID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt)
	return t, err
}

func (r *transactionsRepo) ListByGoal(ctx context.Context, goalID string) ([]models.SavingsTransaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, goal_id, amount, type, description, created_at
		   FROM savings_transactions
		  WHERE goal_id=$1
		  ORDER BY created_at DESC`,
		goalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SavingsTransaction
	for rows.Next() {
		var t models.SavingsTransaction
		if err := rows.Scan(&t.ID, &t.GoalID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/models"
)

type Users interface {
	// Insert performs a conditional create: a row whose auth id already
	// exists is silently left untouched, so concurrent first-sight
	// resolution never fails on the unique constraint.
	Insert(ctx context.Context, u models.User) error
	GetByAuthID(ctx context.Context, authID string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type Goals interface {
	Create(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error)
	// GetOwned returns ErrNotFound when the goal is absent or belongs to a
	// different user; ownership is never revealed to non-owners.
	GetOwned(ctx context.Context, goalID, userID string) (models.SavingsGoal, error)
	ListByUser(ctx context.Context, userID string) ([]models.SavingsGoal, error)

	// Tx-scoped operations used inside the ledger's atomic unit.
	GetOwnedForUpdate(ctx context.Context, tx pgx.Tx, goalID, userID string) (models.SavingsGoal, error)
	ApplyDelta(ctx context.Context, tx pgx.Tx, goalID string, delta decimal.Decimal, completed bool) (models.SavingsGoal, error)

	// WithTx runs fn inside one serializable database transaction.
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error
}

type SavingsTransactions interface {
	Insert(ctx context.Context, tx pgx.Tx, t models.SavingsTransaction) (models.SavingsTransaction, error)
	ListByGoal(ctx context.Context, goalID string) ([]models.SavingsTransaction, error)
}

type PersonalSavings interface {
	// Add upserts the per-user aggregate row and adds delta to its balance.
	Add(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal) (models.PersonalSavings, error)
	GetOrCreate(ctx context.Context, userID string) (models.PersonalSavings, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

type Notifications interface {
	Create(ctx context.Context, n models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/api/validate"
	"github.com/coopera/savings-backend/internal/metrics"
	"github.com/coopera/savings-backend/internal/models"
	repo "github.com/coopera/savings-backend/internal/repository"
	"github.com/coopera/savings-backend/internal/worker"
)

// ErrInsufficientFunds rejects a withdrawal larger than the goal's current
// balance. The goal is left untouched.
var ErrInsufficientFunds = errors.New("insufficient funds")

// LedgerService owns the savings-goal ledger: every balance change has
// exactly one transaction record, balances never go negative, and each
// mutating request runs as a single serializable store transaction.
type LedgerService struct {
	goals repo.Goals
	trx   repo.SavingsTransactions
	agg   repo.PersonalSavings
	log   repo.AuditLogs
	notif repo.Notifications
	wp    *worker.Pool
}

func NewLedgerService(g repo.Goals, t repo.SavingsTransactions, a repo.PersonalSavings, l repo.AuditLogs, n repo.Notifications, wp *worker.Pool) *LedgerService {
	return &LedgerService{goals: g, trx: t, agg: a, log: l, notif: n, wp: wp}
}

// ApplyTransaction applies one deposit or withdrawal to an owned goal.
// The transaction record, the balance delta, and the recomputed completion
// flag persist together or not at all. The returned goal carries its full
// history, most recent first.
func (s *LedgerService) ApplyTransaction(ctx context.Context, userID, goalID string, amount decimal.Decimal, txType models.TransactionType) (models.SavingsGoal, error) {
	var errs validate.Errs
	if ef := validate.PositiveAmount("amount", amount); ef != nil {
		errs = append(errs, *ef)
	}
	if !models.ValidTransactionType(txType) {
		errs = append(errs, validate.ErrField{Field: "type", Msg: "must be DEPOSIT or WITHDRAWAL"})
	}
	if len(errs) > 0 {
		return models.SavingsGoal{}, errs
	}

	var (
		updated      models.SavingsGoal
		wasCompleted bool
	)
	err := s.goals.WithTx(ctx, func(tx pgx.Tx) error {
		g, err := s.goals.GetOwnedForUpdate(ctx, tx, goalID, userID)
		if err != nil {
			return err
		}
		if txType == models.TxnWithdrawal && g.CurrentAmount.LessThan(amount) {
			return ErrInsufficientFunds
		}
		wasCompleted = g.IsCompleted

		delta := models.SignedEffect(txType, amount)
		completed := models.EvaluateCompletion(g.CurrentAmount, amount, g.TargetAmount, txType, g.IsCompleted)

		if _, err := s.trx.Insert(ctx, tx, models.SavingsTransaction{
			GoalID:      g.ID,
			Amount:      delta,
			Type:        txType,
			Description: models.DescribeTransaction(txType, amount),
		}); err != nil {
			return err
		}
		updated, err = s.goals.ApplyDelta(ctx, tx, g.ID, delta, completed)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientFunds):
			metrics.LedgerInsufficientFunds.Inc()
		case errors.Is(err, repo.ErrNotFound):
			// not a store failure
		default:
			metrics.LedgerFailures.Inc()
		}
		return models.SavingsGoal{}, err
	}

	metrics.LedgerMutationsTotal.WithLabelValues(string(txType)).Inc()
	s.audit(updated.ID, "ledger_apply", fmt.Sprintf("%s %s", txType, amount.StringFixed(2)))
	if updated.IsCompleted && !wasCompleted {
		s.notifyCompleted(updated)
	}

	history, err := s.trx.ListByGoal(ctx, updated.ID)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	updated.Transactions = history
	return updated, nil
}

// AddFunds increments an owned goal and mirrors the amount into the owner's
// personal savings aggregate in the same atomic unit, creating the aggregate
// row on demand. Unlike ApplyTransaction it records no SavingsTransaction;
// the two entry points serve different call sites and are deliberately kept
// separate.
func (s *LedgerService) AddFunds(ctx context.Context, userID, goalID string, amount decimal.Decimal) (models.SavingsGoal, error) {
	if ef := validate.PositiveAmount("amount", amount); ef != nil {
		return models.SavingsGoal{}, validate.Errs{*ef}
	}

	var updated models.SavingsGoal
	err := s.goals.WithTx(ctx, func(tx pgx.Tx) error {
		g, err := s.goals.GetOwnedForUpdate(ctx, tx, goalID, userID)
		if err != nil {
			return err
		}
		updated, err = s.goals.ApplyDelta(ctx, tx, g.ID, amount, g.IsCompleted)
		if err != nil {
			return err
		}
		_, err = s.agg.Add(ctx, tx, g.UserID, amount)
		return err
	})
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			metrics.LedgerFailures.Inc()
		}
		return models.SavingsGoal{}, err
	}

	metrics.LedgerMutationsTotal.WithLabelValues("add_funds").Inc()
	s.audit(updated.ID, "add_funds", fmt.Sprintf("mirrored %s", amount.StringFixed(2)))
	return updated, nil
}

// ListTransactions is the independent read path over the ledger: ownership
// is re-verified, then history is returned newest first, unpaginated.
func (s *LedgerService) ListTransactions(ctx context.Context, userID, goalID string) ([]models.SavingsTransaction, error) {
	if _, err := s.goals.GetOwned(ctx, goalID, userID); err != nil {
		return nil, err
	}
	return s.trx.ListByGoal(ctx, goalID)
}

func (s *LedgerService) audit(goalID, action, details string) {
	s.wp.Submit(func() {
		var det map[string]any
		if details != "" {
			det = map[string]any{"message": details}
		}
		id := goalID
		_ = s.log.Create(context.Background(), models.AuditLog{
			EntityType: "savings_goal",
			EntityID:   &id,
			Action:     action,
			Details:    det,
		})
	})
}

func (s *LedgerService) notifyCompleted(g models.SavingsGoal) {
	s.wp.Submit(func() {
		_ = s.notif.Create(context.Background(), models.Notification{
			UserID:  g.UserID,
			Kind:    models.NotifGoalCompleted,
			Message: fmt.Sprintf("Savings goal %q reached its target of $%s", g.Name, g.TargetAmount.StringFixed(2)),
		})
	})
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a named target owned by exactly one user. CurrentAmount is
// mutated only through the ledger and never goes negative. Over-funding past
// the target is permitted.
type SavingsGoal struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	Name          string               `json:"name"`
	TargetAmount  decimal.Decimal      `json:"target_amount"`
	CurrentAmount decimal.Decimal      `json:"current_amount"`
	IsCompleted   bool                 `json:"is_completed"`
	Deadline      *time.Time           `json:"deadline,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Transactions  []SavingsTransaction `json:"transactions,omitempty"`
}

// EvaluateCompletion derives the persisted completion flag for a ledger
// mutation. A deposit recomputes the flag from the pre-mutation balance; a
// withdrawal never clears a previously-set flag, so completion is sticky.
func EvaluateCompletion(prev, amount, target decimal.Decimal, t TransactionType, wasCompleted bool) bool {
	if t == TxnWithdrawal {
		return wasCompleted
	}
	return prev.Add(amount).GreaterThanOrEqual(target)
}

package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnDeposit    TransactionType = "DEPOSIT"
	TxnWithdrawal TransactionType = "WITHDRAWAL"
)

// ValidTransactionType reports whether t is one of the two ledger mutation types.
func ValidTransactionType(t TransactionType) bool {
	return t == TxnDeposit || t == TxnWithdrawal
}

// SavingsTransaction is an immutable, append-only record of one ledger
// mutation. Amount carries the signed effect: positive for deposits,
// negative for withdrawals. Rows are never updated or deleted; the canonical
// read order is created_at descending.
type SavingsTransaction struct {
	ID          string          `json:"id"`
	GoalID      string          `json:"goal_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DescribeTransaction builds the human-readable description stored with a
// ledger record, e.g. "Deposit of $30.00". amount is the unsigned magnitude.
func DescribeTransaction(t TransactionType, amount decimal.Decimal) string {
	verb := "Deposit"
	if t == TxnWithdrawal {
		verb = "Withdrawal"
	}
	return fmt.Sprintf("%s of $%s", verb, amount.StringFixed(2))
}

// SignedEffect converts an unsigned amount into the signed ledger effect.
func SignedEffect(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == TxnWithdrawal {
		return amount.Neg()
	}
	return amount
}

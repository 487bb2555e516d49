package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonalSavings is the denormalized per-user running total mirroring
// direct deposits across that user's goals. One row per user, created on
// demand, updated in the same atomic unit as the goal mutation that caused
// the change.
type PersonalSavings struct {
	UserID        string          `json:"user_id"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"last_updated_at"`
}

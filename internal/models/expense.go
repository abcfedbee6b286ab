package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PoolPayer is the payer ID of expenses paid from the collected fund.
const PoolPayer = "POOL"

// Expense is a ledger line charged to the trip fund.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// PayerID is PoolPayer or the ID of the participant who paid out of pocket.
	PayerID string `json:"payerId"`

	// Amount is the net amount charged to the fund:
	// OriginalAmount minus FeeCoveredAmount.
	Amount decimal.Decimal `json:"amount"`

	// OriginalAmount is the amount the payer actually spent.
	OriginalAmount decimal.Decimal `json:"originalAmount"`

	// FeeCoveredAmount is the part of the spend credited to the payer's own fee.
	FeeCoveredAmount decimal.Decimal `json:"feeCoveredAmount"`

	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// Transfer moves part of a payer's surplus onto another participant.
type Transfer struct {
	TargetID string          `json:"targetId"`
	Amount   decimal.Decimal `json:"amount"`
}

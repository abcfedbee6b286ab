// Package settlement applies payments, expenses and surplus transfers to a trip
// so that fee coverage, surplus and the fund balance stay consistent.
package settlement

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
)

var (
	ErrUnknownPayer          = errors.New("payer is not a participant of the trip")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrInvalidTransferTarget = errors.New("invalid transfer target")
)

// Engine holds the knobs of the settlement rules.
// The zero value is usable.
type Engine struct {
	// Now stamps new expenses. Defaults to time.Now.
	Now func() time.Time

	// NewID generates expense IDs. Defaults to uuid.NewString.
	NewID func() string

	// KeepFeeCoveredExpenses records a zero-amount ledger line when an expense
	// is entirely absorbed by the payer's outstanding fee. When false the
	// expense leaves no ledger line and only the payer's payment changes.
	KeepFeeCoveredExpenses bool
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

func (e *Engine) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

// Outstanding is the part of the fee the participant still owes.
func Outstanding(p models.TripParticipant) decimal.Decimal {
	return decimal.Max(decimal.Zero, p.Fee.Sub(p.PaidAmount))
}

// Surplus is what the participant paid beyond their fee.
func Surplus(p models.TripParticipant) decimal.Decimal {
	return decimal.Max(decimal.Zero, p.PaidAmount.Sub(p.Fee))
}

// IsPaid reports whether the participant's fee is fully covered.
func IsPaid(p models.TripParticipant) bool {
	return p.PaidAmount.GreaterThanOrEqual(p.Fee)
}

// RecordPayment sets the cumulative paid amount and payment method of a participant.
// An empty method records cash. It reports false, and changes nothing, when the
// participant is not on the trip.
func (e *Engine) RecordPayment(trip *models.Trip, participantID string, amount decimal.Decimal, method string) bool {
	p := trip.Participant(participantID)
	if p == nil {
		return false
	}
	if method == "" {
		method = models.MethodCash
	}
	p.PaidAmount = amount
	p.PaymentMethod = method
	return true
}

// TogglePaid flips a participant between unpaid (nothing paid) and paid
// (exactly the fee, in cash).
func (e *Engine) TogglePaid(trip *models.Trip, participantID string) (*models.TripParticipant, error) {
	p := trip.Participant(participantID)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrParticipantNotFound, participantID)
	}
	if IsPaid(*p) {
		p.PaidAmount = decimal.Zero
		p.PaymentMethod = ""
	} else {
		p.PaidAmount = p.Fee
		p.PaymentMethod = models.MethodCash
	}
	return p, nil
}

// ExpenseResult describes how a registered expense was settled.
type ExpenseResult struct {
	// FeeCovered is the part of the spend credited to the payer's fee.
	FeeCovered decimal.Decimal

	// Expense is the ledger line added to the trip, nil when none was created.
	Expense *models.Expense
}

// RegisterExpense charges a spend to the trip.
//
// When a participant paid out of pocket, the spend first settles whatever is
// left of their fee; only the remainder is charged to the fund.
func (e *Engine) RegisterExpense(trip *models.Trip, payerID string, amount decimal.Decimal, description string) (ExpenseResult, error) {
	feeCovered := decimal.Zero

	if payerID != models.PoolPayer {
		payer := trip.Participant(payerID)
		if payer == nil {
			return ExpenseResult{}, fmt.Errorf("%w: %s", ErrUnknownPayer, payerID)
		}
		feeCovered = decimal.Min(amount, Outstanding(*payer))
		if feeCovered.IsPositive() {
			payer.PaidAmount = payer.PaidAmount.Add(feeCovered)
			payer.PaymentMethod = models.MethodAsExpense
			payer.AppendNote(fmt.Sprintf("تم تغطية %s من القِطَّة عبر مصروف: %s", feeCovered, description))
		}
	}

	net := amount.Sub(feeCovered)
	result := ExpenseResult{FeeCovered: feeCovered}
	if !net.IsPositive() && !e.KeepFeeCoveredExpenses {
		return result, nil
	}

	trip.Expenses = append(trip.Expenses, models.Expense{
		ID:               e.newID(),
		PayerID:          payerID,
		Amount:           net,
		OriginalAmount:   amount,
		FeeCoveredAmount: feeCovered,
		Description:      description,
		Date:             e.now(),
	})
	result.Expense = &trip.Expenses[len(trip.Expenses)-1]
	return result, nil
}

// DeleteExpense removes a ledger line. Fee coverage granted when the expense
// was registered stays on the payer.
func (e *Engine) DeleteExpense(trip *models.Trip, expenseID string) error {
	for i := range trip.Expenses {
		if trip.Expenses[i].ID == expenseID {
			trip.Expenses = append(trip.Expenses[:i], trip.Expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrExpenseNotFound, expenseID)
}

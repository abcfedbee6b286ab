package settlement

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
)

// Supporter is a participant who paid beyond their fee.
type Supporter struct {
	Name   string
	Amount decimal.Decimal
}

// MethodTotal is the amount collected through one payment method.
type MethodTotal struct {
	Method string
	Amount decimal.Decimal
}

// Summary holds the fund figures of a trip.
type Summary struct {
	TotalPaid     decimal.Decimal // Σ paid amounts
	BaseFees      decimal.Decimal // Σ min(paid, fee)
	TotalExpenses decimal.Decimal // Σ expense amounts charged to the fund
	NetBalance    decimal.Decimal // TotalPaid - TotalExpenses

	Supporters     []Supporter   // surplus per participant, largest first
	PaymentMethods []MethodTotal // largest first

	Participants int
	Adults       int
	Children     int
	Paid         int
	Unpaid       int
}

// Summarize computes the fund figures of a trip.
//
// Algorithm:
// - base fee of a participant: min(paid, fee); surplus: max(0, paid - fee)
// - net balance: what was collected minus what was charged to the fund
// - payment methods: paid amounts grouped by method, participants without a
// method or payment are left out
func Summarize(trip *models.Trip) Summary {
	s := Summary{
		TotalPaid:     decimal.Zero,
		BaseFees:      decimal.Zero,
		TotalExpenses: decimal.Zero,
		Participants:  len(trip.Participants),
	}

	byMethod := make(map[string]decimal.Decimal)
	for _, p := range trip.Participants {
		s.TotalPaid = s.TotalPaid.Add(p.PaidAmount)
		s.BaseFees = s.BaseFees.Add(decimal.Min(p.PaidAmount, p.Fee))

		if surplus := Surplus(p); surplus.IsPositive() {
			s.Supporters = append(s.Supporters, Supporter{Name: p.Name, Amount: surplus})
		}
		if p.PaidAmount.IsPositive() && p.PaymentMethod != "" {
			byMethod[p.PaymentMethod] = byMethod[p.PaymentMethod].Add(p.PaidAmount)
		}

		switch p.Type {
		case models.Child:
			s.Children++
		default:
			s.Adults++
		}
		if IsPaid(p) {
			s.Paid++
		} else {
			s.Unpaid++
		}
	}

	for _, e := range trip.Expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
	}
	s.NetBalance = s.TotalPaid.Sub(s.TotalExpenses)

	slices.SortStableFunc(s.Supporters, func(a, b Supporter) int {
		return b.Amount.Cmp(a.Amount)
	})

	for method, amount := range byMethod {
		s.PaymentMethods = append(s.PaymentMethods, MethodTotal{Method: method, Amount: amount})
	}
	slices.SortFunc(s.PaymentMethods, func(a, b MethodTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})

	return s
}

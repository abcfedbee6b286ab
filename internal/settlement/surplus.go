package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
)

// DistributionResult summarises a surplus distribution.
type DistributionResult struct {
	// Surplus is the payer's surplus before the distribution.
	Surplus decimal.Decimal

	// Transferred is the sum of all transfer amounts.
	Transferred decimal.Decimal

	// Remaining is Surplus minus Transferred. Negative means the payer gave
	// away more than their surplus.
	Remaining decimal.Decimal
}

// OverDistributed reports whether more than the surplus was handed out.
func (r DistributionResult) OverDistributed() bool {
	return r.Remaining.IsNegative()
}

// PlanDistribution validates transfers and computes the distribution figures
// without touching the trip. Transfers with a non-positive amount are dropped.
func PlanDistribution(trip *models.Trip, payerID string, transfers []models.Transfer) ([]models.Transfer, DistributionResult, error) {
	payer := trip.Participant(payerID)
	if payer == nil {
		return nil, DistributionResult{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, payerID)
	}

	kept := make([]models.Transfer, 0, len(transfers))
	total := decimal.Zero
	for _, t := range transfers {
		if !t.Amount.IsPositive() {
			continue
		}
		if t.TargetID == payerID {
			return nil, DistributionResult{}, fmt.Errorf("%w: payer cannot receive its own surplus", ErrInvalidTransferTarget)
		}
		if trip.Participant(t.TargetID) == nil {
			return nil, DistributionResult{}, fmt.Errorf("%w: %s", ErrInvalidTransferTarget, t.TargetID)
		}
		kept = append(kept, t)
		total = total.Add(t.Amount)
	}

	surplus := Surplus(*payer)
	return kept, DistributionResult{
		Surplus:     surplus,
		Transferred: total,
		Remaining:   surplus.Sub(total),
	}, nil
}

// DistributeSurplus moves parts of a payer's payment onto other participants.
//
// Over-distribution is reported through the result, not refused: callers that
// must not allow it check OverDistributed (or PlanDistribution) first.
func (e *Engine) DistributeSurplus(trip *models.Trip, payerID string, transfers []models.Transfer) (DistributionResult, error) {
	kept, result, err := PlanDistribution(trip, payerID, transfers)
	if err != nil {
		return DistributionResult{}, err
	}
	if len(kept) == 0 {
		return result, nil
	}

	payer := trip.Participant(payerID)
	for _, t := range kept {
		target := trip.Participant(t.TargetID)
		target.PaidAmount = target.PaidAmount.Add(t.Amount)
		target.PaymentMethod = models.CoveredBy(payer.Name)
		target.AppendNote(fmt.Sprintf("تم استلام دعم %s من %s.", t.Amount, payer.Name))
	}
	payer.PaidAmount = payer.PaidAmount.Sub(result.Transferred)
	payer.AppendNote(fmt.Sprintf("تم تحويل فائض %s إلى مشاركين آخرين.", result.Transferred))

	return result, nil
}

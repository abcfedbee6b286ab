package settlement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
)

// Status is the payment state of a participant.
type Status string

const (
	StatusAll     Status = "ALL"
	StatusPaid    Status = "PAID"
	StatusUnpaid  Status = "UNPAID"
	StatusSurplus Status = "SURPLUS"
)

// StatusOf classifies a participant. A participant with surplus is also paid,
// but reports StatusSurplus.
func StatusOf(p models.TripParticipant) Status {
	switch {
	case p.PaidAmount.GreaterThan(p.Fee):
		return StatusSurplus
	case IsPaid(p):
		return StatusPaid
	default:
		return StatusUnpaid
	}
}

// FilterParticipants returns the participants matching status and whose name
// contains search (case-insensitive). StatusPaid includes surplus payers.
func FilterParticipants(trip *models.Trip, status Status, search string) []models.TripParticipant {
	needle := models.NormalizeName(search)
	var out []models.TripParticipant
	for _, p := range trip.Participants {
		if needle != "" && !strings.Contains(models.NormalizeName(p.Name), needle) {
			continue
		}
		switch status {
		case StatusPaid:
			if !IsPaid(p) {
				continue
			}
		case StatusUnpaid:
			if IsPaid(p) {
				continue
			}
		case StatusSurplus:
			if StatusOf(p) != StatusSurplus {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// NewParticipant describes a person being added to a trip.
type NewParticipant struct {
	Name string
	Type models.ParticipantType

	// Fee overrides the trip's default fee for Type when set.
	Fee *decimal.Decimal

	// Supporter marks someone who only contributes surplus: their fee is zero.
	Supporter bool

	// PaidAmount and PaymentMethod record an upfront payment.
	PaidAmount    decimal.Decimal
	PaymentMethod string
}

// AddParticipants appends people to the trip and returns those actually added.
// Anyone already on the trip, by ID or by normalised name, is skipped.
func (e *Engine) AddParticipants(trip *models.Trip, people []NewParticipant) []models.TripParticipant {
	seen := make(map[string]bool, len(trip.Participants))
	for _, p := range trip.Participants {
		seen[p.ID] = true
		seen[models.NormalizeName(p.Name)] = true
	}

	var added []models.TripParticipant
	for _, np := range people {
		id := models.ParticipantID(np.Name)
		key := models.NormalizeName(np.Name)
		if key == "" || seen[id] || seen[key] {
			continue
		}
		seen[id], seen[key] = true, true

		p := models.TripParticipant{
			MasterParticipant: models.MasterParticipant{ID: id, Name: strings.TrimSpace(np.Name), Type: np.Type},
			Fee:               trip.FeeFor(np.Type),
			PaidAmount:        np.PaidAmount,
		}
		if np.Fee != nil {
			p.Fee = *np.Fee
		}
		if np.Supporter {
			p.Fee = decimal.Zero
		}
		if np.PaidAmount.IsPositive() {
			p.PaymentMethod = np.PaymentMethod
			if p.PaymentMethod == "" {
				p.PaymentMethod = models.MethodCash
			}
			if np.Supporter {
				p.Notes = "داعم خارجي"
			}
		}
		added = append(added, p)
	}
	trip.Participants = append(trip.Participants, added...)
	return added
}

// RemoveParticipant drops a participant from the trip. Their expenses stay
// in the ledger.
func (e *Engine) RemoveParticipant(trip *models.Trip, participantID string) error {
	for i := range trip.Participants {
		if trip.Participants[i].ID == participantID {
			trip.Participants = append(trip.Participants[:i], trip.Participants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrParticipantNotFound, participantID)
}

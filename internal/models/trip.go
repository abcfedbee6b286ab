package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Trip is an outing with a shared fund.
// Participants and expenses are owned by the trip.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "رحلة البر").
	Name string `json:"name"`

	// CreatedAt is when the trip was created.
	CreatedAt time.Time `json:"createdAt"`

	// TripDate, TripTime and Location are optional free text shown in the report.
	TripDate string `json:"tripDate,omitempty"`
	TripTime string `json:"tripTime,omitempty"`
	Location string `json:"location,omitempty"`

	// AdultFee and ChildFee are the default fees applied to new participants.
	// Changing them does not touch participants already on the trip.
	AdultFee decimal.Decimal `json:"adultFee"`
	ChildFee decimal.Decimal `json:"childFee"`

	Participants []TripParticipant `json:"participants"`
	Expenses     []Expense         `json:"expenses"`
}

// FeeFor returns the trip's default fee for a participant type.
func (t *Trip) FeeFor(pt ParticipantType) decimal.Decimal {
	if pt == Child {
		return t.ChildFee
	}
	return t.AdultFee
}

// Participant returns the participant with the given ID, or nil.
func (t *Trip) Participant(id string) *TripParticipant {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the trip.
// Decimals are immutable values, so copying the slices is enough.
func (t Trip) Clone() Trip {
	t.Participants = slices.Clone(t.Participants)
	t.Expenses = slices.Clone(t.Expenses)
	return t
}

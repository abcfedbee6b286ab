// Package api defines the qitta.v1 RPC messages and their Connect bindings.
//
// Messages are plain Go structs carried by the JSON codec, so any Connect or
// plain HTTP client can call the services with `Content-Type: application/json`.
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
)

// ParticipantInput describes a person to add to a trip.
type ParticipantInput struct {
	Name string `json:"name"`

	// Type is free text ("adult", "كبير", "صغير", ...).
	Type string `json:"type,omitempty"`

	// Fee overrides the trip's default fee for the participant type.
	Fee *decimal.Decimal `json:"fee,omitempty"`

	// Supporter adds a zero-fee participant who only contributes surplus.
	Supporter bool `json:"supporter,omitempty"`

	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

type CreateTripRequest struct {
	Name         string             `json:"name"`
	TripDate     string             `json:"tripDate,omitempty"`
	TripTime     string             `json:"tripTime,omitempty"`
	Location     string             `json:"location,omitempty"`
	AdultFee     *decimal.Decimal   `json:"adultFee,omitempty"`
	ChildFee     *decimal.Decimal   `json:"childFee,omitempty"`
	Participants []ParticipantInput `json:"participants"`
}

type CreateTripResponse struct {
	Trip models.Trip `json:"trip"`
}

// UpdateTripRequest edits the trip details. Participants and expenses are kept
// as they are, including fees already assigned.
type UpdateTripRequest struct {
	TripID   string           `json:"tripId"`
	Name     string           `json:"name"`
	TripDate string           `json:"tripDate,omitempty"`
	TripTime string           `json:"tripTime,omitempty"`
	Location string           `json:"location,omitempty"`
	AdultFee *decimal.Decimal `json:"adultFee,omitempty"`
	ChildFee *decimal.Decimal `json:"childFee,omitempty"`
}

type UpdateTripResponse struct {
	Trip models.Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripID string `json:"tripId"`
}

type DeleteTripResponse struct{}

type GetTripRequest struct {
	TripID string `json:"tripId"`
}

type GetTripResponse struct {
	Trip models.Trip `json:"trip"`
}

type ListTripsRequest struct{}

// TripSummary is a trip as shown in the trip list.
type TripSummary struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	CreatedAt        time.Time       `json:"createdAt"`
	TripDate         string          `json:"tripDate,omitempty"`
	Location         string          `json:"location,omitempty"`
	ParticipantCount int             `json:"participantCount"`
	PaidCount        int             `json:"paidCount"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	NetBalance       decimal.Decimal `json:"netBalance"`
}

type ListTripsResponse struct {
	Trips []TripSummary `json:"trips"`
}

type AddParticipantsRequest struct {
	TripID       string             `json:"tripId"`
	Participants []ParticipantInput `json:"participants"`
}

type AddParticipantsResponse struct {
	// Added lists the participants actually added; duplicates are skipped.
	Added []models.TripParticipant `json:"added"`
	Trip  models.Trip              `json:"trip"`
}

type RemoveParticipantRequest struct {
	TripID        string `json:"tripId"`
	ParticipantID string `json:"participantId"`
}

type RemoveParticipantResponse struct {
	Trip models.Trip `json:"trip"`
}

type UpdateParticipantRequest struct {
	TripID        string           `json:"tripId"`
	ParticipantID string           `json:"participantId"`
	Fee           *decimal.Decimal `json:"fee,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

type UpdateParticipantResponse struct {
	Participant models.TripParticipant `json:"participant"`
}

type ListParticipantsRequest struct {
	TripID string `json:"tripId"`

	// Status is ALL (default), PAID, UNPAID or SURPLUS.
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

type ListParticipantsResponse struct {
	Participants []models.TripParticipant `json:"participants"`
}

type RecordPaymentRequest struct {
	TripID        string          `json:"tripId"`
	ParticipantID string          `json:"participantId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method,omitempty"`
}

type RecordPaymentResponse struct {
	Participant models.TripParticipant `json:"participant"`
}

type TogglePaidRequest struct {
	TripID        string `json:"tripId"`
	ParticipantID string `json:"participantId"`
}

type TogglePaidResponse struct {
	Participant models.TripParticipant `json:"participant"`
}

type RegisterExpenseRequest struct {
	TripID string `json:"tripId"`

	// PayerID is "POOL" or a participant ID.
	PayerID     string          `json:"payerId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type RegisterExpenseResponse struct {
	FeeCovered decimal.Decimal `json:"feeCovered"`

	// Expense is nil when the spend was entirely absorbed by the payer's fee.
	Expense *models.Expense `json:"expense,omitempty"`
	Trip    models.Trip     `json:"trip"`
}

type DeleteExpenseRequest struct {
	TripID    string `json:"tripId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type DistributeSurplusRequest struct {
	TripID    string            `json:"tripId"`
	PayerID   string            `json:"payerId"`
	Transfers []models.Transfer `json:"transfers"`
}

type DistributeSurplusResponse struct {
	Surplus     decimal.Decimal `json:"surplus"`
	Transferred decimal.Decimal `json:"transferred"`
	Remaining   decimal.Decimal `json:"remaining"`
	Trip        models.Trip     `json:"trip"`
}

type GetSummaryRequest struct {
	TripID string `json:"tripId"`
}

type Supporter struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type MethodTotal struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

type GetSummaryResponse struct {
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	BaseFees       decimal.Decimal `json:"baseFees"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	NetBalance     decimal.Decimal `json:"netBalance"`
	Supporters     []Supporter     `json:"supporters"`
	PaymentMethods []MethodTotal   `json:"paymentMethods"`
	Participants   int             `json:"participants"`
	Adults         int             `json:"adults"`
	Children       int             `json:"children"`
	Paid           int             `json:"paid"`
	Unpaid         int             `json:"unpaid"`
}

type GetReportRequest struct {
	TripID string `json:"tripId"`
}

type GetReportResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type FetchRosterRequest struct{}

type FetchRosterResponse struct {
	Participants []models.MasterParticipant `json:"participants"`
}

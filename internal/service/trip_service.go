package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/metrics"
	"github.com/mmynk/qitta/internal/models"
	"github.com/mmynk/qitta/internal/report"
	"github.com/mmynk/qitta/internal/settlement"
	"github.com/mmynk/qitta/internal/tripstore"
	pb "github.com/mmynk/qitta/pkg/api"
)

// TripServiceConfig holds the defaults applied to new trips.
type TripServiceConfig struct {
	DefaultAdultFee decimal.Decimal
	DefaultChildFee decimal.Decimal
	Metrics         *metrics.Metrics
}

// TripService implements the Connect TripService
type TripService struct {
	store   *tripstore.TripStore
	engine  *settlement.Engine
	cfg     TripServiceConfig
	metrics *metrics.Metrics
}

var _ pb.TripServiceHandler = (*TripService)(nil)

// NewTripService creates a new TripService backed by the given trip store.
func NewTripService(store *tripstore.TripStore, engine *settlement.Engine, cfg TripServiceConfig) *TripService {
	return &TripService{store: store, engine: engine, cfg: cfg, metrics: cfg.Metrics}
}

// CreateTrip creates a trip with its initial participants.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[pb.CreateTripRequest]) (*connect.Response[pb.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"participants_count", len(req.Msg.Participants),
	)

	if strings.TrimSpace(req.Msg.Name) == "" {
		return nil, invalidArgument("name is required")
	}
	if len(req.Msg.Participants) == 0 {
		return nil, invalidArgument("at least one participant is required")
	}
	adultFee, childFee, err := s.fees(req.Msg.AdultFee, req.Msg.ChildFee, s.cfg.DefaultAdultFee, s.cfg.DefaultChildFee)
	if err != nil {
		return nil, err
	}
	people, err := toNewParticipants(req.Msg.Participants)
	if err != nil {
		return nil, err
	}

	trip := models.Trip{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Msg.Name),
		CreatedAt:    time.Now().UTC(),
		TripDate:     req.Msg.TripDate,
		TripTime:     req.Msg.TripTime,
		Location:     req.Msg.Location,
		AdultFee:     adultFee,
		ChildFee:     childFee,
		Participants: []models.TripParticipant{},
		Expenses:     []models.Expense{},
	}
	s.engine.AddParticipants(&trip, people)

	if err := s.store.Create(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.SetTrips(s.store.Len())

	slog.Info("Trip created", "trip_id", trip.ID, "participants_count", len(trip.Participants))
	return connect.NewResponse(&pb.CreateTripResponse{Trip: trip}), nil
}

// UpdateTrip edits the details and default fees of a trip.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[pb.UpdateTripRequest]) (*connect.Response[pb.UpdateTripResponse], error) {
	slog.Info("UpdateTrip request received", "trip_id", req.Msg.TripID)

	if strings.TrimSpace(req.Msg.Name) == "" {
		return nil, invalidArgument("name is required")
	}

	trip, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		adultFee, childFee, err := s.fees(req.Msg.AdultFee, req.Msg.ChildFee, t.AdultFee, t.ChildFee)
		if err != nil {
			return err
		}
		t.Name = strings.TrimSpace(req.Msg.Name)
		t.TripDate = req.Msg.TripDate
		t.TripTime = req.Msg.TripTime
		t.Location = req.Msg.Location
		t.AdultFee = adultFee
		t.ChildFee = childFee
		return nil
	})
	if err != nil {
		slog.Error("UpdateTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.UpdateTripResponse{Trip: trip}), nil
}

// DeleteTrip removes a trip with everything it owns.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[pb.DeleteTripRequest]) (*connect.Response[pb.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripID)

	if err := s.store.Delete(ctx, req.Msg.TripID); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.SetTrips(s.store.Len())

	return connect.NewResponse(&pb.DeleteTripResponse{}), nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[pb.GetTripRequest]) (*connect.Response[pb.GetTripResponse], error) {
	trip, err := s.store.Get(req.Msg.TripID)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&pb.GetTripResponse{Trip: trip}), nil
}

// ListTrips returns a summary of every trip, newest first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[pb.ListTripsRequest]) (*connect.Response[pb.ListTripsResponse], error) {
	trips := s.store.List()
	summaries := make([]pb.TripSummary, len(trips))
	for i := range trips {
		summaries[i] = toTripSummary(&trips[i])
	}

	slog.Info("ListTrips successful", "count", len(summaries))
	return connect.NewResponse(&pb.ListTripsResponse{Trips: summaries}), nil
}

// AddParticipants adds roster picks, custom people or supporters to a trip.
func (s *TripService) AddParticipants(ctx context.Context, req *connect.Request[pb.AddParticipantsRequest]) (*connect.Response[pb.AddParticipantsResponse], error) {
	slog.Info("AddParticipants request received",
		"trip_id", req.Msg.TripID,
		"participants_count", len(req.Msg.Participants),
	)

	people, err := toNewParticipants(req.Msg.Participants)
	if err != nil {
		return nil, err
	}

	var added []models.TripParticipant
	trip, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		added = s.engine.AddParticipants(t, people)
		return nil
	})
	if err != nil {
		slog.Error("AddParticipants failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}

	if skipped := len(people) - len(added); skipped > 0 {
		slog.Info("Skipped participants already on the trip", "trip_id", trip.ID, "skipped", skipped)
	}
	return connect.NewResponse(&pb.AddParticipantsResponse{Added: added, Trip: trip}), nil
}

// RemoveParticipant drops a participant from a trip.
func (s *TripService) RemoveParticipant(ctx context.Context, req *connect.Request[pb.RemoveParticipantRequest]) (*connect.Response[pb.RemoveParticipantResponse], error) {
	slog.Info("RemoveParticipant request received", "trip_id", req.Msg.TripID, "participant_id", req.Msg.ParticipantID)

	trip, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		return s.engine.RemoveParticipant(t, req.Msg.ParticipantID)
	})
	if err != nil {
		slog.Error("RemoveParticipant failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&pb.RemoveParticipantResponse{Trip: trip}), nil
}

// UpdateParticipant edits a participant's fee or notes.
func (s *TripService) UpdateParticipant(ctx context.Context, req *connect.Request[pb.UpdateParticipantRequest]) (*connect.Response[pb.UpdateParticipantResponse], error) {
	slog.Info("UpdateParticipant request received", "trip_id", req.Msg.TripID, "participant_id", req.Msg.ParticipantID)

	if req.Msg.Fee != nil {
		if err := validateNonNegative("fee", *req.Msg.Fee); err != nil {
			return nil, err
		}
	}

	var updated models.TripParticipant
	_, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		p := t.Participant(req.Msg.ParticipantID)
		if p == nil {
			return fmt.Errorf("%w: %s", settlement.ErrParticipantNotFound, req.Msg.ParticipantID)
		}
		if req.Msg.Fee != nil {
			p.Fee = *req.Msg.Fee
		}
		if req.Msg.Notes != nil {
			p.Notes = *req.Msg.Notes
		}
		updated = *p
		return nil
	})
	if err != nil {
		slog.Error("UpdateParticipant failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&pb.UpdateParticipantResponse{Participant: updated}), nil
}

// ListParticipants filters a trip's participants by payment status and name.
func (s *TripService) ListParticipants(ctx context.Context, req *connect.Request[pb.ListParticipantsRequest]) (*connect.Response[pb.ListParticipantsResponse], error) {
	status, err := parseStatus(req.Msg.Status)
	if err != nil {
		return nil, err
	}
	trip, err := s.store.Get(req.Msg.TripID)
	if err != nil {
		return nil, toConnectError(err)
	}

	participants := settlement.FilterParticipants(&trip, status, req.Msg.Search)
	return connect.NewResponse(&pb.ListParticipantsResponse{Participants: participants}), nil
}

// RecordPayment sets how much a participant paid and how.
func (s *TripService) RecordPayment(ctx context.Context, req *connect.Request[pb.RecordPaymentRequest]) (*connect.Response[pb.RecordPaymentResponse], error) {
	slog.Info("RecordPayment request received",
		"trip_id", req.Msg.TripID,
		"participant_id", req.Msg.ParticipantID,
		"amount", req.Msg.Amount,
		"method", req.Msg.Method,
	)

	if err := validateNonNegative("amount", req.Msg.Amount); err != nil {
		return nil, err
	}

	var updated models.TripParticipant
	_, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		if !s.engine.RecordPayment(t, req.Msg.ParticipantID, req.Msg.Amount, req.Msg.Method) {
			return fmt.Errorf("%w: %s", settlement.ErrParticipantNotFound, req.Msg.ParticipantID)
		}
		updated = *t.Participant(req.Msg.ParticipantID)
		return nil
	})
	if err != nil {
		slog.Error("RecordPayment failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.Settled("record_payment")

	return connect.NewResponse(&pb.RecordPaymentResponse{Participant: updated}), nil
}

// TogglePaid flips a participant between paid in cash and unpaid.
func (s *TripService) TogglePaid(ctx context.Context, req *connect.Request[pb.TogglePaidRequest]) (*connect.Response[pb.TogglePaidResponse], error) {
	slog.Info("TogglePaid request received", "trip_id", req.Msg.TripID, "participant_id", req.Msg.ParticipantID)

	var updated models.TripParticipant
	_, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		p, err := s.engine.TogglePaid(t, req.Msg.ParticipantID)
		if err != nil {
			return err
		}
		updated = *p
		return nil
	})
	if err != nil {
		slog.Error("TogglePaid failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.Settled("toggle_paid")

	return connect.NewResponse(&pb.TogglePaidResponse{Participant: updated}), nil
}

// RegisterExpense charges a spend to the fund, crediting the payer's fee first.
func (s *TripService) RegisterExpense(ctx context.Context, req *connect.Request[pb.RegisterExpenseRequest]) (*connect.Response[pb.RegisterExpenseResponse], error) {
	slog.Info("RegisterExpense request received",
		"trip_id", req.Msg.TripID,
		"payer_id", req.Msg.PayerID,
		"amount", req.Msg.Amount,
	)

	if req.Msg.PayerID == "" {
		return nil, invalidArgument("payerId is required")
	}
	if !req.Msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be positive")
	}
	if strings.TrimSpace(req.Msg.Description) == "" {
		return nil, invalidArgument("description is required")
	}

	var result settlement.ExpenseResult
	trip, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		var err error
		result, err = s.engine.RegisterExpense(t, req.Msg.PayerID, req.Msg.Amount, strings.TrimSpace(req.Msg.Description))
		return err
	})
	if err != nil {
		slog.Error("RegisterExpense failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.Settled("register_expense")

	resp := &pb.RegisterExpenseResponse{FeeCovered: result.FeeCovered, Trip: trip}
	if result.Expense != nil {
		expense := *result.Expense
		resp.Expense = &expense
	} else {
		slog.Info("Expense absorbed by payer's fee, no ledger line", "trip_id", trip.ID, "fee_covered", result.FeeCovered)
	}
	return connect.NewResponse(resp), nil
}

// DeleteExpense removes a ledger line.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[pb.DeleteExpenseRequest]) (*connect.Response[pb.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "trip_id", req.Msg.TripID, "expense_id", req.Msg.ExpenseID)

	_, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		return s.engine.DeleteExpense(t, req.Msg.ExpenseID)
	})
	if err != nil {
		slog.Error("DeleteExpense failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.Settled("delete_expense")

	return connect.NewResponse(&pb.DeleteExpenseResponse{}), nil
}

// DistributeSurplus hands parts of a payer's surplus to other participants.
// Distributions larger than the surplus are refused.
func (s *TripService) DistributeSurplus(ctx context.Context, req *connect.Request[pb.DistributeSurplusRequest]) (*connect.Response[pb.DistributeSurplusResponse], error) {
	slog.Info("DistributeSurplus request received",
		"trip_id", req.Msg.TripID,
		"payer_id", req.Msg.PayerID,
		"transfers_count", len(req.Msg.Transfers),
	)

	var result settlement.DistributionResult
	trip, err := s.store.Update(ctx, req.Msg.TripID, func(t *models.Trip) error {
		_, plan, err := settlement.PlanDistribution(t, req.Msg.PayerID, req.Msg.Transfers)
		if err != nil {
			return err
		}
		if plan.OverDistributed() {
			return connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf(
				"transfers total %s but surplus is only %s (remaining %s)",
				plan.Transferred, plan.Surplus, plan.Remaining))
		}
		result, err = s.engine.DistributeSurplus(t, req.Msg.PayerID, req.Msg.Transfers)
		return err
	})
	if err != nil {
		slog.Error("DistributeSurplus failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.Settled("distribute_surplus")

	return connect.NewResponse(&pb.DistributeSurplusResponse{
		Surplus:     result.Surplus,
		Transferred: result.Transferred,
		Remaining:   result.Remaining,
		Trip:        trip,
	}), nil
}

// GetSummary returns the fund figures of a trip.
func (s *TripService) GetSummary(ctx context.Context, req *connect.Request[pb.GetSummaryRequest]) (*connect.Response[pb.GetSummaryResponse], error) {
	trip, err := s.store.Get(req.Msg.TripID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toSummaryResponse(settlement.Summarize(&trip))), nil
}

// GetReport renders the shareable text report of a trip.
func (s *TripService) GetReport(ctx context.Context, req *connect.Request[pb.GetReportRequest]) (*connect.Response[pb.GetReportResponse], error) {
	trip, err := s.store.Get(req.Msg.TripID)
	if err != nil {
		slog.Error("GetReport failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&pb.GetReportResponse{
		Title: report.Title(&trip),
		Text:  report.Generate(&trip),
	}), nil
}

// fees resolves optional fee overrides against fallbacks.
func (s *TripService) fees(adult, child *decimal.Decimal, adultFallback, childFallback decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if adult != nil {
		if err := validateNonNegative("adultFee", *adult); err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		adultFallback = *adult
	}
	if child != nil {
		if err := validateNonNegative("childFee", *child); err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		childFallback = *child
	}
	return adultFallback, childFallback, nil
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
	"github.com/mmynk/qitta/internal/settlement"
	"github.com/mmynk/qitta/internal/tripstore"
	pb "github.com/mmynk/qitta/pkg/api"
)

// invalidArgument builds a CodeInvalidArgument error.
func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// toConnectError maps domain errors to Connect codes. Errors that already
// carry a code are returned as they are.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, tripstore.ErrTripNotFound),
		errors.Is(err, settlement.ErrParticipantNotFound),
		errors.Is(err, settlement.ErrExpenseNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, settlement.ErrUnknownPayer),
		errors.Is(err, settlement.ErrInvalidTransferTarget),
		errors.Is(err, models.ErrUnknownParticipantType):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// validateNonNegative rejects negative amounts.
func validateNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalidArgument("%s must not be negative", field)
	}
	return nil
}

// toNewParticipants validates participant inputs and converts them for the engine.
func toNewParticipants(inputs []pb.ParticipantInput) ([]settlement.NewParticipant, error) {
	out := make([]settlement.NewParticipant, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			return nil, invalidArgument("participants[%d]: name is required", i)
		}
		pt, err := models.ParseParticipantType(in.Type)
		if err != nil {
			return nil, invalidArgument("participants[%d]: %v", i, err)
		}
		if in.Fee != nil {
			if err := validateNonNegative("fee", *in.Fee); err != nil {
				return nil, err
			}
		}
		if err := validateNonNegative("paidAmount", in.PaidAmount); err != nil {
			return nil, err
		}
		out = append(out, settlement.NewParticipant{
			Name:          in.Name,
			Type:          pt,
			Fee:           in.Fee,
			Supporter:     in.Supporter,
			PaidAmount:    in.PaidAmount,
			PaymentMethod: in.PaymentMethod,
		})
	}
	return out, nil
}

// parseStatus accepts the participant filter names, case-insensitively.
func parseStatus(s string) (settlement.Status, error) {
	switch st := settlement.Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case "", settlement.StatusAll:
		return settlement.StatusAll, nil
	case settlement.StatusPaid, settlement.StatusUnpaid, settlement.StatusSurplus:
		return st, nil
	default:
		return "", invalidArgument("unknown status %q", s)
	}
}

func toSummaryResponse(s settlement.Summary) *pb.GetSummaryResponse {
	resp := &pb.GetSummaryResponse{
		TotalPaid:      s.TotalPaid,
		BaseFees:       s.BaseFees,
		TotalExpenses:  s.TotalExpenses,
		NetBalance:     s.NetBalance,
		Supporters:     make([]pb.Supporter, len(s.Supporters)),
		PaymentMethods: make([]pb.MethodTotal, len(s.PaymentMethods)),
		Participants:   s.Participants,
		Adults:         s.Adults,
		Children:       s.Children,
		Paid:           s.Paid,
		Unpaid:         s.Unpaid,
	}
	for i, sup := range s.Supporters {
		resp.Supporters[i] = pb.Supporter{Name: sup.Name, Amount: sup.Amount}
	}
	for i, m := range s.PaymentMethods {
		resp.PaymentMethods[i] = pb.MethodTotal{Method: m.Method, Amount: m.Amount}
	}
	return resp
}

func toTripSummary(trip *models.Trip) pb.TripSummary {
	s := settlement.Summarize(trip)
	return pb.TripSummary{
		ID:               trip.ID,
		Name:             trip.Name,
		CreatedAt:        trip.CreatedAt,
		TripDate:         trip.TripDate,
		Location:         trip.Location,
		ParticipantCount: s.Participants,
		PaidCount:        s.Paid,
		TotalPaid:        s.TotalPaid,
		NetBalance:       s.NetBalance,
	}
}

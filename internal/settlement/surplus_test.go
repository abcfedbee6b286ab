package settlement

import (
	"errors"
	"strings"
	"testing"

	"github.com/mmynk/qitta/internal/models"
)

func TestDistributeSurplus(t *testing.T) {
	e := testEngine()
	trip := &models.Trip{Participants: []models.TripParticipant{
		participant("Payer", 100, 150),
		participant("A", 100, 0),
		participant("B", 100, 50),
	}}

	res, err := e.DistributeSurplus(trip, "Payer", []models.Transfer{
		{TargetID: "A", Amount: d(30)},
		{TargetID: "B", Amount: d(20)},
	})
	if err != nil {
		t.Fatalf("DistributeSurplus() error = %v", err)
	}

	if !res.Surplus.Equal(d(50)) {
		t.Errorf("Surplus = %s, want 50", res.Surplus)
	}
	if !res.Remaining.IsZero() {
		t.Errorf("Remaining = %s, want 0", res.Remaining)
	}
	if res.OverDistributed() {
		t.Error("OverDistributed() = true, want false")
	}

	want := map[string]int64{"Payer": 100, "A": 30, "B": 70}
	for _, p := range trip.Participants {
		if !p.PaidAmount.Equal(d(want[p.Name])) {
			t.Errorf("%s PaidAmount = %s, want %d", p.Name, p.PaidAmount, want[p.Name])
		}
	}

	a := trip.Participants[1]
	if a.PaymentMethod != models.CoveredBy("Payer") {
		t.Errorf("A PaymentMethod = %q", a.PaymentMethod)
	}
	if !strings.Contains(a.Notes, "تم استلام دعم 30 من Payer.") {
		t.Errorf("A Notes = %q", a.Notes)
	}
	if !strings.Contains(trip.Participants[0].Notes, "تم تحويل فائض 50") {
		t.Errorf("Payer Notes = %q", trip.Participants[0].Notes)
	}
}

func TestDistributeSurplus_OverDistributionIsReported(t *testing.T) {
	e := testEngine()
	trip := &models.Trip{Participants: []models.TripParticipant{
		participant("Payer", 100, 120),
		participant("A", 100, 0),
	}}

	res, err := e.DistributeSurplus(trip, "Payer", []models.Transfer{{TargetID: "A", Amount: d(50)}})
	if err != nil {
		t.Fatalf("DistributeSurplus() error = %v", err)
	}
	if !res.OverDistributed() || !res.Remaining.Equal(d(-30)) {
		t.Errorf("Remaining = %s, want -30", res.Remaining)
	}
	if !trip.Participants[0].PaidAmount.Equal(d(70)) {
		t.Errorf("Payer PaidAmount = %s, want 70", trip.Participants[0].PaidAmount)
	}
}

func TestPlanDistribution(t *testing.T) {
	trip := &models.Trip{Participants: []models.TripParticipant{
		participant("Payer", 0, 80),
		participant("A", 100, 0),
	}}

	tests := []struct {
		name      string
		transfers []models.Transfer
		wantErr   error
		wantKept  int
		remaining int64
	}{
		{
			name:      "zero and negative amounts are dropped",
			transfers: []models.Transfer{{TargetID: "A", Amount: d(0)}, {TargetID: "A", Amount: d(-5)}},
			wantKept:  0,
			remaining: 80,
		},
		{
			name:      "supporter with zero fee distributes everything",
			transfers: []models.Transfer{{TargetID: "A", Amount: d(80)}},
			wantKept:  1,
			remaining: 0,
		},
		{
			name:      "unknown target",
			transfers: []models.Transfer{{TargetID: "ghost", Amount: d(10)}},
			wantErr:   ErrInvalidTransferTarget,
		},
		{
			name:      "self transfer",
			transfers: []models.Transfer{{TargetID: "Payer", Amount: d(10)}},
			wantErr:   ErrInvalidTransferTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, res, err := PlanDistribution(trip, "Payer", tt.transfers)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlanDistribution() error = %v", err)
			}
			if len(kept) != tt.wantKept {
				t.Errorf("kept = %d, want %d", len(kept), tt.wantKept)
			}
			if !res.Remaining.Equal(d(tt.remaining)) {
				t.Errorf("Remaining = %s, want %d", res.Remaining, tt.remaining)
			}
		})
	}

	if !trip.Participants[0].PaidAmount.Equal(d(80)) {
		t.Error("PlanDistribution mutated the trip")
	}
	if _, _, err := PlanDistribution(trip, "ghost", nil); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("error = %v, want ErrParticipantNotFound", err)
	}
}

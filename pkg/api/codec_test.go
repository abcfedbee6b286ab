package api

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	if codec.Name() != "json" {
		t.Errorf("Name() = %q, want json", codec.Name())
	}

	data, err := codec.Marshal(&RecordPaymentRequest{TripID: "t1", ParticipantID: "p1", Amount: decimal.RequireFromString("12.5")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got RecordPaymentRequest
	if err := codec.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.TripID != "t1" || got.ParticipantID != "p1" || !got.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Unmarshal() = %+v", got)
	}
}

func TestJSONCodec_NumericAmounts(t *testing.T) {
	// Clients may send amounts as numbers or strings.
	var got RegisterExpenseRequest
	if err := (JSONCodec{}).Unmarshal([]byte(`{"tripId":"t","payerId":"POOL","amount":30,"description":"gas"}`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Amount = %s, want 30", got.Amount)
	}
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var got ListTripsRequest
	if err := (JSONCodec{}).Unmarshal(nil, &got); err != nil {
		t.Errorf("Unmarshal(nil) error = %v", err)
	}
	if err := (JSONCodec{}).Unmarshal([]byte("{"), &got); err == nil {
		t.Error("Unmarshal of invalid JSON succeeded")
	}
}

package tripstore

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/models"
	"github.com/mmynk/qitta/internal/settlement"
	"github.com/mmynk/qitta/internal/storage"
	"github.com/mmynk/qitta/internal/storage/sqlite"
)

// failingStore fails every write.
type failingStore struct{ storage.Store }

func (failingStore) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func newBackend(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	backend, err := sqlite.New(filepath.Join(t.TempDir(), "trips.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

func sampleTrip(id string) models.Trip {
	return models.Trip{
		ID:        id,
		Name:      "رحلة البر",
		CreatedAt: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
		TripDate:  "2026-01-20",
		Location:  "الثمامة",
		AdultFee:  decimal.NewFromInt(100),
		ChildFee:  decimal.NewFromInt(50),
		Participants: []models.TripParticipant{
			{
				MasterParticipant: models.MasterParticipant{ID: models.ParticipantID("Ahmed"), Name: "Ahmed", Type: models.Adult},
				Fee:               decimal.NewFromInt(100),
				PaidAmount:        decimal.RequireFromString("150.5"),
				PaymentMethod:     models.MethodSTCPay,
				Notes:             "line one\nline two",
			},
			{
				MasterParticipant: models.MasterParticipant{ID: models.ParticipantID("Sara"), Name: "Sara", Type: models.Child},
				Fee:               decimal.NewFromInt(50),
				PaidAmount:        decimal.Zero,
			},
		},
		Expenses: []models.Expense{
			{
				ID:               "e1",
				PayerID:          models.PoolPayer,
				Amount:           decimal.NewFromInt(200),
				OriginalAmount:   decimal.NewFromInt(200),
				FeeCoveredAmount: decimal.Zero,
				Description:      "fuel",
				Date:             time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestTripStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)

	store, err := Open(ctx, backend, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}

	for _, id := range []string{"t1", "t2"} {
		if err := store.Create(ctx, sampleTrip(id)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	reopened, err := Open(ctx, backend, "")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if diff := cmp.Diff(store.List(), reopened.List()); diff != "" {
		t.Errorf("reloaded collection differs (-want +got):\n%s", diff)
	}
	if got := reopened.List(); got[0].ID != "t2" {
		t.Errorf("newest trip first: got %s", got[0].ID)
	}
}

func TestTripStore_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)
	if err := backend.Put(ctx, DefaultKey, []byte("{not json")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store, err := Open(ctx, backend, DefaultKey)
	if err != nil {
		t.Fatalf("Open should ignore corrupt content, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}

func TestTripStore_Update(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, newBackend(t), "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Create(ctx, sampleTrip("t1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("applies the mutation", func(t *testing.T) {
		got, err := store.Update(ctx, "t1", func(trip *models.Trip) error {
			trip.Name = "renamed"
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got.Name != "renamed" {
			t.Errorf("Name = %s", got.Name)
		}
		stored, _ := store.Get("t1")
		if stored.Name != "renamed" {
			t.Errorf("stored Name = %s", stored.Name)
		}
	})

	t.Run("failed mutation leaves the trip untouched", func(t *testing.T) {
		_, err := store.Update(ctx, "t1", func(trip *models.Trip) error {
			trip.Participants[0].PaidAmount = decimal.NewFromInt(999)
			return errors.New("boom")
		})
		if err == nil {
			t.Fatal("expected error")
		}
		stored, _ := store.Get("t1")
		if stored.Participants[0].PaidAmount.Equal(decimal.NewFromInt(999)) {
			t.Error("mutation leaked into the store")
		}
	})

	t.Run("unknown trip", func(t *testing.T) {
		_, err := store.Update(ctx, "nope", func(*models.Trip) error { return nil })
		if !errors.Is(err, ErrTripNotFound) {
			t.Errorf("error = %v, want ErrTripNotFound", err)
		}
	})

	t.Run("reads are copies", func(t *testing.T) {
		trip, _ := store.Get("t1")
		trip.Participants[0].Name = "mutated"
		stored, _ := store.Get("t1")
		if stored.Participants[0].Name == "mutated" {
			t.Error("Get returned shared state")
		}
	})
}

func TestTripStore_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)
	store, err := Open(ctx, backend, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Create(ctx, sampleTrip("t1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store.backend = failingStore{backend}
	if err := store.Delete(ctx, "t1"); err == nil {
		t.Fatal("expected save error")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d after failed delete, want 1", store.Len())
	}
}

func TestTripStore_DeleteLastTripIsPersisted(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)
	store, _ := Open(ctx, backend, "")
	if err := store.Create(ctx, sampleTrip("t1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	reopened, _ := Open(ctx, backend, "")
	if reopened.Len() != 0 {
		t.Errorf("deleted trip came back after reload")
	}
	if err := store.Delete(ctx, "t1"); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("error = %v, want ErrTripNotFound", err)
	}
}

func TestTripStore_ExportImport(t *testing.T) {
	ctx := context.Background()
	src, _ := Open(ctx, newBackend(t), "")
	src.Create(ctx, sampleTrip("t1"))

	data, err := src.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst, _ := Open(ctx, newBackend(t), "")
	n, err := dst.Import(ctx, data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d, want 1", n)
	}
	if diff := cmp.Diff(src.List(), dst.List()); diff != "" {
		t.Errorf("imported collection differs (-want +got):\n%s", diff)
	}

	if _, err := dst.Import(ctx, []byte("nope")); err == nil {
		t.Error("expected error for invalid document")
	}
	if dst.Len() != 1 {
		t.Error("invalid import replaced the collection")
	}
}

// legacyBlob is a collection as the browser app stored it: free-text types
// and plain numbers for amounts.
const legacyBlob = `[{
	"id": "1700000000000",
	"name": "رحلة البر",
	"createdAt": "2025-11-14T22:13:20.000Z",
	"adultFee": 100,
	"childFee": 50,
	"participants": [
		{"id": "a", "name": "أحمد", "type": "كبير", "fee": 100, "paidAmount": 100, "paymentMethod": "كاش"},
		{"id": "b", "name": "سارة", "type": "صغير", "fee": 50, "paidAmount": 0},
		{"id": "c", "name": "ليان", "type": "طفل صغير", "fee": 50, "paidAmount": 50},
		{"id": "d", "name": "فهد", "type": "ضيف", "fee": 100, "paidAmount": 0}
	],
	"expenses": [{"id": "e1", "payerId": "POOL", "amount": 40, "description": "حطب", "date": "2025-11-15T10:00:00.000Z"}]
}]`

func TestTripStore_LegacyParticipantTypes(t *testing.T) {
	ctx := context.Background()
	wantTypes := map[string]models.ParticipantType{
		"a": models.Adult,
		"b": models.Child,
		"c": models.Child,
		"d": models.Adult, // unknown text loads as adult
	}

	check := func(t *testing.T, store *TripStore) {
		t.Helper()
		trip, err := store.Get("1700000000000")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		for id, want := range wantTypes {
			if got := trip.Participant(id).Type; got != want {
				t.Errorf("participant %s type = %q, want %q", id, got, want)
			}
		}

		s := settlement.Summarize(&trip)
		if s.Adults != 2 || s.Children != 2 {
			t.Errorf("adults=%d children=%d, want 2 and 2", s.Adults, s.Children)
		}
		if fee := trip.FeeFor(trip.Participant("b").Type); !fee.Equal(decimal.NewFromInt(50)) {
			t.Errorf("FeeFor(child) = %s, want 50", fee)
		}
	}

	t.Run("Import", func(t *testing.T) {
		store, _ := Open(ctx, newBackend(t), "")
		if _, err := store.Import(ctx, []byte(legacyBlob)); err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		check(t, store)
	})

	t.Run("Open", func(t *testing.T) {
		backend := newBackend(t)
		if err := backend.Put(ctx, DefaultKey, []byte(legacyBlob)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		store, err := Open(ctx, backend, "")
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		check(t, store)

		// Saving writes the canonical values back.
		if _, err := store.Update(ctx, "1700000000000", func(*models.Trip) error { return nil }); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		data, _ := backend.Get(ctx, DefaultKey)
		if strings.Contains(string(data), "طفل صغير") {
			t.Errorf("stored blob still carries free-text types: %s", data)
		}
	})
}

package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.Settled("register_expense")
	m.Settled("register_expense")
	m.RosterFetched("direct", errors.New("cors"))
	m.RosterFetched("proxy", nil)
	m.ObserveRPC("/qitta.v1.TripService/GetTrip", "ok", 5*time.Millisecond)
	m.SetTrips(3)

	if got := testutil.ToFloat64(m.Settlements.WithLabelValues("register_expense")); got != 2 {
		t.Errorf("settlements = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RosterFetches.WithLabelValues("direct", "error")); got != 1 {
		t.Errorf("direct errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RosterFetches.WithLabelValues("proxy", "ok")); got != 1 {
		t.Errorf("proxy ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Trips); got != 3 {
		t.Errorf("trips = %v, want 3", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "qitta_rpc_requests_total") {
		t.Error("exposition is missing qitta_rpc_requests_total")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Settled("x")
	m.RosterFetched("direct", nil)
	m.ObserveRPC("p", "ok", time.Second)
	m.SetTrips(1)
}

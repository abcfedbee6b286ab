package roster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/qitta/internal/metrics"
	"github.com/mmynk/qitta/internal/models"
)

const sheet = "الاسم,الفئة\r\nأحمد,كبير\r\n\"سارة\",صغير\r\n\r\nخالد\r\n,كبير\r\nأحمد,كبير\r\nفهد,ضيف\r\n"

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sheet))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []models.MasterParticipant{
		{ID: models.ParticipantID("أحمد"), Name: "أحمد", Type: models.Adult},
		{ID: models.ParticipantID("سارة"), Name: "سارة", Type: models.Child},
		{ID: models.ParticipantID("خالد"), Name: "خالد", Type: models.Adult},
		// Unknown types keep the row as an adult.
		{ID: models.ParticipantID("فهد"), Name: "فهد", Type: models.Adult},
	}
	if len(got) != len(want) {
		t.Fatalf("Parse() = %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParse_Header(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"english header", "Name,Type\nAli,adult\n", 1},
		{"no header", "Ali,adult\nOmar,child\n", 2},
		{"header-like row later is data", "Ali,adult\nNamer,adult\n", 2},
		{"empty input", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Parse() = %d rows, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParse_StableIDs(t *testing.T) {
	first, _ := Parse(strings.NewReader(sheet))
	second, _ := Parse(strings.NewReader(sheet))
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("row %d ID changed between parses", i)
		}
	}
}

func TestFetch_Direct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cache-Control") != "no-store" {
			t.Errorf("Cache-Control = %q", r.Header.Get("Cache-Control"))
		}
		w.Write([]byte(sheet))
	}))
	defer srv.Close()

	m := metrics.New()
	f := &Fetcher{URL: srv.URL, ProxyURL: "http://127.0.0.1:1/never?url=", Metrics: m}
	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("Fetch() = %d rows, want 4", len(got))
	}
	if n := testutil.ToFloat64(m.RosterFetches.WithLabelValues("direct", "ok")); n != 1 {
		t.Errorf("direct ok = %v, want 1", n)
	}
}

func TestFetch_ProxyFallback(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer direct.Close()

	var proxied string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied = r.URL.Query().Get("url")
		w.Write([]byte("Ali,adult\n"))
	}))
	defer proxy.Close()

	f := &Fetcher{URL: direct.URL + "/sheet?output=csv", ProxyURL: proxy.URL + "/raw?url="}
	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ali" {
		t.Errorf("Fetch() = %+v", got)
	}
	if proxied != f.URL {
		t.Errorf("proxy received url %q, want %q", proxied, f.URL)
	}
}

func TestFetch_BothFail(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer failing.Close()

	f := &Fetcher{URL: failing.URL, ProxyURL: failing.URL + "/?url="}
	_, err := f.Fetch(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("error = %v, want ErrFetchFailed", err)
	}
}

func TestFetch_ContextTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := &Fetcher{URL: slow.URL}
	if _, err := f.Fetch(ctx); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("error = %v, want ErrFetchFailed", err)
	}
}

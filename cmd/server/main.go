package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/qitta/internal/config"
	"github.com/mmynk/qitta/internal/metrics"
	"github.com/mmynk/qitta/internal/middleware"
	"github.com/mmynk/qitta/internal/roster"
	"github.com/mmynk/qitta/internal/service"
	"github.com/mmynk/qitta/internal/settlement"
	"github.com/mmynk/qitta/internal/storage/sqlite"
	"github.com/mmynk/qitta/internal/tripstore"
	pb "github.com/mmynk/qitta/pkg/api"
	"github.com/mmynk/qitta/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	backend, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	store, err := tripstore.Open(context.Background(), backend, cfg.StorageKey)
	if err != nil {
		slog.Error("Failed to load trips", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	m.SetTrips(store.Len())

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()

	// Register Connect services
	engine := &settlement.Engine{KeepFeeCoveredExpenses: cfg.KeepFeeCoveredExpenses}
	tripSvc := service.NewTripService(store, engine, service.TripServiceConfig{
		DefaultAdultFee: cfg.DefaultAdultFee,
		DefaultChildFee: cfg.DefaultChildFee,
		Metrics:         m,
	})
	tripPath, tripHandler := pb.NewTripServiceHandler(tripSvc, interceptors)
	mux.Handle(tripPath, tripHandler)

	fetcher := &roster.Fetcher{
		Client:   &http.Client{},
		URL:      cfg.RosterURL,
		ProxyURL: cfg.RosterProxyURL,
		Metrics:  m,
	}
	rosterPath, rosterHandler := pb.NewRosterServiceHandler(service.NewRosterService(fetcher, cfg.RosterTimeout), interceptors)
	mux.Handle(rosterPath, rosterHandler)
	if cfg.RosterURL == "" {
		slog.Warn("ROSTER_URL not set, FetchRoster is disabled")
	}

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

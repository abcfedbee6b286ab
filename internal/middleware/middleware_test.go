package middleware

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/qitta/internal/metrics"
)

type ping struct{}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		code connect.Code
		want slog.Level
	}{
		{connect.CodeInvalidArgument, slog.LevelWarn},
		{connect.CodeNotFound, slog.LevelWarn},
		{connect.CodeFailedPrecondition, slog.LevelWarn},
		{connect.CodeUnavailable, slog.LevelWarn},
		{connect.CodeInternal, slog.LevelError},
		{connect.CodeUnknown, slog.LevelError},
	}
	for _, tt := range tests {
		if got := levelFor(tt.code); got != tt.want {
			t.Errorf("levelFor(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := connect.NewError(connect.CodeNotFound, errors.New("trip not found"))
	if got := errorMessage(err); got != "trip not found" {
		t.Errorf("errorMessage() = %q", got)
	}
	if got := errorMessage(errors.New("boom")); got != "boom" {
		t.Errorf("errorMessage() = %q", got)
	}
}

func TestInterceptors(t *testing.T) {
	m := metrics.New()
	fail := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("trip not found"))
	})
	ok := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	})

	chain := func(next connect.UnaryFunc) connect.UnaryFunc {
		return LoggingInterceptor()(MetricsInterceptor(m)(next))
	}

	if _, err := chain(fail)(context.Background(), connect.NewRequest(&ping{})); connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("error code = %v, want not_found", connect.CodeOf(err))
	}
	if _, err := chain(ok)(context.Background(), connect.NewRequest(&ping{})); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "not_found")); got != 1 {
		t.Errorf("not_found requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "ok")); got != 1 {
		t.Errorf("ok requests = %v, want 1", got)
	}
}

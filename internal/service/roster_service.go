package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/qitta/internal/roster"
	pb "github.com/mmynk/qitta/pkg/api"
)

// RosterService implements the Connect RosterService
type RosterService struct {
	fetcher *roster.Fetcher
	timeout time.Duration
}

var _ pb.RosterServiceHandler = (*RosterService)(nil)

// NewRosterService creates a RosterService. A zero timeout leaves the
// deadline to the caller's context.
func NewRosterService(fetcher *roster.Fetcher, timeout time.Duration) *RosterService {
	return &RosterService{fetcher: fetcher, timeout: timeout}
}

// FetchRoster downloads the master participant list.
func (s *RosterService) FetchRoster(ctx context.Context, req *connect.Request[pb.FetchRosterRequest]) (*connect.Response[pb.FetchRosterResponse], error) {
	if s.fetcher == nil || s.fetcher.URL == "" {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("roster URL is not configured"))
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	participants, err := s.fetcher.Fetch(ctx)
	if err != nil {
		slog.Error("FetchRoster failed", "error", err)
		if errors.Is(err, roster.ErrFetchFailed) {
			return nil, connect.NewError(connect.CodeUnavailable, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("FetchRoster successful", "participants_count", len(participants))
	return connect.NewResponse(&pb.FetchRosterResponse{Participants: participants}), nil
}

// Package tripstore keeps the trip collection in memory and persists it as a
// single JSON document after every change.
package tripstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmynk/qitta/internal/models"
	"github.com/mmynk/qitta/internal/storage"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "qitta-trips"

// ErrTripNotFound is returned when no trip has the requested ID.
var ErrTripNotFound = errors.New("trip not found")

// TripStore owns every trip. Reads return copies; writes clone the trip,
// mutate the clone and swap it in only once the collection has been saved.
type TripStore struct {
	backend storage.Store
	key     string

	mu    sync.RWMutex
	trips []models.Trip
}

// Open loads the collection stored under key. A missing or unreadable
// document yields an empty collection; only backend failures are errors.
func Open(ctx context.Context, backend storage.Store, key string) (*TripStore, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &TripStore{backend: backend, key: key}

	data, err := backend.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("No stored trips, starting empty", "key", key)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}

	var trips []models.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		slog.Error("Failed to parse stored trips, starting empty", "key", key, "error", err)
		return s, nil
	}
	s.trips = trips
	slog.Info("Trips loaded", "key", key, "count", len(trips))
	return s, nil
}

// Len returns the number of trips.
func (s *TripStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trips)
}

// List returns copies of all trips, newest first.
func (s *TripStore) List() []models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the trip with the given ID.
func (s *TripStore) Get(id string) (models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	return s.trips[i].Clone(), nil
}

// Create adds a trip at the front of the collection.
func (s *TripStore) Create(ctx context.Context, trip models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Trip, 0, len(s.trips)+1)
	next = append(next, trip.Clone())
	next = append(next, s.trips...)
	return s.commit(ctx, next)
}

// Update applies fn to a copy of the trip and stores the result.
// Nothing changes when fn returns an error or the save fails.
func (s *TripStore) Update(ctx context.Context, id string, fn func(*models.Trip) error) (models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}

	updated := s.trips[i].Clone()
	if err := fn(&updated); err != nil {
		return models.Trip{}, err
	}
	updated.ID = id

	next := slices.Clone(s.trips)
	next[i] = updated
	if err := s.commit(ctx, next); err != nil {
		return models.Trip{}, err
	}
	return updated.Clone(), nil
}

// Delete removes a trip.
func (s *TripStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	next := slices.Delete(slices.Clone(s.trips), i, i+1)
	return s.commit(ctx, next)
}

// Export returns the collection as stored.
func (s *TripStore) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return encode(s.trips)
}

// Import replaces the whole collection with the trips encoded in data.
func (s *TripStore) Import(ctx context.Context, data []byte) (int, error) {
	var trips []models.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return 0, fmt.Errorf("failed to parse trips: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit(ctx, trips); err != nil {
		return 0, err
	}
	return len(trips), nil
}

// commit saves next and makes it the current collection. Must hold mu.
func (s *TripStore) commit(ctx context.Context, next []models.Trip) error {
	data, err := encode(next)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save trips: %w", err)
	}
	s.trips = next
	return nil
}

func (s *TripStore) index(id string) int {
	return slices.IndexFunc(s.trips, func(t models.Trip) bool { return t.ID == id })
}

func encode(trips []models.Trip) ([]byte, error) {
	if trips == nil {
		trips = []models.Trip{}
	}
	data, err := json.Marshal(trips)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trips: %w", err)
	}
	return data, nil
}

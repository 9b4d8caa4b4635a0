package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/serproauto/workshop-manager/internal/models"
)

// MemoryStore is the default, process-local vehicle store. New records
// are prepended so the listing is most-recent-first. Every record that
// crosses the boundary is deep-copied: an open edit buffer can never
// mutate stored state behind the store's back.
type MemoryStore struct {
	mu       sync.RWMutex
	vehicles []models.Vehicle
}

// NewMemoryStore creates an empty in-memory vehicle store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Create assigns a fresh id, stamps the creation time and prepends the
// record. The stored copy is returned with its new identity.
func (s *MemoryStore) Create(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	stored := vehicle.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.vehicles = append([]models.Vehicle{stored}, s.vehicles...)
	s.mu.Unlock()

	return stored.Clone(), nil
}

// Update replaces the stored record whose id matches. Returns
// ErrVehicleNotFound if no record carries that id; the store is left
// unchanged in that case.
func (s *MemoryStore) Update(ctx context.Context, vehicle models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vehicles {
		if s.vehicles[i].ID == vehicle.ID {
			stored := vehicle.Clone()
			stored.CreatedAt = s.vehicles[i].CreatedAt
			s.vehicles[i] = stored
			return nil
		}
	}
	return ErrVehicleNotFound
}

// FindByID returns a copy of the record with the given id.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			found := s.vehicles[i].Clone()
			return &found, nil
		}
	}
	return nil, ErrVehicleNotFound
}

// ListAll returns a snapshot of every record, most recent first.
func (s *MemoryStore) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vehicle, len(s.vehicles))
	for i := range s.vehicles {
		out[i] = s.vehicles[i].Clone()
	}
	return out, nil
}

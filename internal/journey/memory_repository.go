package journey

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	journeys map[string]Journey
}

// NewMemoryRepository builds an in-memory journey store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{journeys: make(map[string]Journey)}
}

func (r *memoryRepository) Create(_ context.Context, j Journey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journeys[j.ID] = j
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Journey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.journeys[id]
	if !ok {
		return Journey{}, ErrNotFound
	}
	return j, nil
}

func (r *memoryRepository) End(_ context.Context, id string, endedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.journeys[id]
	if !ok {
		return ErrNotFound
	}
	if j.Status != StatusActive {
		return ErrAlreadyEnded
	}
	j.Status = StatusEnded
	j.EndedAt = endedAt
	r.journeys[id] = j
	return nil
}

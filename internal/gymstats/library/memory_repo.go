package library

import (
	"context"
	"sync"

	"github.com/2beens/gymtracker/internal/gymstats/names"
)

// MemoryRepo keeps the library in memory, used by the service and router tests.
type MemoryRepo struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		entries: make(map[string]string),
	}
}

func (r *MemoryRepo) List(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]string, 0, len(r.entries))
	for _, name := range r.entries {
		list = append(list, name)
	}
	return list, nil
}

func (r *MemoryRepo) Upsert(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := names.Normalize(name)
	if key == "" {
		return names.ErrEmptyName
	}
	r.entries[key] = name
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, names.Normalize(name))
	return nil
}

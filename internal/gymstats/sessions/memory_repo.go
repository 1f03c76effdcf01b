package sessions

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory sessions store, used by the service and router tests.
// Save replaces the stored session, as Repo does.
type MemoryRepo struct {
	mu       sync.Mutex
	sessions map[string]WorkoutSession
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sessions: make(map[string]WorkoutSession),
	}
}

func (r *MemoryRepo) List(_ context.Context, userID string, from, to *time.Time) ([]WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []WorkoutSession
	for _, s := range r.sessions {
		if s.UserID != userID {
			continue
		}
		if from != nil && s.Date.Before(*from) {
			continue
		}
		if to != nil && !s.Date.Before(*to) {
			continue
		}
		list = append(list, s.Clone())
	}

	slices.SortStableFunc(list, func(a, b WorkoutSession) int {
		return b.Date.Compare(a.Date)
	})
	return list, nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (*WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	c := s.Clone()
	return &c, nil
}

func (r *MemoryRepo) Save(_ context.Context, session WorkoutSession) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	r.sessions[session.ID] = session.Clone()
	return session.ID, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *MemoryRepo) ListAll(_ context.Context) ([]WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]WorkoutSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s.Clone())
	}
	slices.SortStableFunc(list, func(a, b WorkoutSession) int {
		return b.Date.Compare(a.Date)
	})
	return list, nil
}

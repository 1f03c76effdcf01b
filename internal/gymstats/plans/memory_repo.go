package plans

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory plans store with the upsert semantics of Repo.
// Used by the service and router tests.
type MemoryRepo struct {
	mu    sync.Mutex
	plans map[string]Plan
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		plans: make(map[string]Plan),
	}
}

func (r *MemoryRepo) List(_ context.Context, userID string) ([]Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var plans []Plan
	for _, p := range r.plans {
		if p.UserID == userID {
			plans = append(plans, p.Clone())
		}
	}
	return plans, nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	c := p.Clone()
	return &c, nil
}

func (r *MemoryRepo) Save(_ context.Context, plan Plan) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	stored := plan.Clone()
	if existing, ok := r.plans[plan.ID]; ok {
		stored.UserID = existing.UserID
		if stored.Order == nil {
			stored.Order = existing.Clone().Order
		}
	}
	r.plans[plan.ID] = stored
	return plan.ID, nil
}

func (r *MemoryRepo) UpdateOrder(_ context.Context, id string, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plans[id]
	if !ok {
		return ErrPlanNotFound
	}
	p.SetOrder(order)
	r.plans[id] = p
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *MemoryRepo) ListAll(_ context.Context) ([]Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans := make([]Plan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, p.Clone())
	}
	return plans, nil
}

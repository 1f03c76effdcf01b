package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

type plansRepo interface {
	List(ctx context.Context, userID string) ([]Plan, error)
	Get(ctx context.Context, id string) (*Plan, error)
	Save(ctx context.Context, plan Plan) (string, error)
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

type nameRecorder interface {
	Record(ctx context.Context, exerciseNames []string) bool
}

type Service struct {
	repo    plansRepo
	library nameRecorder
	metrics *metrics.Manager
	timeNow func() time.Time
}

func NewService(repo plansRepo, library nameRecorder, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		library: library,
		metrics: metricsManager,
		timeNow: time.Now,
	}
}

// New returns the unsaved template for a new plan.
func (s *Service) New(userID string) Plan {
	return NewPlan(userID, s.timeNow())
}

// List returns the user's plans ordered by their normalized order.
func (s *Service) List(ctx context.Context, userID string) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plans, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return NormalizeOrder(plans), nil
}

// Get returns the plan if it belongs to the user.
func (s *Service) Get(ctx context.Context, userID, planID string) (*Plan, error) {
	plan, err := s.repo.Get(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", planID, err)
	}
	if plan.UserID != userID {
		return nil, fmt.Errorf("get plan %s: %w", planID, ErrPlanNotFound)
	}
	return plan, nil
}

// Save validates and normalizes the plan, then persists it. Only a successful
// save records the exercise names in the library. The given plan is never modified.
func (s *Service) Save(ctx context.Context, plan Plan) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.plans.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	// updates only go to the owner's existing plans
	var stored *Plan
	if plan.ID != "" {
		if stored, err = s.Get(ctx, plan.UserID, plan.ID); err != nil {
			return nil, err
		}
	}

	toSave := plan.Normalized()
	if toSave.CreatedAt.IsZero() {
		if stored != nil {
			toSave.CreatedAt = stored.CreatedAt
		} else {
			toSave.CreatedAt = s.timeNow()
		}
	}
	if stored == nil && toSave.Order == nil {
		if existing, err := s.repo.List(ctx, toSave.UserID); err != nil {
			log.Warnf("save plan, list existing plans for [%s]: %s", toSave.UserID, err)
		} else {
			toSave.SetOrder(appendOrder(existing))
		}
	}

	id, err := s.repo.Save(ctx, toSave)
	if err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	toSave.ID = id
	span.SetAttributes(attribute.String("plan.id", id))

	if s.metrics != nil {
		s.metrics.CounterPlansSaved.Inc()
	}
	if !s.library.Record(ctx, toSave.ExerciseNames()) {
		log.Warnf("plan %s saved, but exercise names not recorded", id)
	}

	return &toSave, nil
}

// appendOrder is the order that sorts after every stored plan, gaps included.
func appendOrder(existing []Plan) int {
	next := 0
	for _, p := range existing {
		if o := p.OrderValue(); o >= next {
			next = o + 1
		}
	}
	return next
}

// Reorder moves the plans at sources to destination and persists the new order of every plan.
func (s *Service) Reorder(ctx context.Context, userID string, sources []int, destination int) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.plans.reorder")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plans, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if destination < 0 || destination > len(plans) {
		return nil, fmt.Errorf("%w: destination %d", ErrIndexOutOfRange, destination)
	}
	for _, src := range sources {
		if src < 0 || src >= len(plans) {
			return nil, fmt.Errorf("%w: source %d", ErrIndexOutOfRange, src)
		}
	}

	moved := Move(plans, sources, destination)

	var errs error
	for _, p := range moved {
		if err := s.repo.UpdateOrder(ctx, p.ID, p.OrderValue()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("update order of %s: %w", p.ID, err))
		}
	}

	return moved, errs
}

// Delete deletes the plans at the given indices of the user's ordered list.
// A plan leaves the returned list only after its delete is confirmed.
func (s *Service) Delete(ctx context.Context, userID string, indices []int) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plans, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return Remove(plans, indices, func(p Plan) error {
		return s.repo.Delete(ctx, p.ID)
	})
}

// AddDay appends a new day to the user's plan and saves it.
func (s *Service) AddDay(ctx context.Context, userID, planID string) (*Plan, error) {
	plan, err := s.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, AddDay(*plan))
}

// DuplicateDay copies the day at index of the user's plan and saves the plan.
func (s *Service) DuplicateDay(ctx context.Context, userID, planID string, index int) (*Plan, error) {
	plan, err := s.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	dup, err := DuplicateDay(*plan, index)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, dup)
}

// NormalizeStoredOrder rewrites the stored order of the user's plans to 0..N-1.
func (s *Service) NormalizeStoredOrder(ctx context.Context, userID string) (int, error) {
	stored, err := s.repo.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list plans: %w", err)
	}

	storedOrder := make(map[string]*int, len(stored))
	for _, p := range stored {
		storedOrder[p.ID] = p.Order
	}

	updated := 0
	var errs error
	for _, p := range NormalizeOrder(stored) {
		if o := storedOrder[p.ID]; o != nil && *o == p.OrderValue() {
			continue
		}
		if err := s.repo.UpdateOrder(ctx, p.ID, p.OrderValue()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("update order of %s: %w", p.ID, err))
			continue
		}
		updated++
	}
	return updated, errs
}

package library

import (
	"context"
	"fmt"

	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/gymstats/sessions"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type namesRepo interface {
	List(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

type Service struct {
	repo    namesRepo
	cache   namesCache
	metrics *metrics.Manager
}

// NewService creates the library service; a nil cache disables caching.
func NewService(repo namesRepo, cache namesCache, metricsManager *metrics.Manager) *Service {
	if cache == nil {
		cache = nopCache{}
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: metricsManager,
	}
}

// Record normalizes the names and stores them. Failures are logged and
// reported through the returned flag only, a library write never fails a save.
func (s *Service) Record(ctx context.Context, raw []string) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.library.record")
	defer span.End()

	normalized := names.NormalizeAll(raw)
	span.SetAttributes(attribute.Int("names.count", len(normalized)))
	if len(normalized) == 0 {
		return true
	}

	ok := true
	for _, name := range normalized {
		if err := s.repo.Upsert(ctx, name); err != nil {
			log.Errorf("library: record [%s]: %s", name, err)
			s.metrics.CounterLibraryWrites.WithLabelValues("record", "error").Inc()
			ok = false
			continue
		}
		s.metrics.CounterLibraryWrites.WithLabelValues("record", "ok").Inc()
	}

	s.cache.Invalidate(ctx)
	return ok
}

// List returns all known names, sorted and deduplicated by normalized key.
func (s *Service) List(ctx context.Context) ([]string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.library.list")
	defer span.End()

	if cached, ok := s.cache.Get(ctx); ok {
		span.SetAttributes(attribute.Bool("library.from-cache", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("library.from-cache", false))

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercise names: %w", err)
	}

	list := NewLedger(stored...).List()
	s.cache.Set(ctx, list)
	return list, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewLedger(list...).Search(query), nil
}

// Remove deletes the entry matching the normalized form of name.
func (s *Service) Remove(ctx context.Context, name string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.library.remove")
	defer span.End()

	if !names.Valid(name) {
		return names.ErrEmptyName
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		s.metrics.CounterLibraryWrites.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("remove exercise name: %w", err)
	}
	s.metrics.CounterLibraryWrites.WithLabelValues("remove", "ok").Inc()

	s.cache.Invalidate(ctx)
	return nil
}

// Rebuild records every exercise name used by the given plans and sessions.
func (s *Service) Rebuild(ctx context.Context, planList []plans.Plan, sessionList []sessions.WorkoutSession) bool {
	ledger := NewLedger()
	for _, p := range planList {
		ledger.Record(p.ExerciseNames()...)
	}
	for _, session := range sessionList {
		ledger.Record(session.ExerciseNames()...)
	}

	log.Debugf("library rebuild: %d names from %d plans and %d sessions", ledger.Len(), len(planList), len(sessionList))
	return s.Record(ctx, ledger.List())
}

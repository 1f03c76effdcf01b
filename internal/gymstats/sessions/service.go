package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type sessionsRepo interface {
	Get(ctx context.Context, id string) (*WorkoutSession, error)
	Save(ctx context.Context, session WorkoutSession) (string, error)
	Delete(ctx context.Context, id string) error
}

type planGetter interface {
	Get(ctx context.Context, userID, planID string) (*plans.Plan, error)
}

type nameRecorder interface {
	Record(ctx context.Context, exerciseNames []string) bool
}

// historyKeeper marks records against the user's history and drops the
// cached history once it changes.
type historyKeeper interface {
	MarkRecords(ctx context.Context, session *WorkoutSession) (int, error)
	Invalidate(userID string)
}

type Service struct {
	repo    sessionsRepo
	plans   planGetter
	library nameRecorder
	history historyKeeper
	metrics *metrics.Manager
	timeNow func() time.Time
}

func NewService(
	repo sessionsRepo,
	plans planGetter,
	library nameRecorder,
	history historyKeeper,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:    repo,
		plans:   plans,
		library: library,
		history: history,
		metrics: metricsManager,
		timeNow: time.Now,
	}
}

// Build starts a new, unsaved session from the given day of the user's plan.
func (s *Service) Build(ctx context.Context, userID, planID, dayID string) (*WorkoutSession, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.sessions.build")
	defer span.End()
	span.SetAttributes(attribute.String("plan.id", planID), attribute.String("day.id", dayID))

	plan, err := s.plans.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	day, ok := plan.Find(dayID)
	if !ok {
		return nil, fmt.Errorf("plan %s: %w: %s", planID, ErrDayNotFound, dayID)
	}

	session := BuildSession(*plan, day, s.timeNow())
	return &session, nil
}

// Save validates, normalizes and persists the session. Records are marked
// against the history without the session itself. After a successful save
// the exercise names go to the library and the user's history is refreshed.
// The given session is never modified.
func (s *Service) Save(ctx context.Context, session WorkoutSession) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.sessions.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("session.new", session.ID == ""))

	// updates only go to the owner's existing sessions
	if session.ID != "" {
		if _, err := s.Get(ctx, session.UserID, session.ID); err != nil {
			return nil, err
		}
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}
	toSave := session.Normalized()

	records, err := s.history.MarkRecords(ctx, &toSave)
	if err != nil {
		log.Errorf("save session, mark records for [%s]: %s", toSave.UserID, err)
	}

	id, err := s.repo.Save(ctx, toSave)
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	toSave.ID = id
	span.SetAttributes(attribute.String("session.id", id), attribute.Int("session.records", records))

	s.metrics.CounterSessionsSaved.Inc()
	s.metrics.CounterRecords.Add(float64(records))

	if !s.library.Record(ctx, toSave.ExerciseNames()) {
		log.Warnf("session %s saved, but exercise names not recorded", id)
	}
	s.history.Invalidate(toSave.UserID)

	return &toSave, nil
}

// Get returns the session if it belongs to the user.
func (s *Service) Get(ctx context.Context, userID, sessionID string) (*WorkoutSession, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("get session %s: %w", sessionID, ErrSessionNotFound)
	}
	return session, nil
}

func (s *Service) Delete(ctx context.Context, userID, sessionID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if _, err := s.Get(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}

	s.history.Invalidate(userID)
	return nil
}

// AddExtraExercise appends an exercise that is not in the plan to a live session.
func (s *Service) AddExtraExercise(session WorkoutSession, name string) (*WorkoutSession, error) {
	if !names.Valid(name) {
		return nil, fmt.Errorf("%w: extra exercise: %w", ErrInvalidSession, names.ErrEmptyName)
	}
	c := session.Clone()
	c.Exercises = append(c.Exercises, NewExtraExercise(name))
	return &c, nil
}

package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/gymtracker/internal/cache"
	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/gymstats/sessions"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const calendarDateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be yyyy-mm-dd")

type sessionsLister interface {
	List(ctx context.Context, userID string, from, to *time.Time) ([]sessions.WorkoutSession, error)
}

type plansLister interface {
	List(ctx context.Context, userID string) ([]plans.Plan, error)
}

// Service serves history views from a per user snapshot of all sessions.
// A snapshot is rebuilt as a whole after every change of the user's sessions.
type Service struct {
	repo     sessionsLister
	plans    plansLister
	cache    cache.Cache
	metrics  *metrics.Manager
	location *time.Location
}

func NewService(
	repo sessionsLister,
	plans plansLister,
	snapshotCache cache.Cache,
	metricsManager *metrics.Manager,
	location *time.Location,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repo,
		plans:    plans,
		cache:    snapshotCache,
		metrics:  metricsManager,
		location: location,
	}
}

func snapshotKey(userID string) string {
	return "history::" + userID
}

// Snapshot returns the user's full history, cached.
func (s *Service) Snapshot(ctx context.Context, userID string) (_ *History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.history.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := snapshotKey(userID)
	if cached, ok := s.cache.Get(key); ok {
		var list []sessions.WorkoutSession
		unmarshalErr := json.Unmarshal(cached, &list)
		if unmarshalErr == nil {
			s.metrics.CounterHistoryCache.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("history.from-cache", true))
			return NewHistory(list), nil
		}
		log.Errorf("history snapshot [%s]: unmarshal cached value: %s", userID, unmarshalErr)
	}
	s.metrics.CounterHistoryCache.WithLabelValues("miss").Inc()
	span.SetAttributes(attribute.Bool("history.from-cache", false))

	token := s.cache.Begin(key)
	list, err := s.repo.List(ctx, userID, nil, nil)
	if err != nil {
		s.cache.Cancel(key, token)
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	s.metrics.HistogramHistorySize.Observe(float64(len(list)))
	span.SetAttributes(attribute.Int("history.sessions", len(list)))

	snapshot, err := json.Marshal(list)
	if err != nil {
		log.Errorf("history snapshot [%s]: marshal: %s", userID, err)
		s.cache.Cancel(key, token)
	} else if !s.cache.Commit(key, token, snapshot) {
		s.metrics.CounterHistoryCache.WithLabelValues("stale").Inc()
	}

	return NewHistory(list), nil
}

// Invalidate drops the user's snapshot. Fetches already running are not cached.
func (s *Service) Invalidate(userID string) {
	s.cache.Invalidate(snapshotKey(userID))
}

// MarkRecords sets the record flags of the session against the user's history,
// leaving the session itself out of it. Returns the number of records.
func (s *Service) MarkRecords(ctx context.Context, session *sessions.WorkoutSession) (int, error) {
	h, err := s.Snapshot(ctx, session.UserID)
	if err != nil {
		return 0, err
	}
	return sessions.ApplyRecords(session, h.Without(session.ID).LastMaxWeight), nil
}

type ExerciseHint struct {
	ExerciseID    string      `json:"exerciseId"`
	LastMaxWeight *float64    `json:"lastMaxWeight,omitempty"`
	Ghosts        []*GhostSet `json:"ghosts"`
}

// LiveView is a session being trained with its records flagged, plus what
// was done the last time for each exercise.
type LiveView struct {
	Session sessions.WorkoutSession `json:"session"`
	Hints   []ExerciseHint          `json:"hints"`
	Records int                     `json:"records"`
}

func (s *Service) LiveView(ctx context.Context, session sessions.WorkoutSession) (*LiveView, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.history.liveView")
	defer span.End()

	h, err := s.Snapshot(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	h = h.Without(session.ID)

	live := session.Clone()
	for i := range live.Exercises {
		sessions.Reindex(&live.Exercises[i])
	}
	view := &LiveView{
		Records: sessions.ApplyRecords(&live, h.LastMaxWeight),
		Hints:   make([]ExerciseHint, 0, len(live.Exercises)),
	}
	for _, ex := range live.Exercises {
		hint := ExerciseHint{
			ExerciseID: ex.ExerciseID,
			Ghosts:     h.Ghosts(ex),
		}
		if lastMax, ok := h.LastMaxWeight(ex.Name); ok {
			hint.LastMaxWeight = &lastMax
		}
		view.Hints = append(view.Hints, hint)
	}
	view.Session = live

	return view, nil
}

type SessionSummary struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	PlanName  string    `json:"planName"`
	DayLabel  string    `json:"dayLabel"`
	Exercises int       `json:"exercises"`
	Records   int       `json:"records"`
}

type CalendarDayView struct {
	Date     string           `json:"date"`
	Sessions []SessionSummary `json:"sessions"`
}

// Calendar lists the days with sessions, newest first.
func (s *Service) Calendar(ctx context.Context, userID string) ([]CalendarDayView, error) {
	h, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	planList := s.listPlans(ctx, userID)

	byDay := h.ByCalendarDay(s.location)
	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int {
		return b.Compare(a)
	})

	calendar := make([]CalendarDayView, 0, len(days))
	for _, day := range days {
		calendar = append(calendar, CalendarDayView{
			Date:     day.Format(calendarDateLayout),
			Sessions: summarize(byDay[day], planList),
		})
	}
	return calendar, nil
}

// SessionsOn returns the summaries of the sessions on the given calendar day (yyyy-mm-dd).
func (s *Service) SessionsOn(ctx context.Context, userID, date string) ([]SessionSummary, error) {
	day, err := time.ParseInLocation(calendarDateLayout, date, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w, got [%s]: %s", ErrInvalidDate, date, err)
	}
	h, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(h.OnDay(day, s.location), s.listPlans(ctx, userID)), nil
}

func (s *Service) ExerciseHistory(ctx context.Context, userID, exerciseName string, ascending bool) (Entries, error) {
	h, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := h.ExerciseHistory(exerciseName)
	if ascending {
		return entries.Ascending(), nil
	}
	return entries.Descending(), nil
}

func (s *Service) Progress(ctx context.Context, userID, exerciseName string) ([]ProgressPoint, error) {
	h, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return h.Progress(exerciseName), nil
}

type LastExercise struct {
	Exercise      *sessions.ExerciseSession `json:"exercise,omitempty"`
	LastMaxWeight *float64                  `json:"lastMaxWeight,omitempty"`
}

func (s *Service) LastExercise(ctx context.Context, userID, exerciseName string) (*LastExercise, error) {
	h, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	last := &LastExercise{}
	if ex, ok := h.LastExerciseSession(exerciseName); ok {
		last.Exercise = ex
	}
	if lastMax, ok := h.LastMaxWeight(exerciseName); ok {
		last.LastMaxWeight = &lastMax
	}
	return last, nil
}

// plans only give names to sessions, without them the raw ids are shown
func (s *Service) listPlans(ctx context.Context, userID string) []plans.Plan {
	planList, err := s.plans.List(ctx, userID)
	if err != nil {
		log.Warnf("history: list plans for [%s]: %s", userID, err)
		return nil
	}
	return planList
}

func summarize(list []sessions.WorkoutSession, planList []plans.Plan) []SessionSummary {
	summaries := make([]SessionSummary, 0, len(list))
	for _, session := range list {
		planName, dayLabel := ResolvePlanAndDay(session, planList)
		summary := SessionSummary{
			ID:        session.ID,
			Date:      session.Date,
			PlanName:  planName,
			DayLabel:  dayLabel,
			Exercises: len(session.Exercises),
		}
		for _, ex := range session.Exercises {
			if ex.IsPR {
				summary.Records++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

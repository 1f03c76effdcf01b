// Package history aggregates a user's saved sessions: the calendar, per exercise
// history and progress, last max weights and the ghost sets shown while training.
//
// Name lookups here compare trimmed lowercase text (names.Matches), looser than
// the normalization applied on save, so sessions stored before names were
// normalized are still found.
package history

import (
	"slices"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/gymstats/sessions"
)

// History is an immutable view over one user's sessions, newest first.
type History struct {
	sessions []sessions.WorkoutSession
}

// NewHistory sorts the sessions by date, newest first. Sessions with the same
// date keep their input order.
func NewHistory(list []sessions.WorkoutSession) *History {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b sessions.WorkoutSession) int {
		return b.Date.Compare(a.Date)
	})
	return &History{
		sessions: sorted,
	}
}

func (h *History) Sessions() []sessions.WorkoutSession {
	return h.sessions
}

func (h *History) Len() int {
	return len(h.sessions)
}

// Without returns the history minus the session with the given id.
func (h *History) Without(sessionID string) *History {
	if sessionID == "" {
		return h
	}
	filtered := make([]sessions.WorkoutSession, 0, len(h.sessions))
	for _, s := range h.sessions {
		if s.ID != sessionID {
			filtered = append(filtered, s)
		}
	}
	return &History{
		sessions: filtered,
	}
}

// ByCalendarDay buckets sessions by their local midnight in loc.
// Within a bucket sessions keep the history order.
func (h *History) ByCalendarDay(loc *time.Location) map[time.Time][]sessions.WorkoutSession {
	days := make(map[time.Time][]sessions.WorkoutSession)
	for _, s := range h.sessions {
		day := CalendarDay(s.Date, loc)
		days[day] = append(days[day], s)
	}
	return days
}

// OnDay returns the sessions on the calendar day of date, in loc.
func (h *History) OnDay(date time.Time, loc *time.Location) []sessions.WorkoutSession {
	return h.ByCalendarDay(loc)[CalendarDay(date, loc)]
}

// CalendarDay truncates t to midnight of its day in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// LastMaxWeight returns the max weight of the exercise in the most recent
// session where it was logged with a positive weight. Sessions where every set
// is at 0 are skipped, they carry no data yet.
func (h *History) LastMaxWeight(exerciseName string) (float64, bool) {
	for _, s := range h.sessions {
		var heaviest float64
		for _, ex := range s.Exercises {
			if names.Matches(ex.Name, exerciseName) {
				heaviest = max(heaviest, ex.MaxWeight())
			}
		}
		if heaviest > 0 {
			return heaviest, true
		}
	}
	return 0, false
}

// LastExerciseSession returns the exercise as done in the most recent session containing it.
func (h *History) LastExerciseSession(exerciseName string) (*sessions.ExerciseSession, bool) {
	for _, s := range h.sessions {
		for _, ex := range s.Exercises {
			if names.Matches(ex.Name, exerciseName) {
				found := ex.Clone()
				return &found, true
			}
		}
	}
	return nil, false
}

type GhostSet struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Ghosts returns, for each set of ex, the reps and weight of the same set the
// last time the exercise was done. Sets beyond the last time get nil.
func (h *History) Ghosts(ex sessions.ExerciseSession) []*GhostSet {
	ghosts := make([]*GhostSet, len(ex.Sets))
	last, ok := h.LastExerciseSession(ex.Name)
	if !ok {
		return ghosts
	}
	for i := range ghosts {
		if i >= len(last.Sets) {
			break
		}
		ghosts[i] = &GhostSet{
			Reps:   last.Sets[i].Reps,
			Weight: last.Sets[i].Weight,
		}
	}
	return ghosts
}

// ResolvePlanAndDay names the plan and day a session was started from.
// A deleted plan falls back to the raw plan and day ids, a deleted day to the
// raw day id.
func ResolvePlanAndDay(session sessions.WorkoutSession, planList []plans.Plan) (planName, dayLabel string) {
	for _, p := range planList {
		if p.ID != session.PlanID {
			continue
		}
		if day, ok := p.Find(session.DayID); ok {
			return p.Name, day.Label
		}
		return p.Name, session.DayID
	}
	return session.PlanID, session.DayID
}

type Entry struct {
	Date      time.Time                `json:"date"`
	SessionID string                   `json:"sessionId"`
	Exercise  sessions.ExerciseSession `json:"exercise"`
}

type Entries []Entry

// Descending returns a copy of the entries, newest first.
func (e Entries) Descending() Entries {
	sorted := slices.Clone(e)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return b.Date.Compare(a.Date)
	})
	return sorted
}

// Ascending returns a copy of the entries, oldest first.
func (e Entries) Ascending() Entries {
	sorted := slices.Clone(e)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// ExerciseHistory returns one entry per saved session containing the exercise.
func (h *History) ExerciseHistory(exerciseName string) Entries {
	var entries Entries
	for _, s := range h.sessions {
		if s.ID == "" {
			continue
		}
		for _, ex := range s.Exercises {
			if names.Matches(ex.Name, exerciseName) {
				entries = append(entries, Entry{
					Date:      s.Date,
					SessionID: s.ID,
					Exercise:  ex,
				})
				break
			}
		}
	}
	return entries
}

type ProgressPoint struct {
	Date      time.Time `json:"date"`
	SessionID string    `json:"sessionId"`
	MaxWeight float64   `json:"maxWeight"`
	Volume    float64   `json:"volume"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	IsPR      bool      `json:"isPR"`
}

// Progress is the chart series of an exercise, oldest first.
// Volume is the sum of reps times weight over all sets.
func (h *History) Progress(exerciseName string) []ProgressPoint {
	entries := h.ExerciseHistory(exerciseName).Ascending()
	points := make([]ProgressPoint, 0, len(entries))
	for _, e := range entries {
		p := ProgressPoint{
			Date:      e.Date,
			SessionID: e.SessionID,
			MaxWeight: e.Exercise.MaxWeight(),
			Sets:      len(e.Exercise.Sets),
			IsPR:      e.Exercise.IsPR,
		}
		for _, set := range e.Exercise.Sets {
			p.Reps += set.Reps
			p.Volume += float64(set.Reps) * set.Weight
		}
		points = append(points, p)
	}
	return points
}

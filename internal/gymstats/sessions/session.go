package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/names"
)

var (
	ErrSessionNotFound = errors.New("workout session not found")
	ErrInvalidSession  = errors.New("invalid workout session")
	ErrDayNotFound     = errors.New("plan day not found")
)

type WorkoutSet struct {
	ID          string  `json:"id"`
	SetIndex    int     `json:"setIndex"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	SetNotes    *string `json:"setNotes,omitempty"`
	IsPR        bool    `json:"isPR"`
	IsCompleted bool    `json:"isCompleted"`
}

// ExerciseSession is one exercise as performed in a session.
// ExerciseID is the plan template id, or a fresh id for extra exercises.
type ExerciseSession struct {
	ID            string       `json:"id"`
	ExerciseID    string       `json:"exerciseId"`
	Name          string       `json:"name"`
	IsBodyweight  bool         `json:"isBodyweight"`
	Sets          []WorkoutSet `json:"sets"`
	IsPR          bool         `json:"isPR"`
	ExerciseNotes string       `json:"exerciseNotes"`
}

// WorkoutSession is a performed workout. An empty ID means it was never saved.
// PlanID and DayID are weak references, the plan may be gone since.
type WorkoutSession struct {
	ID        string            `json:"id,omitempty"`
	UserID    string            `json:"userId"`
	PlanID    string            `json:"planId"`
	DayID     string            `json:"dayId"`
	Date      time.Time         `json:"date"`
	Notes     string            `json:"notes"`
	Exercises []ExerciseSession `json:"exercises"`
}

// MaxWeight is the heaviest weight logged across the sets, 0 when there are none.
func (e ExerciseSession) MaxWeight() float64 {
	var heaviest float64
	for _, s := range e.Sets {
		if s.Weight > heaviest {
			heaviest = s.Weight
		}
	}
	return heaviest
}

func (e ExerciseSession) Clone() ExerciseSession {
	c := e
	if e.Sets != nil {
		c.Sets = make([]WorkoutSet, len(e.Sets))
		for i, s := range e.Sets {
			c.Sets[i] = s
			if s.SetNotes != nil {
				notes := *s.SetNotes
				c.Sets[i].SetNotes = &notes
			}
		}
	}
	return c
}

// Clone returns a deep copy of the session.
func (s WorkoutSession) Clone() WorkoutSession {
	c := s
	if s.Exercises != nil {
		c.Exercises = make([]ExerciseSession, len(s.Exercises))
		for i, e := range s.Exercises {
			c.Exercises[i] = e.Clone()
		}
	}
	return c
}

func (s WorkoutSession) ExerciseNames() []string {
	exerciseNames := make([]string, 0, len(s.Exercises))
	for _, e := range s.Exercises {
		exerciseNames = append(exerciseNames, e.Name)
	}
	return exerciseNames
}

// Validate checks what must hold before a session is persisted.
func (s WorkoutSession) Validate() error {
	if s.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidSession)
	}
	for ei, e := range s.Exercises {
		if !names.Valid(e.Name) {
			return fmt.Errorf("%w: exercise %d: %w", ErrInvalidSession, ei, names.ErrEmptyName)
		}
		for si, set := range e.Sets {
			if set.Reps < 0 || set.Weight < 0 {
				return fmt.Errorf("%w: [%s] set %d: reps %d, weight %.2f", ErrInvalidSession, e.Name, si, set.Reps, set.Weight)
			}
		}
	}
	return nil
}

// Normalized returns a copy with normalized exercise names and set indexes
// matching the set positions.
func (s WorkoutSession) Normalized() WorkoutSession {
	c := s.Clone()
	for i := range c.Exercises {
		c.Exercises[i].Name = names.Normalize(c.Exercises[i].Name)
		Reindex(&c.Exercises[i])
	}
	return c
}

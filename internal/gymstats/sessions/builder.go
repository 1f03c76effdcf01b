package sessions

import (
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/plans"

	"github.com/google/uuid"
)

const (
	ExtraExerciseReps = 8
	extraExerciseSets = 1
)

// BuildSession starts a session from a plan day: one exercise per template,
// in template order, each with the template's default sets at 0 weight.
// The session id stays empty until the session is saved.
// Panics if a template has a negative set count.
func BuildSession(plan plans.Plan, day plans.Day, now time.Time) WorkoutSession {
	exercises := make([]ExerciseSession, 0, len(day.Exercises))
	for _, tmpl := range day.Exercises {
		if tmpl.DefaultSets < 0 {
			panic(fmt.Sprintf("exercise template [%s] has negative sets: %d", tmpl.ID, tmpl.DefaultSets))
		}

		sets := make([]WorkoutSet, tmpl.DefaultSets)
		for i := range sets {
			sets[i] = WorkoutSet{
				ID:       uuid.NewString(),
				SetIndex: i,
				Reps:     tmpl.DefaultReps,
			}
		}

		exercises = append(exercises, ExerciseSession{
			ID:            uuid.NewString(),
			ExerciseID:    tmpl.ID,
			Name:          tmpl.Name,
			IsBodyweight:  tmpl.IsBodyweight,
			Sets:          sets,
			ExerciseNotes: tmpl.Notes,
		})
	}

	return WorkoutSession{
		UserID:    plan.UserID,
		PlanID:    plan.ID,
		DayID:     day.ID,
		Date:      now,
		Exercises: exercises,
	}
}

// NewExtraExercise is an exercise added mid workout, outside of the plan.
func NewExtraExercise(name string) ExerciseSession {
	sets := make([]WorkoutSet, extraExerciseSets)
	for i := range sets {
		sets[i] = WorkoutSet{
			ID:       uuid.NewString(),
			SetIndex: i,
			Reps:     ExtraExerciseReps,
		}
	}
	return ExerciseSession{
		ID:         uuid.NewString(),
		ExerciseID: uuid.NewString(),
		Name:       name,
		Sets:       sets,
	}
}

// AddSet appends a set repeating the reps and weight of the last one.
func AddSet(ex *ExerciseSession) {
	set := WorkoutSet{
		ID:       uuid.NewString(),
		SetIndex: len(ex.Sets),
		Reps:     ExtraExerciseReps,
	}
	if n := len(ex.Sets); n > 0 {
		set.Reps = ex.Sets[n-1].Reps
		set.Weight = ex.Sets[n-1].Weight
	}
	ex.Sets = append(ex.Sets, set)
}

// RemoveLastSet drops the last set, reporting false when there is none.
func RemoveLastSet(ex *ExerciseSession) bool {
	if len(ex.Sets) == 0 {
		return false
	}
	ex.Sets = ex.Sets[:len(ex.Sets)-1]
	return true
}

// Reindex makes every SetIndex equal its position.
func Reindex(ex *ExerciseSession) {
	for i := range ex.Sets {
		ex.Sets[i].SetIndex = i
	}
}

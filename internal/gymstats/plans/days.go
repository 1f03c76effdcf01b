package plans

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const duplicateSuffix = " (Copia)"

// DayLabel returns the automatic label for the day at the given 0-based position:
// "Day A" .. "Day Z", then "Day AA", "Day AB", ...
func DayLabel(index int) string {
	if index < 0 {
		panic(fmt.Sprintf("negative day index %d", index))
	}
	letters := ""
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		letters = string(rune('A'+(n-1)%26)) + letters
	}
	return "Day " + letters
}

// NewPlan returns the unsaved template for a new plan, with a single empty day.
func NewPlan(userID string, now time.Time) Plan {
	return Plan{
		UserID:    userID,
		Name:      DefaultPlanName,
		CreatedAt: now,
		Days: []Day{
			{ID: uuid.NewString(), Label: DayLabel(0), Exercises: []ExerciseTemplate{}},
		},
	}
}

// AddDay appends an empty day labeled after its position.
func AddDay(plan Plan) Plan {
	p := plan.Clone()
	p.Days = append(p.Days, Day{
		ID:        uuid.NewString(),
		Label:     DayLabel(len(p.Days)),
		Exercises: []ExerciseTemplate{},
	})
	return p
}

// DuplicateDay inserts a copy of the day at index right after it. Only the day
// id is fresh, exercise ids are scoped under the day and are copied as they are.
func DuplicateDay(plan Plan, index int) (Plan, error) {
	if index < 0 || index >= len(plan.Days) {
		return plan, fmt.Errorf("%w: day index %d", ErrIndexOutOfRange, index)
	}

	p := plan.Clone()
	dup := p.Days[index].Clone()
	dup.ID = uuid.NewString()
	dup.Label += duplicateSuffix

	days := make([]Day, 0, len(p.Days)+1)
	days = append(days, p.Days[:index+1]...)
	days = append(days, dup)
	days = append(days, p.Days[index+1:]...)
	p.Days = days

	return p, nil
}

// RemoveDays removes the days at the given indices.
func RemoveDays(plan Plan, indices []int) (Plan, error) {
	selected := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(plan.Days) {
			return plan, fmt.Errorf("%w: day index %d", ErrIndexOutOfRange, idx)
		}
		selected[idx] = true
	}

	p := plan.Clone()
	days := make([]Day, 0, len(p.Days))
	for i, d := range p.Days {
		if !selected[i] {
			days = append(days, d)
		}
	}
	p.Days = days
	return p, nil
}

// AddExercise appends an exercise template to the day. Zero sets/reps fall back to 3x8.
func AddExercise(day Day, name string, sets, reps int, bodyweight bool) Day {
	if sets <= 0 {
		sets = DefaultSets
	}
	if reps <= 0 {
		reps = DefaultReps
	}

	d := day.Clone()
	d.Exercises = append(d.Exercises, ExerciseTemplate{
		ID:           uuid.NewString(),
		Name:         name,
		DefaultSets:  sets,
		DefaultReps:  reps,
		IsBodyweight: bodyweight,
	})
	return d
}

// RemoveExercise removes the exercise template with the given id, if present.
func RemoveExercise(day Day, exerciseID string) Day {
	d := day.Clone()
	exercises := make([]ExerciseTemplate, 0, len(d.Exercises))
	for _, e := range d.Exercises {
		if e.ID != exerciseID {
			exercises = append(exercises, e)
		}
	}
	d.Exercises = exercises
	return d
}

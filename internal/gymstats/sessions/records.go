package sessions

// MaxLookup returns the historical max weight for an exercise name, if any.
type MaxLookup func(name string) (float64, bool)

// EvaluatePR reports whether the exercise sets a new max weight.
// A nil historicalMax means no prior data: any positive weight is a record.
func EvaluatePR(ex ExerciseSession, historicalMax *float64) bool {
	current := ex.MaxWeight()
	if current <= 0 {
		return false
	}
	return historicalMax == nil || current > *historicalMax
}

// ApplyRecords recomputes the record flags of every exercise and set, and
// returns the number of exercises with a record. Bodyweight exercises never
// hold a record. A set is flagged when its own weight beats the historical max.
func ApplyRecords(session *WorkoutSession, lookup MaxLookup) int {
	records := 0
	for i := range session.Exercises {
		ex := &session.Exercises[i]
		ex.IsPR = false
		for j := range ex.Sets {
			ex.Sets[j].IsPR = false
		}
		if ex.IsBodyweight {
			continue
		}

		var historical *float64
		if previous, ok := lookup(ex.Name); ok {
			historical = &previous
		}
		if !EvaluatePR(*ex, historical) {
			continue
		}

		ex.IsPR = true
		records++
		for j := range ex.Sets {
			w := ex.Sets[j].Weight
			ex.Sets[j].IsPR = w > 0 && (historical == nil || w > *historical)
		}
	}
	return records
}

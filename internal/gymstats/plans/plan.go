package plans

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/names"
)

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrInvalidTemplate = errors.New("invalid exercise template")
	ErrIndexOutOfRange = errors.New("index out of range")
)

const (
	DefaultPlanName = "Nuova scheda"
	DefaultSets     = 3
	DefaultReps     = 8
)

type ExerciseTemplate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DefaultSets  int    `json:"defaultSets"`
	DefaultReps  int    `json:"defaultReps"`
	IsBodyweight bool   `json:"isBodyweight"`
	Notes        string `json:"notes"`
}

type Day struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Exercises []ExerciseTemplate `json:"exercises"`
}

// Plan is a user's workout routine. An empty ID means the plan was never saved.
type Plan struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Days      []Day     `json:"days"`
	CreatedAt time.Time `json:"createdAt"`
	// nil order is treated as 0, see NormalizeOrder
	Order *int `json:"order,omitempty"`
}

func (p Plan) OrderValue() int {
	if p.Order == nil {
		return 0
	}
	return *p.Order
}

func (p *Plan) SetOrder(order int) {
	p.Order = &order
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	c := p
	if p.Order != nil {
		c.SetOrder(*p.Order)
	}
	if p.Days != nil {
		c.Days = make([]Day, len(p.Days))
		for i, d := range p.Days {
			c.Days[i] = d.Clone()
		}
	}
	return c
}

func (d Day) Clone() Day {
	c := d
	if d.Exercises != nil {
		c.Exercises = make([]ExerciseTemplate, len(d.Exercises))
		copy(c.Exercises, d.Exercises)
	}
	return c
}

// Find returns the day with the given id.
func (p Plan) Find(dayID string) (Day, bool) {
	for _, d := range p.Days {
		if d.ID == dayID {
			return d, true
		}
	}
	return Day{}, false
}

// ExerciseNames returns every exercise name used in the plan, in plan order.
func (p Plan) ExerciseNames() []string {
	var exerciseNames []string
	for _, d := range p.Days {
		for _, e := range d.Exercises {
			exerciseNames = append(exerciseNames, e.Name)
		}
	}
	return exerciseNames
}

// Validate checks that every exercise has a name and positive set/rep targets.
func (p Plan) Validate() error {
	for di, d := range p.Days {
		for ei, e := range d.Exercises {
			if !names.Valid(e.Name) {
				return fmt.Errorf("%w: day %d, exercise %d: %w", ErrInvalidTemplate, di, ei, names.ErrEmptyName)
			}
			if e.DefaultSets < 1 || e.DefaultReps < 1 {
				return fmt.Errorf("%w: [%s] sets %d, reps %d", ErrInvalidTemplate, e.Name, e.DefaultSets, e.DefaultReps)
			}
		}
	}
	return nil
}

// Normalized returns a copy of the plan with every exercise name normalized.
func (p Plan) Normalized() Plan {
	c := p.Clone()
	for di := range c.Days {
		for ei := range c.Days[di].Exercises {
			c.Days[di].Exercises[ei].Name = names.Normalize(c.Days[di].Exercises[ei].Name)
		}
	}
	return c
}

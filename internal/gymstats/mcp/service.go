package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/gymtracker/internal/gymstats/history"
	"github.com/2beens/gymtracker/internal/gymstats/plans"

	log "github.com/sirupsen/logrus"
)

type plansLister interface {
	List(ctx context.Context, userID string) ([]plans.Plan, error)
}

type historyReader interface {
	SessionsOn(ctx context.Context, userID, date string) ([]history.SessionSummary, error)
	ExerciseHistory(ctx context.Context, userID, exerciseName string, ascending bool) (history.Entries, error)
	Progress(ctx context.Context, userID, exerciseName string) ([]history.ProgressPoint, error)
	LastExercise(ctx context.Context, userID, exerciseName string) (*history.LastExercise, error)
}

type namesSearcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// contextService is what the tool handlers read from.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ListPlans(ctx context.Context, userID string) ([]plans.Plan, error)
	SessionsOn(ctx context.Context, userID, date string) ([]history.SessionSummary, error)
	ExerciseHistory(ctx context.Context, userID, exerciseName string, ascending bool) (history.Entries, error)
	Progress(ctx context.Context, userID, exerciseName string) ([]history.ProgressPoint, error)
	LastExercise(ctx context.Context, userID, exerciseName string) (*history.LastExercise, error)
	ExerciseNames(ctx context.Context, query string) ([]string, error)
}

// ContextService gives AI tooling read only access to a user's plans and history,
// and to the shared exercise library.
type ContextService struct {
	schema  StoreSchema
	plans   plansLister
	history historyReader
	library namesSearcher
}

func NewContextService(schema StoreSchema, plans plansLister, history historyReader, library namesSearcher) *ContextService {
	return &ContextService{
		schema:  schema,
		plans:   plans,
		history: history,
		library: library,
	}
}

// GetSchema returns the layout of the workout_plan, workout_session and
// exercise_name tables as markdown. Document keys are best effort.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	columns, err := s.schema.Columns(ctx)
	if err != nil {
		return "", err
	}
	keys, err := s.schema.DocumentKeys(ctx)
	if err != nil {
		log.Warnf("gymtracker schema, document keys: %s", err)
		keys = nil
	}
	return formatSchema(columns, keys), nil
}

func formatSchema(columns []SchemaColumn, documentKeys map[string][]string) string {
	if len(columns) == 0 {
		return "# Gymtracker DB Schema\n\nNo gymtracker tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range columns {
		byTable[c.Table] = append(byTable[c.Table], c)
	}
	tables := make([]string, 0, len(byTable))
	for t := range byTable {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var b strings.Builder
	b.WriteString("# Gymtracker DB Schema\n\n")
	b.WriteString("Plans and sessions are JSONB documents in the doc column, filtered by the plain columns next to it.\n")

	for _, table := range tables {
		fmt.Fprintf(&b, "\n## %s\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|---------|\n", table)
		for _, c := range byTable[table] {
			nullable, def := "NO", "-"
			if c.Nullable {
				nullable = "YES"
			}
			if c.Default != nil && *c.Default != "" {
				def = *c.Default
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Name, c.Type, nullable, def)
		}
		if keys := documentKeys[table]; len(keys) > 0 {
			fmt.Fprintf(&b, "\nDocument keys: %s\n", strings.Join(keys, ", "))
		}
	}

	return b.String()
}

func (s *ContextService) ListPlans(ctx context.Context, userID string) ([]plans.Plan, error) {
	return s.plans.List(ctx, userID)
}

func (s *ContextService) SessionsOn(ctx context.Context, userID, date string) ([]history.SessionSummary, error) {
	return s.history.SessionsOn(ctx, userID, date)
}

func (s *ContextService) ExerciseHistory(ctx context.Context, userID, exerciseName string, ascending bool) (history.Entries, error) {
	return s.history.ExerciseHistory(ctx, userID, exerciseName, ascending)
}

func (s *ContextService) Progress(ctx context.Context, userID, exerciseName string) ([]history.ProgressPoint, error) {
	return s.history.Progress(ctx, userID, exerciseName)
}

func (s *ContextService) LastExercise(ctx context.Context, userID, exerciseName string) (*history.LastExercise, error) {
	return s.history.LastExercise(ctx, userID, exerciseName)
}

// ExerciseNames searches the exercise library, an empty query lists it all.
func (s *ContextService) ExerciseNames(ctx context.Context, query string) ([]string, error) {
	return s.library.Search(ctx, query)
}

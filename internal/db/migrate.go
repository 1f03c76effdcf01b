package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Plans and sessions are stored as whole JSONB documents; the columns next to
// the document are only what is needed to filter and sort.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS workout_plan (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		plan_order INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		doc        JSONB NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS workout_plan_user_idx ON workout_plan (user_id);`,
	`CREATE TABLE IF NOT EXISTS workout_session (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		session_date TIMESTAMPTZ NOT NULL,
		doc          JSONB NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS workout_session_user_date_idx ON workout_session (user_id, session_date DESC);`,
	`CREATE TABLE IF NOT EXISTS exercise_name (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
}

// Migrate creates the gymstats tables if they don't exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	log.Debugf("db schema ready, %d statements applied", len(schemaStatements))
	return nil
}

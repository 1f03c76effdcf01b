package mcp

import (
	"context"
	"fmt"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// StoreSchema describes the gymtracker tables. Plans and sessions live in
// JSONB documents, so the columns alone do not tell what a row holds.
type StoreSchema interface {
	Columns(ctx context.Context) ([]SchemaColumn, error)
	// DocumentKeys returns the top level keys seen in the documents, per table.
	DocumentKeys(ctx context.Context) (map[string][]string, error)
}

type SchemaColumn struct {
	Table    string
	Name     string
	Type     string
	Nullable bool
	Default  *string
}

var storeTables = []string{"workout_plan", "workout_session", "exercise_name"}

// table names cannot be bound as parameters
var documentKeysQueries = map[string]string{
	"workout_plan":    `SELECT DISTINCT jsonb_object_keys(doc) FROM workout_plan ORDER BY 1;`,
	"workout_session": `SELECT DISTINCT jsonb_object_keys(doc) FROM workout_session ORDER BY 1;`,
}

type PgStoreSchema struct {
	db *pgxpool.Pool
}

func NewPgStoreSchema(db *pgxpool.Pool) *PgStoreSchema {
	return &PgStoreSchema{
		db: db,
	}
}

func (s *PgStoreSchema) Columns(ctx context.Context) (_ []SchemaColumn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.mcp.columns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`SELECT table_name, column_name, data_type, is_nullable = 'YES', column_default
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = ANY($1)
		ORDER BY table_name, ordinal_position;`,
		storeTables,
	)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []SchemaColumn
	for rows.Next() {
		var c SchemaColumn
		if err := rows.Scan(&c.Table, &c.Name, &c.Type, &c.Nullable, &c.Default); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("columns.count", len(columns)))
	return columns, nil
}

func (s *PgStoreSchema) DocumentKeys(ctx context.Context) (_ map[string][]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.mcp.documentKeys")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	keys := make(map[string][]string, len(documentKeysQueries))
	for table, query := range documentKeysQueries {
		tableKeys, err := s.collectKeys(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("document keys of %s: %w", table, err)
		}
		keys[table] = tableKeys
	}
	return keys, nil
}

func (s *PgStoreSchema) collectKeys(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

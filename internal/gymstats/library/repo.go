package library

import (
	"context"
	"fmt"

	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns the stored display names. Rows written before names were
// normalized may still collapse to the same key, callers dedupe.
func (r *Repo) List(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.library.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT name FROM exercise_name;`)
	if err != nil {
		return nil, fmt.Errorf("exercise names [query]: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		list = append(list, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("names.count", len(list)))
	return list, nil
}

// Upsert stores name under its normalized key, replacing the display value.
func (r *Repo) Upsert(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.library.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := names.Normalize(name)
	if key == "" {
		return names.ErrEmptyName
	}
	span.SetAttributes(attribute.String("name.key", key))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO exercise_name (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;`,
		key, name,
	)
	return err
}

// Delete removes the entry with the normalized key of name. Deleting a
// missing entry is not an error.
func (r *Repo) Delete(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.library.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := names.Normalize(name)
	span.SetAttributes(attribute.String("name.key", key))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise_name WHERE id = $1;`, key)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int64("rows.affected", tag.RowsAffected()))
	return nil
}

package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const insertAttempts = 3

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns the user's sessions, newest first. from and to are optional
// bounds, from inclusive and to exclusive. Malformed documents are skipped.
func (r *Repo) List(ctx context.Context, userID string, from, to *time.Time) (_ []WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, doc
			FROM workout_session
			WHERE user_id = $1
				AND ($2::timestamptz IS NULL OR session_date >= $2)
				AND ($3::timestamptz IS NULL OR session_date < $3)
			ORDER BY session_date DESC;
		`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("sessions [query]: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))
	return sessions, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	var doc []byte
	err = r.db.QueryRow(ctx, `SELECT doc FROM workout_session WHERE id = $1;`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return decodeSession(id, doc)
}

// Save inserts the session under a new id when it has none, otherwise it
// replaces the stored document. Returns the session id.
func (r *Repo) Save(ctx context.Context, session WorkoutSession) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Bool("session.new", session.ID == ""),
		attribute.Int("session.exercises", len(session.Exercises)),
	)

	if session.ID != "" {
		span.SetAttributes(attribute.String("session.id", session.ID))
		return session.ID, r.upsert(ctx, session)
	}

	for attempt := 1; attempt <= insertAttempts; attempt++ {
		session.ID = uuid.NewString()
		err = r.insert(ctx, session)
		if err == nil {
			span.SetAttributes(attribute.String("session.id", session.ID))
			return session.ID, nil
		}
		if !pkg.IsUniqueViolationError(err) {
			return "", err
		}
		log.Warnf("session id collision [%s], attempt %d", session.ID, attempt)
	}

	return "", fmt.Errorf("insert session: %w", err)
}

func (r *Repo) insert(ctx context.Context, session WorkoutSession) error {
	doc, err := encodeSession(session)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_session (id, user_id, session_date, doc) VALUES ($1, $2, $3, $4);`,
		session.ID, session.UserID, session.Date, doc,
	)
	return err
}

func (r *Repo) upsert(ctx context.Context, session WorkoutSession) error {
	doc, err := encodeSession(session)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_session (id, user_id, session_date, doc) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				user_id = EXCLUDED.user_id,
				session_date = EXCLUDED.session_date,
				doc = EXCLUDED.doc;`,
		session.ID, session.UserID, session.Date, doc,
	)
	return err
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_session WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns every stored session, of all users. Used by the admin tooling.
func (r *Repo) ListAll(ctx context.Context) (_ []WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, doc FROM workout_session ORDER BY session_date DESC;`)
	if err != nil {
		return nil, fmt.Errorf("sessions [query]: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func scanSessions(rows pgx.Rows) ([]WorkoutSession, error) {
	var sessions []WorkoutSession
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		session, err := decodeSession(id, doc)
		if err != nil {
			log.Warnf("skipping malformed session document [%s]: %s", id, err)
			continue
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func encodeSession(session WorkoutSession) ([]byte, error) {
	session.ID = ""
	doc, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return doc, nil
}

func decodeSession(id string, doc []byte) (*WorkoutSession, error) {
	var session WorkoutSession
	if err := json.Unmarshal(doc, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	session.ID = id
	return &session, nil
}

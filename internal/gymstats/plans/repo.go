package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

// List returns all plans of the user, in no particular order.
// Documents that fail to decode are skipped.
func (r *Repo) List(ctx context.Context, userID string) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, plan_order, doc FROM workout_plan WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var (
			id    string
			order *int
			doc   []byte
		)
		if err := rows.Scan(&id, &order, &doc); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		plan, err := decodePlan(id, userID, order, doc)
		if err != nil {
			log.Warnf("skipping malformed plan document [%s]: %s", id, err)
			continue
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("plans.count", len(plans)))
	return plans, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", id))

	var (
		userID string
		order  *int
		doc    []byte
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, plan_order, doc FROM workout_plan WHERE id = $1;`,
		id,
	).Scan(&userID, &order, &doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return decodePlan(id, userID, order, doc)
}

// Save inserts the plan under a new id when it has none, otherwise it merges
// the document into the stored one. The owner of a stored plan never changes.
// Returns the plan id.
func (r *Repo) Save(ctx context.Context, plan Plan) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.plans.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("plan.new", plan.ID == ""))

	if plan.ID != "" {
		span.SetAttributes(attribute.String("plan.id", plan.ID))
		return plan.ID, r.upsert(ctx, plan)
	}

	for attempt := 1; attempt <= insertAttempts; attempt++ {
		plan.ID = uuid.NewString()
		err = r.insert(ctx, plan)
		if err == nil {
			span.SetAttributes(attribute.String("plan.id", plan.ID))
			return plan.ID, nil
		}
		if !pkg.IsUniqueViolationError(err) {
			return "", err
		}
		log.Warnf("plan id collision [%s], attempt %d", plan.ID, attempt)
	}

	return "", fmt.Errorf("insert plan: %w", err)
}

func (r *Repo) insert(ctx context.Context, plan Plan) error {
	doc, err := encodePlan(plan)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_plan (id, user_id, plan_order, created_at, doc) VALUES ($1, $2, $3, $4, $5);`,
		plan.ID, plan.UserID, plan.Order, plan.CreatedAt, doc,
	)
	return err
}

func (r *Repo) upsert(ctx context.Context, plan Plan) error {
	doc, err := encodePlan(plan)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_plan (id, user_id, plan_order, created_at, doc) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				plan_order = COALESCE(EXCLUDED.plan_order, workout_plan.plan_order),
				doc = workout_plan.doc || EXCLUDED.doc;`,
		plan.ID, plan.UserID, plan.Order, plan.CreatedAt, doc,
	)
	return err
}

// UpdateOrder only touches the plan's order.
func (r *Repo) UpdateOrder(ctx context.Context, id string, order int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.plans.updateOrder")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", id), attribute.Int("plan.order", order))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_plan SET plan_order = $1 WHERE id = $2;`,
		order, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_plan WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// ListAll returns every stored plan, of all users. Used by the admin tooling.
func (r *Repo) ListAll(ctx context.Context) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.plans.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, user_id, plan_order, doc FROM workout_plan;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var (
			id     string
			userID string
			order  *int
			doc    []byte
		)
		if err := rows.Scan(&id, &userID, &order, &doc); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		plan, err := decodePlan(id, userID, order, doc)
		if err != nil {
			log.Warnf("skipping malformed plan document [%s]: %s", id, err)
			continue
		}
		plans = append(plans, *plan)
	}

	return plans, rows.Err()
}

// the id, user and order columns are authoritative, the document copies are ignored
func encodePlan(plan Plan) ([]byte, error) {
	plan.ID = ""
	plan.Order = nil
	doc, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	return doc, nil
}

func decodePlan(id, userID string, order *int, doc []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(doc, &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	plan.ID = id
	plan.UserID = userID
	plan.Order = order
	return &plan, nil
}

package mcp

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewServer builds an MCP server with gymtracker tools: schema, plans, sessions of a day,
// exercise history, progress, last max weight and the exercise library.
// Served over stdio by cmd/gymstats_mcp and over HTTP at /mcp by the main backend.
func NewServer(pool *pgxpool.Pool, plans plansLister, history historyReader, library namesSearcher) *mcp.Server {
	svc := NewContextService(NewPgStoreSchema(pool), plans, history, library)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gymtracker-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_gymtracker_context",
		Description: "Returns the DB schema of the gymtracker tables (workout_plan, workout_session, exercise_name): table names, columns, types, nullable, default, and the top level keys of the JSONB plan and session documents.",
	}, h.GetGymtrackerContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_plans",
		Description: "Returns the workout plans of a user, in display order, with their days and exercise templates (sets, reps, bodyweight, notes). Arg: user_id.",
	}, h.ListPlansTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_sessions_for_day",
		Description: "Returns a summary of the workout sessions of a user on a calendar day: plan name, day label, number of exercises and records. Args: user_id, date (YYYY-MM-DD).",
	}, h.GetSessionsForDayTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_history",
		Description: "Returns every logged session of an exercise with all its sets. Args: user_id, exercise; optional: order (asc or desc, default desc). Use when you need what was done exactly in past sessions.",
	}, h.GetExerciseHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_progress",
		Description: "Returns the progression of an exercise over time, oldest first: max weight, volume (reps x weight), sets, reps and whether it was a record. Args: user_id, exercise.",
	}, h.GetExerciseProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_last_max_weight",
		Description: "Returns the exercise as done in the most recent session and the last max weight lifted on it (the weight to beat for a new record). Args: user_id, exercise.",
	}, h.GetLastMaxWeightTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_exercise_names",
		Description: "Returns the exercise names of the shared library, sorted. Optional: query to filter by part of the name.",
	}, h.ListExerciseNamesTool())

	return s
}

// NewHTTPHandler serves the server over streamable HTTP.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
	return otelhttp.NewHandler(handler, "mcp")
}

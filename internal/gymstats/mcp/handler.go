package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetGymtrackerContextTool returns the MCP tool handler for get_gymtracker_context.
func (h *Handler) GetGymtrackerContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

type UserInput struct {
	UserID string `json:"user_id" jsonschema:"Id of the user owning the plans and sessions"`
}

// ListPlansTool returns the MCP tool handler for list_plans.
func (h *Handler) ListPlansTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		userID := strings.TrimSpace(in.UserID)
		if userID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		planList, err := h.service.ListPlans(ctx, userID)
		if err != nil {
			return errorResult("Error listing plans: " + err.Error()), nil, nil
		}
		return jsonResult(planList), nil, nil
	}
}

type SessionsForDayInput struct {
	UserID string `json:"user_id" jsonschema:"Id of the user owning the sessions"`
	Date   string `json:"date" jsonschema:"Calendar day (YYYY-MM-DD)"`
}

// GetSessionsForDayTool returns the MCP tool handler for get_sessions_for_day.
func (h *Handler) GetSessionsForDayTool() func(context.Context, *mcp.CallToolRequest, SessionsForDayInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SessionsForDayInput) (*mcp.CallToolResult, any, error) {
		userID := strings.TrimSpace(in.UserID)
		if userID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return errorResult("Invalid date: use YYYY-MM-DD"), nil, nil
		}
		summaries, err := h.service.SessionsOn(ctx, userID, in.Date)
		if err != nil {
			return errorResult("Error listing sessions: " + err.Error()), nil, nil
		}
		return jsonResult(summaries), nil, nil
	}
}

type ExerciseInput struct {
	UserID   string `json:"user_id" jsonschema:"Id of the user owning the sessions"`
	Exercise string `json:"exercise" jsonschema:"Exercise name, matched case insensitive (e.g. Panca Piana)"`
}

func validateExercise(userID, exercise string) (string, string, *mcp.CallToolResult) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", "", errorResult("user_id is required")
	}
	exercise = strings.TrimSpace(exercise)
	if exercise == "" {
		return "", "", errorResult("exercise is required")
	}
	return userID, exercise, nil
}

type ExerciseHistoryInput struct {
	UserID   string `json:"user_id" jsonschema:"Id of the user owning the sessions"`
	Exercise string `json:"exercise" jsonschema:"Exercise name, matched case insensitive (e.g. Panca Piana)"`
	Order    string `json:"order,omitempty" jsonschema:"asc (oldest first) or desc (newest first, default)"`
}

// GetExerciseHistoryTool returns the MCP tool handler for get_exercise_history.
func (h *Handler) GetExerciseHistoryTool() func(context.Context, *mcp.CallToolRequest, ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
		userID, exercise, invalid := validateExercise(in.UserID, in.Exercise)
		if invalid != nil {
			return invalid, nil, nil
		}
		if in.Order != "" && in.Order != "asc" && in.Order != "desc" {
			return errorResult("Invalid order: use asc or desc"), nil, nil
		}
		entries, err := h.service.ExerciseHistory(ctx, userID, exercise, in.Order == "asc")
		if err != nil {
			return errorResult("Error fetching exercise history: " + err.Error()), nil, nil
		}
		return jsonResult(entries), nil, nil
	}
}

// GetExerciseProgressTool returns the MCP tool handler for get_exercise_progress.
func (h *Handler) GetExerciseProgressTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		userID, exercise, invalid := validateExercise(in.UserID, in.Exercise)
		if invalid != nil {
			return invalid, nil, nil
		}
		points, err := h.service.Progress(ctx, userID, exercise)
		if err != nil {
			return errorResult("Error fetching exercise progress: " + err.Error()), nil, nil
		}
		return jsonResult(points), nil, nil
	}
}

// GetLastMaxWeightTool returns the MCP tool handler for get_last_max_weight.
func (h *Handler) GetLastMaxWeightTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		userID, exercise, invalid := validateExercise(in.UserID, in.Exercise)
		if invalid != nil {
			return invalid, nil, nil
		}
		last, err := h.service.LastExercise(ctx, userID, exercise)
		if err != nil {
			return errorResult("Error fetching last exercise: " + err.Error()), nil, nil
		}
		if last.Exercise == nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: "No sessions found for " + exercise}},
			}, nil, nil
		}
		return jsonResult(last), nil, nil
	}
}

type ExerciseNamesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Part of the name to search for, empty lists all names"`
}

// ListExerciseNamesTool returns the MCP tool handler for list_exercise_names.
func (h *Handler) ListExerciseNamesTool() func(context.Context, *mcp.CallToolRequest, ExerciseNamesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseNamesInput) (*mcp.CallToolResult, any, error) {
		names, err := h.service.ExerciseNames(ctx, in.Query)
		if err != nil {
			return errorResult("Error listing exercise names: " + err.Error()), nil, nil
		}
		if names == nil {
			names = []string{}
		}
		return jsonResult(names), nil, nil
	}
}

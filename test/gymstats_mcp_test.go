//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/history"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *IntegrationTestSuite) mcpSession() *mcp.ClientSession {
	client := mcp.NewClient(&mcp.Implementation{Name: "integration-test", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &mcp.StreamableClientTransport{
		Endpoint: serverEndpoint + "/mcp",
	}, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() {
		_ = session.Close()
	})
	return session
}

func (s *IntegrationTestSuite) callTool(session *mcp.ClientSession, name string, args map[string]any) string {
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	s.Require().True(ok)
	s.Require().False(res.IsError, text.Text)
	return text.Text
}

func (s *IntegrationTestSuite) TestMCP_Tools() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")
	saved := s.trainSession(user, plan, time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), 70)

	session := s.mcpSession()

	schema := s.callTool(session, "get_gymtracker_context", map[string]any{})
	s.Contains(schema, "# Gymtracker DB Schema")
	s.Contains(schema, "workout_session")
	s.Contains(schema, "| doc | jsonb | NO | - |")
	s.Contains(schema, "Document keys: ")
	s.Contains(schema, "exercises")

	var day []history.SessionSummary
	s.Require().NoError(json.Unmarshal([]byte(s.callTool(session, "get_sessions_for_day", map[string]any{
		"user_id": user,
		"date":    "2024-03-04",
	})), &day))
	s.Require().Len(day, 1)
	s.Equal(saved.ID, day[0].ID)

	var last history.LastExercise
	s.Require().NoError(json.Unmarshal([]byte(s.callTool(session, "get_last_max_weight", map[string]any{
		"user_id":  user,
		"exercise": "Panca Piana",
	})), &last))
	s.Require().NotNil(last.LastMaxWeight)
	s.Equal(70.0, *last.LastMaxWeight)

	names := s.callTool(session, "list_exercise_names", map[string]any{"query": "squ"})
	s.True(strings.Contains(names, "Squat"), names)
}

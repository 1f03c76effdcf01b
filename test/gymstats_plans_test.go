//go:build integration_test || all_tests

package test

import (
	"net/http"

	"github.com/2beens/gymtracker/internal/gymstats/plans"
)

func (s *IntegrationTestSuite) savePlan(user, name string) plans.Plan {
	var saved plans.Plan
	s.doJSON(http.MethodPost, "/gymstats/plans", user, plans.Plan{
		Name: name,
		Days: []plans.Day{{
			ID:    "day-a",
			Label: "Day A",
			Exercises: []plans.ExerciseTemplate{
				{ID: "t1", Name: "panca piana", DefaultSets: 3, DefaultReps: 8},
				{ID: "t2", Name: "squat", DefaultSets: 4, DefaultReps: 6},
			},
		}},
	}, http.StatusCreated, &saved)
	return saved
}

func (s *IntegrationTestSuite) TestPlans_SaveAndList() {
	user := s.newUser()
	first := s.savePlan(user, "Push")
	second := s.savePlan(user, "Pull")
	s.NotEmpty(first.ID)
	s.NotEqual(first.ID, second.ID)

	var list plans.ListResponse
	s.doJSON(http.MethodGet, "/gymstats/plans", user, nil, http.StatusOK, &list)
	s.Require().Len(list.Plans, 2)
	s.Equal("Push", list.Plans[0].Name)
	s.Equal("Pull", list.Plans[1].Name)
	s.Equal(0, list.Plans[0].OrderValue())
	s.Equal(1, list.Plans[1].OrderValue())

	// other users see nothing
	s.doJSON(http.MethodGet, "/gymstats/plans", s.newUser(), nil, http.StatusOK, &list)
	s.Empty(list.Plans)

	var count int
	s.Require().NoError(s.DB.QueryRow("SELECT COUNT(*) FROM workout_plan WHERE user_id = $1", user).Scan(&count))
	s.Equal(2, count)
}

func (s *IntegrationTestSuite) TestPlans_UpdateKeepsID() {
	user := s.newUser()
	plan := s.savePlan(user, "Legs")

	plan.Name = "Legs Heavy"
	var updated plans.Plan
	s.doJSON(http.MethodPost, "/gymstats/plans", user, plan, http.StatusOK, &updated)
	s.Equal(plan.ID, updated.ID)
	s.Equal("Legs Heavy", updated.Name)

	var name string
	s.Require().NoError(s.DB.QueryRow("SELECT doc->>'name' FROM workout_plan WHERE id = $1", plan.ID).Scan(&name))
	s.Equal("Legs Heavy", name)
}

func (s *IntegrationTestSuite) TestPlans_UpdateByOtherUser() {
	owner := s.newUser()
	plan := s.savePlan(owner, "Legs")

	other := s.newUser()
	taken := plan
	taken.Name = "Taken"
	status, _ := s.do(http.MethodPost, "/gymstats/plans", other, taken)
	s.Equal(http.StatusNotFound, status)

	var userID, name string
	s.Require().NoError(s.DB.QueryRow("SELECT user_id, doc->>'name' FROM workout_plan WHERE id = $1", plan.ID).Scan(&userID, &name))
	s.Equal(owner, userID)
	s.Equal("Legs", name)

	var list plans.ListResponse
	s.doJSON(http.MethodGet, "/gymstats/plans", other, nil, http.StatusOK, &list)
	s.Empty(list.Plans)
}

func (s *IntegrationTestSuite) TestPlans_ReorderAndDelete() {
	user := s.newUser()
	s.savePlan(user, "A")
	s.savePlan(user, "B")
	s.savePlan(user, "C")

	var list plans.ListResponse
	s.doJSON(http.MethodPut, "/gymstats/plans/order", user, plans.ReorderRequest{
		Sources:     []int{2},
		Destination: 0,
	}, http.StatusOK, &list)
	s.Require().Len(list.Plans, 3)
	s.Equal([]string{"C", "A", "B"}, planNames(list.Plans))

	// order survives a reload from the store
	s.doJSON(http.MethodGet, "/gymstats/plans", user, nil, http.StatusOK, &list)
	s.Equal([]string{"C", "A", "B"}, planNames(list.Plans))

	s.doJSON(http.MethodDelete, "/gymstats/plans?indices=0,2", user, nil, http.StatusOK, &list)
	s.Equal([]string{"A"}, planNames(list.Plans))

	status, _ := s.do(http.MethodDelete, "/gymstats/plans?indices=5", user, nil)
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestPlans_Days() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")

	var updated plans.Plan
	s.doJSON(http.MethodPost, "/gymstats/plans/"+plan.ID+"/days", user, nil, http.StatusOK, &updated)
	s.Require().Len(updated.Days, 2)
	s.Equal("Day B", updated.Days[1].Label)

	s.doJSON(http.MethodPost, "/gymstats/plans/"+plan.ID+"/days/0/duplicate", user, nil, http.StatusOK, &updated)
	s.Require().Len(updated.Days, 3)
	// the copy lands right after its source
	s.Equal("Day A (Copia)", updated.Days[1].Label)
	s.Len(updated.Days[1].Exercises, 2)
	s.NotEqual(updated.Days[0].ID, updated.Days[1].ID)
	s.Equal("Day B", updated.Days[2].Label)

	status, _ := s.do(http.MethodPost, "/gymstats/plans/missing/days", user, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestPlans_UserRequired() {
	status, _ := s.do(http.MethodGet, "/gymstats/plans", "", nil)
	s.Equal(http.StatusUnauthorized, status)
}

func planNames(list []plans.Plan) []string {
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return names
}

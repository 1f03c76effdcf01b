//go:build integration_test || all_tests

package test

import (
	"net/http"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/history"
	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/gymstats/sessions"
)

// trainSession builds a session from the plan's first day, sets every bench
// set to the given weight and saves it.
func (s *IntegrationTestSuite) trainSession(user string, plan plans.Plan, date time.Time, benchWeight float64) sessions.WorkoutSession {
	var session sessions.WorkoutSession
	s.doJSON(http.MethodPost, "/gymstats/sessions/build", user, sessions.BuildRequest{
		PlanID: plan.ID,
		DayID:  plan.Days[0].ID,
	}, http.StatusOK, &session)

	session.Date = date
	for i := range session.Exercises[0].Sets {
		session.Exercises[0].Sets[i].Weight = benchWeight
		session.Exercises[0].Sets[i].IsCompleted = true
	}

	var saved sessions.WorkoutSession
	s.doJSON(http.MethodPost, "/gymstats/sessions", user, session, http.StatusCreated, &saved)
	return saved
}

func (s *IntegrationTestSuite) TestSessions_BuildAndSave() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")

	var session sessions.WorkoutSession
	s.doJSON(http.MethodPost, "/gymstats/sessions/build", user, sessions.BuildRequest{
		PlanID: plan.ID,
		DayID:  plan.Days[0].ID,
	}, http.StatusOK, &session)
	s.Empty(session.ID)
	s.Require().Len(session.Exercises, 2)
	s.Len(session.Exercises[0].Sets, 3)
	s.Len(session.Exercises[1].Sets, 4)

	saved := s.trainSession(user, plan, time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), 80)
	s.NotEmpty(saved.ID)
	s.True(saved.Exercises[0].IsPR)

	var stored sessions.WorkoutSession
	s.doJSON(http.MethodGet, "/gymstats/sessions/"+saved.ID, user, nil, http.StatusOK, &stored)
	s.Equal(saved.ID, stored.ID)
	s.Equal(plan.ID, stored.PlanID)
	s.Equal(80.0, stored.Exercises[0].Sets[0].Weight)

	var sessionDate time.Time
	s.Require().NoError(s.DB.QueryRow("SELECT session_date FROM workout_session WHERE id = $1", saved.ID).Scan(&sessionDate))
	s.True(sessionDate.Equal(saved.Date))

	// sessions are private
	status, _ := s.do(http.MethodGet, "/gymstats/sessions/"+saved.ID, s.newUser(), nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestSessions_BuildUnknownDay() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")

	status, _ := s.do(http.MethodPost, "/gymstats/sessions/build", user, sessions.BuildRequest{
		PlanID: plan.ID,
		DayID:  "nope",
	})
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestSessions_ExtraExercise() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")

	var session sessions.WorkoutSession
	s.doJSON(http.MethodPost, "/gymstats/sessions/build", user, sessions.BuildRequest{
		PlanID: plan.ID,
		DayID:  plan.Days[0].ID,
	}, http.StatusOK, &session)

	var extended sessions.WorkoutSession
	s.doJSON(http.MethodPost, "/gymstats/sessions/extra", user, sessions.ExtraExerciseRequest{
		Session: session,
		Name:    "curl bilanciere",
	}, http.StatusOK, &extended)
	s.Require().Len(extended.Exercises, 3)
	s.Equal("curl bilanciere", extended.Exercises[2].Name)

	status, _ := s.do(http.MethodPost, "/gymstats/sessions/extra", user, sessions.ExtraExerciseRequest{
		Session: session,
		Name:    "   ",
	})
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestSessions_HistoryAndRecords() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")

	first := s.trainSession(user, plan, time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), 80)
	second := s.trainSession(user, plan, time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC), 75)
	third := s.trainSession(user, plan, time.Date(2024, 3, 8, 18, 0, 0, 0, time.UTC), 85)
	s.True(first.Exercises[0].IsPR)
	s.False(second.Exercises[0].IsPR)
	s.True(third.Exercises[0].IsPR)

	var calendar []history.CalendarDayView
	s.doJSON(http.MethodGet, "/gymstats/history/calendar", user, nil, http.StatusOK, &calendar)
	s.Require().Len(calendar, 3)
	s.Equal("2024-03-08", calendar[0].Date)
	s.Equal("Full Body", calendar[0].Sessions[0].PlanName)
	s.Equal("Day A", calendar[0].Sessions[0].DayLabel)

	var day []history.SessionSummary
	s.doJSON(http.MethodGet, "/gymstats/history/day/2024-03-06", user, nil, http.StatusOK, &day)
	s.Require().Len(day, 1)
	s.Equal(second.ID, day[0].ID)

	var entries history.Entries
	s.doJSON(http.MethodGet, "/gymstats/history/exercise/panca%20piana?order=asc", user, nil, http.StatusOK, &entries)
	s.Require().Len(entries, 3)
	s.Equal(first.ID, entries[0].SessionID)
	s.Equal(third.ID, entries[2].SessionID)

	var progress []history.ProgressPoint
	s.doJSON(http.MethodGet, "/gymstats/history/exercise/panca%20piana/progress", user, nil, http.StatusOK, &progress)
	s.Require().Len(progress, 3)
	s.Equal(85.0, progress[2].MaxWeight)

	var last history.LastExercise
	s.doJSON(http.MethodGet, "/gymstats/history/exercise/panca%20piana/last", user, nil, http.StatusOK, &last)
	s.Require().NotNil(last.LastMaxWeight)
	s.Equal(85.0, *last.LastMaxWeight)

	// deleting the newest session brings the previous one back as last
	status, _ := s.do(http.MethodDelete, "/gymstats/sessions/"+third.ID, user, nil)
	s.Require().Equal(http.StatusOK, status)
	s.doJSON(http.MethodGet, "/gymstats/history/exercise/panca%20piana/last", user, nil, http.StatusOK, &last)
	s.Require().NotNil(last.LastMaxWeight)
	s.Equal(75.0, *last.LastMaxWeight)
}

func (s *IntegrationTestSuite) TestSessions_LiveView() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")
	s.trainSession(user, plan, time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), 80)

	var session sessions.WorkoutSession
	s.doJSON(http.MethodPost, "/gymstats/sessions/build", user, sessions.BuildRequest{
		PlanID: plan.ID,
		DayID:  plan.Days[0].ID,
	}, http.StatusOK, &session)
	session.Date = time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	session.Exercises[0].Sets[0].Weight = 90

	var view history.LiveView
	s.doJSON(http.MethodPost, "/gymstats/sessions/live", user, session, http.StatusOK, &view)
	s.Equal(1, view.Records)
	s.True(view.Session.Exercises[0].IsPR)
	s.True(view.Session.Exercises[0].Sets[0].IsPR)
	s.False(view.Session.Exercises[0].Sets[1].IsPR)
	s.Require().NotEmpty(view.Hints)
	s.Require().NotNil(view.Hints[0].LastMaxWeight)
	s.Equal(80.0, *view.Hints[0].LastMaxWeight)

	// live views are never stored
	var count int
	s.Require().NoError(s.DB.QueryRow("SELECT COUNT(*) FROM workout_session WHERE user_id = $1", user).Scan(&count))
	s.Equal(1, count)
}

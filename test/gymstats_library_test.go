//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"time"
)

func (s *IntegrationTestSuite) TestLibrary_RecordedFromPlansAndSessions() {
	user := s.newUser()
	plan := s.savePlan(user, "Full Body")

	var list []string
	s.doJSON(http.MethodGet, "/gymstats/library", user, nil, http.StatusOK, &list)
	s.Equal([]string{"Panca Piana", "Squat"}, list)

	// the list is now cached in redis, a session write must invalidate it
	s.Require().Equal(int64(1), s.redisClient.Exists(context.Background(), "gymstats::library::names").Val())

	session := s.trainSession(user, plan, time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), 60)
	session.Exercises[1].Name = "  squat bulgaro "
	s.doJSON(http.MethodPost, "/gymstats/sessions", user, session, http.StatusOK, nil)

	s.doJSON(http.MethodGet, "/gymstats/library", user, nil, http.StatusOK, &list)
	s.Equal([]string{"Panca Piana", "Squat", "Squat Bulgaro"}, list)

	var stored string
	s.Require().NoError(s.DB.QueryRow("SELECT name FROM exercise_name WHERE id = $1", "Squat Bulgaro").Scan(&stored))
	s.Equal("Squat Bulgaro", stored)
}

func (s *IntegrationTestSuite) TestLibrary_SearchAndRemove() {
	user := s.newUser()
	s.savePlan(user, "Full Body")

	var found []string
	s.doJSON(http.MethodGet, "/gymstats/library/search?q=PANCA", user, nil, http.StatusOK, &found)
	s.Equal([]string{"Panca Piana"}, found)

	status, body := s.do(http.MethodDelete, "/gymstats/library/panca%20piana", user, nil)
	s.Require().Equal(http.StatusOK, status, string(body))

	var list []string
	s.doJSON(http.MethodGet, "/gymstats/library", user, nil, http.StatusOK, &list)
	s.Equal([]string{"Squat"}, list)

	s.doJSON(http.MethodGet, "/gymstats/library/search?q=panca", user, nil, http.StatusOK, &found)
	s.Empty(found)

	// removing twice is fine
	status, _ = s.do(http.MethodDelete, "/gymstats/library/panca%20piana", user, nil)
	s.Equal(http.StatusOK, status)
}

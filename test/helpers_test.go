//go:build integration_test || all_tests

package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/2beens/gymtracker/internal/middleware"

	"github.com/brianvoe/gofakeit/v6"
)

// newUser returns a user nobody used before, so server side caches never
// carry state from another test.
func (s *IntegrationTestSuite) newUser() string {
	return gofakeit.Username() + "-" + gofakeit.UUID()
}

func (s *IntegrationTestSuite) newRequest(method, path, user string, body any) *http.Request {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(middleware.UserHeader, user)
	}
	return req
}

// do sends the request and returns the status code and the whole body.
func (s *IntegrationTestSuite) do(method, path, user string, body any) (int, []byte) {
	resp, err := s.httpClient.Do(s.newRequest(method, path, user, body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBody
}

func (s *IntegrationTestSuite) doJSON(method, path, user string, body any, expectedStatus int, out any) {
	status, respBody := s.do(method, path, user, body)
	s.Require().Equal(expectedStatus, status, string(respBody))
	if out != nil {
		s.Require().NoError(json.Unmarshal(respBody, out))
	}
}

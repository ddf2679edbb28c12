package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"aura-cloud/journal"
)

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRecommendSuccess(t *testing.T) {
	server, j := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/recommend",
		`{"user_id":"u1","hour":9,"class_hours":4,"work_hours":3,"commute":1,"sleep":5,"stress":4,"mood":"tired"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	var payload recommendResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "success", payload.Status)
	require.Equal(t, 0, payload.Focus)
	require.Len(t, payload.Tips, 3)
	require.Equal(t, strings.Join(payload.Tips, " "), payload.Recommendation)
	require.Equal(t, "morning", payload.TimeOfDay)
	require.NotEmpty(t, payload.CheckInID)

	list, err := j.Recent(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, journal.KindRecommend, list[0].Kind)
	require.Equal(t, payload.CheckInID, list[0].ID)
	require.Equal(t, payload.Recommendation, list[0].Summary)
}

func TestRecommendZeroValuesAreAccepted(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/recommend",
		`{"hour":0,"class_hours":0,"work_hours":0,"commute":0,"sleep":0,"stress":0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecommendMissingField(t *testing.T) {
	server, j := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/recommend", `{"hour":9,"class_hours":4,"work_hours":3,"commute":1,"sleep":5}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "error", payload.Status)
	require.Equal(t, missingInputMessage, payload.Message)

	list, err := j.Recent(context.Background(), "", 10)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRecommendInvalidJSON(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/recommend", `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecommendAcceptsStringFormFields(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/recommend",
		`{"hour":"9","class_hours":"4","work_hours":"3","commute":"1","sleep":"5","stress":"4","mood":"tired"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload recommendResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "success", payload.Status)
	require.Equal(t, 0, payload.Focus)
	require.Equal(t, "morning", payload.TimeOfDay)
	require.Len(t, payload.Tips, 3)
}

func TestRecommendNonNumericStringIsRejected(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/recommend",
		`{"hour":"soon","class_hours":"4","work_hours":"3","commute":"1","sleep":"5","stress":"4"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

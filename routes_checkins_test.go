package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"aura-cloud/journal"
)

func TestCheckinsListNewestFirst(t *testing.T) {
	server, j := newTestServer(t, nil)
	ctx := context.Background()

	for _, summary := range []string{"a", "b", "c"} {
		_, err := j.Append(ctx, journal.CheckIn{UserID: "u1", Kind: journal.KindRecommend, Summary: summary})
		require.NoError(t, err)
	}

	resp, err := http.Get(server.URL + "/api/checkins?user_id=u1&limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		UserID   string            `json:"user_id"`
		Checkins []journal.CheckIn `json:"checkins"`
		Count    int               `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "u1", payload.UserID)
	require.Equal(t, 2, payload.Count)
	require.Equal(t, "c", payload.Checkins[0].Summary)
	require.Equal(t, "b", payload.Checkins[1].Summary)
}

func TestCheckinsListDefaultsToGuest(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/checkins")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "guest", payload["user_id"])
	require.EqualValues(t, 0, payload["count"])
}

func TestCheckinsListRejectsBadLimit(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/checkins?limit=lots")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckinsWebSocketStreamsNewEntries(t *testing.T) {
	server, j := newTestServer(t, nil)
	ctx := context.Background()

	_, err := j.Append(ctx, journal.CheckIn{UserID: "u1", Kind: journal.KindRecommend, Summary: "old"})
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/checkins/ws?user_id=u1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp := postJSON(t, server.URL+"/api/recommend",
		`{"user_id":"u1","hour":15,"class_hours":2,"work_hours":2,"commute":1,"sleep":7,"stress":3,"mood":"happy"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var entry journal.CheckIn
	require.NoError(t, conn.ReadJSON(&entry))
	require.Equal(t, "u1", entry.UserID)
	require.Equal(t, journal.KindRecommend, entry.Kind)
	require.NotEqual(t, "old", entry.Summary)
}

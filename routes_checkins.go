package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"aura-cloud/journal"
)

type checkinHandler struct {
	journal *journal.Journal
}

func registerCheckinRoutes(r *mux.Router, j *journal.Journal) {
	h := &checkinHandler{journal: j}
	r.HandleFunc("/api/checkins", h.handleList).Methods("GET")
	r.HandleFunc("/api/checkins/ws", h.handleWebSocket).Methods("GET")
}

func (h *checkinHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		http.Error(w, "journal unavailable", http.StatusServiceUnavailable)
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := h.journal.Recent(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  journal.NormalizeUser(userID),
		"checkins": list,
		"count":    len(list),
	})
}

var checkinUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Output-only surface.
		return true
	},
}

func (h *checkinHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		http.Error(w, "journal unavailable", http.StatusServiceUnavailable)
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	lastID := strings.TrimSpace(r.URL.Query().Get("after"))

	if lastID == "" {
		id, err := h.journal.LastID(r.Context(), userID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		lastID = id
	}

	conn, err := checkinUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain client frames so a close from the peer ends the tail loop.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for ctx.Err() == nil {
		entries, nextID, err := h.journal.Tail(ctx, userID, lastID)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			log.Printf("checkin tail error for %s: %v", journal.NormalizeUser(userID), err)
			time.Sleep(300 * time.Millisecond)
			continue
		}
		lastID = nextID
		for _, entry := range entries {
			if err := conn.WriteJSON(entry); err != nil {
				return
			}
		}
	}
}

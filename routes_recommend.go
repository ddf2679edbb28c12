package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"aura-cloud/journal"
	"aura-cloud/wellness"
)

const missingInputMessage = "⚠️ Missing input data. Please complete all fields."

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type recommendResponse struct {
	Status         string   `json:"status"`
	Recommendation string   `json:"recommendation"`
	Focus          int      `json:"focus"`
	Tips           []string `json:"tips"`
	TimeOfDay      string   `json:"time_of_day"`
	CheckInID      string   `json:"checkin_id,omitempty"`
}

type recommendHandler struct {
	journal *journal.Journal

	mu  sync.Mutex
	rng *rand.Rand
}

func registerRecommendRoutes(r *mux.Router, j *journal.Journal, rng *rand.Rand) {
	h := &recommendHandler{journal: j, rng: rng}
	r.HandleFunc("/api/recommend", h.handleRecommend).Methods("POST")
}

func (h *recommendHandler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	correlationID := uuid.New().String()[:8]
	w.Header().Set("X-Correlation-ID", correlationID)
	defer r.Body.Close()

	var in wellness.RecommendInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Printf("[recommend:%s] JSON decode error: %v", correlationID, err)
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: missingInputMessage})
		return
	}
	if !in.Complete() {
		log.Printf("[recommend:%s] Validation error: missing fields", correlationID)
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: missingInputMessage})
		return
	}

	h.mu.Lock()
	rec := wellness.Recommend(in, h.rng)
	h.mu.Unlock()

	resp := recommendResponse{
		Status:         "success",
		Recommendation: rec.Text,
		Focus:          rec.Focus,
		Tips:           rec.Tips,
		TimeOfDay:      rec.TimeOfDay,
	}

	if h.journal != nil {
		saved, err := h.journal.Append(r.Context(), journal.CheckIn{
			UserID:  in.UserID,
			Kind:    journal.KindRecommend,
			Summary: rec.Text,
			Focus:   rec.Focus,
		})
		if err != nil {
			log.Printf("[recommend:%s] journal append failed: %v", correlationID, err)
		} else {
			resp.CheckInID = saved.ID
		}
	}

	log.Printf("[recommend:%s] Success: focus=%d tips=%d duration=%v",
		correlationID, rec.Focus, len(rec.Tips), time.Since(start))
	writeJSON(w, http.StatusOK, resp)
}

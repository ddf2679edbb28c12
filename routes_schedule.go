package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"google.golang.org/api/googleapi"

	"aura-cloud/gemini"
	"aura-cloud/journal"
	"aura-cloud/wellness"
)

const maxSummaryLen = 280

type scheduleRequest struct {
	UserID string `json:"user_id"`
	wellness.StudentStatus
}

type scheduleResponse struct {
	Status         string             `json:"status"`
	Recommendation string             `json:"recommendation"`
	Schedule       *wellness.Schedule `json:"schedule"`
	Raw            json.RawMessage    `json:"raw"`
	CheckInID      string             `json:"checkin_id,omitempty"`
}

type scheduleErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"`
}

type scheduleHandler struct {
	model   *gemini.Client
	journal *journal.Journal
}

func registerScheduleRoutes(r *mux.Router, model *gemini.Client, j *journal.Journal) {
	h := &scheduleHandler{model: model, journal: j}
	r.HandleFunc("/api/schedule", h.handleSchedule).Methods("POST")
}

func (h *scheduleHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.New().String()[:8]
	w.Header().Set("X-Correlation-ID", correlationID)
	defer r.Body.Close()

	if h.model == nil {
		writeJSON(w, http.StatusServiceUnavailable, scheduleErrorResponse{Status: "error", Message: gemini.ErrMissingAPIKey.Error()})
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, scheduleErrorResponse{Status: "error", Message: "invalid JSON body"})
		return
	}
	status := req.StudentStatus
	if status.IsZero() {
		status = wellness.MockStatus()
	}

	start := time.Now()
	resp, err := h.model.Do(r.Context(), wellness.BuildPrompt(status))
	if err != nil {
		log.Printf("[schedule:%s] model call failed: %v", correlationID, err)
		writeJSON(w, http.StatusBadGateway, scheduleErrorResponse{Status: "error", Message: "Gemini API failed"})
		return
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		log.Printf("[schedule:%s] upstream error: %v", correlationID, err)
		writeJSON(w, http.StatusBadGateway, scheduleErrorResponse{Status: "error", Message: err.Error()})
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, scheduleErrorResponse{Status: "error", Message: "read model response failed"})
		return
	}
	if !json.Valid(body) {
		log.Printf("[schedule:%s] unparseable model response in %v", correlationID, time.Since(start))
		writeJSON(w, http.StatusBadGateway, scheduleErrorResponse{Status: "error", Message: "Failed to parse response", Raw: string(body)})
		return
	}

	text := gemini.ExtractText(body)
	out := scheduleResponse{
		Status:         "success",
		Recommendation: text,
		Raw:            body,
	}
	if sched, err := wellness.ParseSchedule(text); err == nil {
		out.Schedule = &sched
	} else {
		log.Printf("[schedule:%s] model text is not a schedule: %v", correlationID, err)
	}

	if h.journal != nil {
		saved, err := h.journal.Append(r.Context(), journal.CheckIn{
			UserID:  req.UserID,
			Kind:    journal.KindSchedule,
			Summary: truncate(text, maxSummaryLen),
		})
		if err != nil {
			log.Printf("[schedule:%s] journal append failed: %v", correlationID, err)
		} else {
			out.CheckInID = saved.ID
		}
	}

	log.Printf("[schedule:%s] Success: schedule=%t duration=%v", correlationID, out.Schedule != nil, time.Since(start))
	writeJSON(w, http.StatusOK, out)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

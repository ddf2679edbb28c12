package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"aura-cloud/gemini"
	"aura-cloud/journal"
	"aura-cloud/streams"
)

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	Service string `json:"service"`
}

const (
	VERSION     = "0.1.0"
	serviceName = "aura-cloud"

	// Upper bound on how long a WebSocket feed keeps polling after its peer leaves.
	checkinTailBlock = time.Second
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.Println("Starting AURA Wellness Server...")

	ctx := context.Background()
	redisClient, err := streams.Init(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Printf("Connected to Redis (%s)", redisClient.Options().Addr)

	var model *gemini.Client
	if cfg, err := gemini.ConfigFromEnv(); err != nil {
		log.Printf("Schedule endpoint disabled: %v", err)
	} else if model, err = gemini.NewClient(cfg, &http.Client{Timeout: 60 * time.Second}); err != nil {
		log.Fatalf("Failed to init model client: %v", err)
	}

	r := newRouter(routerDeps{
		journal: newJournal(redisClient),
		model:   model,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	})

	port := getEnv("PORT", "5001")
	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + port,
		WriteTimeout: 90 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("AURA backend v%s running at http://localhost:%s", VERSION, port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func newJournal(client *redis.Client) *journal.Journal {
	return journal.New(client).WithBlock(checkinTailBlock)
}

type routerDeps struct {
	journal *journal.Journal
	model   *gemini.Client
	rng     *rand.Rand
}

func newRouter(deps routerDeps) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	registerRecommendRoutes(r, deps.journal, deps.rng)
	registerScheduleRoutes(r, deps.model, deps.journal)
	registerCheckinRoutes(r, deps.journal)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		Version: VERSION,
		Service: serviceName,
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "AURA Wellness Navigator API",
		"version": VERSION,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Helper function to get environment variable with default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

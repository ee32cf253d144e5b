package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/slithergg/tournament-backend/internal/game"
	"github.com/slithergg/tournament-backend/internal/hub"
)

// ListTournaments returns the public summaries of every tournament.
func ListTournaments(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []game.Summary, 1)
		h.Post(hub.List{Reply: reply})
		summaries := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summaries)
	}
}

// CreateTournament creates a tournament from a JSON config body. An
// existing id returns the existing record unchanged.
func CreateTournament(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg game.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reply := make(chan game.Summary, 1)
		h.Post(hub.Create{Cfg: cfg, Reply: reply})
		summary := <-reply

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(summary)
	}
}

// Metrics exposes the hub counters.
func Metrics(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.Metrics().Snapshot())
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

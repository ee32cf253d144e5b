package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/slithergg/tournament-backend/internal/hub"
	"github.com/slithergg/tournament-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	r.Get("/tournaments", ListTournaments(h))
	r.Post("/tournaments", CreateTournament(h))
	r.Get("/healthz", Healthz)
	r.Get("/metrics", Metrics(h))
	r.Get("/ws", ws.Handler(h, log))
	return r
}

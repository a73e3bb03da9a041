// Package api serves simulations over HTTP and a websocket ball stream.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xtding233/innings-sim/internal/match"
)

type handlers struct {
	svc *match.Service
	log *zap.Logger
}

func SetupRoutes(svc *match.Service, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/players", h.players)
	r.Get("/simulate", h.simulate)
	r.Get("/odds", h.odds)
	r.Get("/ws/simulate", h.stream)
	return r
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const historyRoute = "/api/projects/{remoteID}/history"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// blobs are encrypted, fetching needs no token
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get(historyRoute, h.getHistory)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireProjectScope, h.requireKeyHash)
		r.Post(historyRoute, h.pushHistory)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// internal/web/router.go
//
// Route table.
//
// Context
// -------
// Two public forms reach the card handler: the canonical
// "/{YYMMDD}/{slug}" pair and the bare legacy "/{slug}".  Both feed the
// same handler; the resolver decides what the path means and the handler
// redirects to the canonical form when the request arrived on an old
// alias or a mismatched date.
//
// Notes
// -----
// - The date pattern is anchored to exactly six digits so that a bare
//   numeric slug such as "250101x" still routes as a legacy slug.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the chi mux for the public surface.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/guestbook", h.listGuestbook)
		api.Post("/guestbook", h.addGuestbook)
		api.Delete("/guestbook/{entryID}", h.deleteGuestbook)
		api.Post("/rsvp", h.submitRSVP)
		api.Get("/rsvp/summary", h.rsvpSummary)
	})

	r.Get("/{date:[0-9]{6}}/{slug}", h.card)
	r.Get("/{slug}", h.card)

	return r
}

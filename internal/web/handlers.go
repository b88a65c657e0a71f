// internal/web/handlers.go
//
// HTTP handlers.
//
// Context
// -------
// The card handler is the heart of the service: parse the URL, resolve
// the record, redirect to the canonical URL when needed, and otherwise
// render the section stack with its computed backgrounds.  Every failure
// collapses to the same generic not-found page; the real reason only
// reaches logs and metrics.
//
// The /api handlers speak the same {success, data, error} envelope the
// admin proxy uses, so the section scripts share one response shape for
// both origins.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/roarc-kr/mcard/internal/analytics"
	"github.com/roarc-kr/mcard/internal/background"
	"github.com/roarc-kr/mcard/internal/guestbook"
	"github.com/roarc-kr/mcard/internal/head"
	"github.com/roarc-kr/mcard/internal/metrics"
	"github.com/roarc-kr/mcard/internal/resolver"
	"github.com/roarc-kr/mcard/internal/rsvp"
	"github.com/roarc-kr/mcard/internal/share"
	"github.com/roarc-kr/mcard/internal/view"
)

// Handler bundles the dependencies of the HTTP surface.  Guestbook,
// RSVP, and Analytics may be nil; the matching endpoints then answer
// 503 or no-op.
type Handler struct {
	Resolver  *resolver.Resolver
	Views     *view.Engine
	Guestbook *guestbook.Store
	RSVP      *rsvp.Store
	Analytics *analytics.Recorder
}

//
// ── Card page ───────────────────────────────────────────────────────
//

// sectionView is what the template sees for one section.
type sectionView struct {
	Name        string
	Background  string
	HasColor    bool
	ButtonColor string
}

func (h *Handler) card(w http.ResponseWriter, r *http.Request) {
	req := resolver.Request{
		DateSegment: chi.URLParam(r, "date"),
		Slug:        chi.URLParam(r, "slug"),
	}

	rec, err := h.Resolver.Resolve(r.Context(), req)
	if err != nil {
		reason := resolver.Reason(err)
		metrics.ResolveTotal.WithLabelValues(reason).Inc()
		if errors.Is(err, resolver.ErrUpstream) {
			zap.L().Error("record store unreachable",
				zap.String("slug", req.Slug), zap.Error(err))
		} else {
			zap.L().Info("card not found",
				zap.String("date", req.DateSegment),
				zap.String("slug", req.Slug),
				zap.String("reason", reason))
		}
		h.notFound(w)
		return
	}

	requested := resolver.URL{DateSegment: req.DateSegment, Slug: req.Slug}
	if !resolver.IsCanonical(requested, rec) {
		metrics.ResolveTotal.WithLabelValues("redirect").Inc()
		canonical := resolver.Canonical(rec, req.DateSegment)
		http.Redirect(w, r, canonical.Path(), http.StatusPermanentRedirect)
		return
	}
	metrics.ResolveTotal.WithLabelValues("found").Inc()

	order := rec.SectionOrder()
	colors := background.Assign(order, rec.GalleryMode())

	sections := make([]sectionView, 0, len(order))
	for _, s := range order {
		sv := sectionView{Name: s.WireName()}
		if c, ok := colors[s]; ok {
			sv.Background = string(c)
			sv.HasColor = true
			sv.ButtonColor = string(background.ButtonColorFor(c))
		}
		sections = append(sections, sv)
	}

	hb := head.New()
	hb.Meta(`<meta charset="utf-8">`)
	hb.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hb.Link(`<link rel="icon" href="/favicon.ico">`)
	share.For(rec).Apply(hb)

	data := map[string]any{
		"Head":     hb,
		"Record":   rec,
		"Sections": sections,
	}
	if err := h.Views.Render(w, http.StatusOK, "card.html", data); err != nil {
		zap.L().Error("card render failed",
			zap.String("page_id", rec.PageID), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	if h.Analytics != nil {
		h.Analytics.PageView(r, rec.PageID)
	}
}

func (h *Handler) notFound(w http.ResponseWriter) {
	hb := head.New()
	hb.Meta(`<meta charset="utf-8">`)
	share.For(nil).Apply(hb)

	if err := h.Views.Render(w, http.StatusNotFound, "notfound.html",
		map[string]any{"Head": hb}); err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
	}
}

//
// ── Guestbook API ───────────────────────────────────────────────────
//

func (h *Handler) listGuestbook(w http.ResponseWriter, r *http.Request) {
	if h.Guestbook == nil {
		writeError(w, http.StatusServiceUnavailable, "guestbook disabled")
		return
	}
	pageID := r.URL.Query().Get("pageId")
	if pageID == "" {
		writeError(w, http.StatusBadRequest, "pageId is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.Guestbook.List(r.Context(), pageID, limit, offset)
	if err != nil {
		zap.L().Error("guestbook list failed", zap.String("page_id", pageID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusOK, entries)
}

func (h *Handler) addGuestbook(w http.ResponseWriter, r *http.Request) {
	if h.Guestbook == nil {
		writeError(w, http.StatusServiceUnavailable, "guestbook disabled")
		return
	}
	var in guestbook.NewEntry
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	id, err := h.Guestbook.Add(r.Context(), in)
	if err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		zap.L().Error("guestbook add failed", zap.String("page_id", in.PageID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.GuestbookEntriesTotal.Inc()
	writeData(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) deleteGuestbook(w http.ResponseWriter, r *http.Request) {
	if h.Guestbook == nil {
		writeError(w, http.StatusServiceUnavailable, "guestbook disabled")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed entry id")
		return
	}

	var in struct {
		PageID   string `json:"page_id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	switch err := h.Guestbook.Delete(r.Context(), in.PageID, id, in.Password); {
	case err == nil:
		writeData(w, http.StatusOK, map[string]bool{"deleted": true})
	case errors.Is(err, guestbook.ErrNotFound):
		writeError(w, http.StatusNotFound, "entry not found")
	case errors.Is(err, guestbook.ErrWrongPassword):
		writeError(w, http.StatusForbidden, "wrong password")
	default:
		zap.L().Error("guestbook delete failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

//
// ── RSVP API ────────────────────────────────────────────────────────
//

func (h *Handler) submitRSVP(w http.ResponseWriter, r *http.Request) {
	if h.RSVP == nil {
		writeError(w, http.StatusServiceUnavailable, "rsvp disabled")
		return
	}
	var in rsvp.Submission
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	id, err := h.RSVP.Add(r.Context(), in)
	if err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		zap.L().Error("rsvp add failed", zap.String("page_id", in.PageID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.RSVPSubmissionsTotal.Inc()
	writeData(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) rsvpSummary(w http.ResponseWriter, r *http.Request) {
	if h.RSVP == nil {
		writeError(w, http.StatusServiceUnavailable, "rsvp disabled")
		return
	}
	pageID := r.URL.Query().Get("pageId")
	if pageID == "" {
		writeError(w, http.StatusBadRequest, "pageId is required")
		return
	}

	sum, err := h.RSVP.Summarize(r.Context(), pageID)
	if err != nil {
		zap.L().Error("rsvp summary failed", zap.String("page_id", pageID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusOK, sum)
}

//
// ── Envelope helpers ────────────────────────────────────────────────
//

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

// Package metrics holds the Prometheus instruments used across the
// server.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_resolve_total",
			Help: "Card URL resolutions by outcome (found, redirect, alias_stale, ...).",
		},
		[]string{"outcome"})

	RecordFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_fetch_total",
			Help: "Record-store lookups by kind (alias, page_id).",
		},
		[]string{"kind"})

	RecordFetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_fetch_errors_total",
			Help: "Record-store lookups that failed at the transport level.",
		},
		[]string{"kind"})

	RecordCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "record_cache_hits_total",
			Help: "Page-id lookups served from the in-process cache.",
		})

	PageViewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_views_total",
			Help: "Rendered card pages by device class.",
		},
		[]string{"device"})

	GuestbookEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guestbook_entries_total",
			Help: "Guestbook entries accepted.",
		})

	RSVPSubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rsvp_submissions_total",
			Help: "RSVP submissions accepted.",
		})
)

func init() {
	prometheus.MustRegister(
		ResolveTotal,
		RecordFetchTotal,
		RecordFetchErrorsTotal,
		RecordCacheHitsTotal,
		PageViewsTotal,
		GuestbookEntriesTotal,
		RSVPSubmissionsTotal,
	)
}

// internal/resolver/canonical.go
//
// Canonical URL computation.
//
// Every record has exactly one preferred URL: the alias when one exists
// (else the page id), under the segment derived from the wedding date.
// Any other valid URL for the same record redirects there, so shared
// links keep working after an alias change or a date fix.
package resolver

import (
	"net/url"

	"github.com/roarc-kr/mcard/internal/card"
	"github.com/roarc-kr/mcard/internal/dateseg"
)

// URL is a (date segment, slug) pair.  DateSegment may be empty for the
// legacy single-segment form.
type URL struct {
	DateSegment string
	Slug        string
}

// Path renders the URL as a request path, escaping the slug.
func (u URL) Path() string {
	if u.DateSegment == "" {
		return "/" + url.PathEscape(u.Slug)
	}
	return "/" + u.DateSegment + "/" + url.PathEscape(u.Slug)
}

// Canonical computes the preferred URL for a record.  When the record has
// no usable wedding date the requested segment is kept: there is nothing
// to correct it against.
func Canonical(rec *card.Record, requestedSegment string) URL {
	seg := requestedSegment
	if rec.WeddingDate != "" {
		if s, ok := dateseg.FormatISO(rec.WeddingDate); ok {
			seg = s
		}
	}
	return URL{DateSegment: seg, Slug: rec.Slug()}
}

// IsCanonical reports whether the requested URL already is the record's
// canonical one.
func IsCanonical(requested URL, rec *card.Record) bool {
	c := Canonical(rec, requested.DateSegment)
	return requested.Slug == c.Slug && requested.DateSegment == c.DateSegment
}

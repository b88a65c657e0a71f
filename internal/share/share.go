// internal/share/share.go
//
// Share metadata (Open Graph / Twitter cards).
//
// Context
// -------
// When a card link is pasted into a messenger, the preview comes from the
// page's meta tags.  Meta computes title, description, and image for one
// record with the service's fallback chain: the admin-entered share title
// and date line win, then a "groom ♥ bride" composite, then the brand
// defaults, so a half-filled record still previews respectably.
package share

import (
	"strings"

	"github.com/roarc-kr/mcard/internal/card"
	"github.com/roarc-kr/mcard/internal/head"
)

// Brand defaults used when the record offers nothing better.
const (
	DefaultTitle       = "roarc mobile card"
	DefaultDescription = "We make Romantic Art Creations"
	DefaultImageURL    = "https://cdn.roarc.kr/data/roarc_SEO_basic.jpg"
)

// Meta is the computed share metadata for one card.
type Meta struct {
	Title       string
	Description string
	ImageURL    string
}

// For computes share metadata for a record.  A nil record yields the
// brand defaults (used for the not-found page).
func For(rec *card.Record) Meta {
	m := Meta{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		ImageURL:    DefaultImageURL,
	}
	if rec == nil {
		return m
	}

	if t := strings.TrimSpace(rec.KkoTitle); t != "" {
		m.Title = t
	} else if title := coupleTitle(rec); title != "" {
		m.Title = title
	}

	if d := strings.TrimSpace(rec.KkoDate); d != "" {
		m.Description = d
	} else if rec.VenueName != "" {
		m.Description = strings.TrimSpace(rec.WeddingDate + " " + rec.VenueName)
	}

	if rec.MainPhotoURL != "" {
		m.ImageURL = rec.MainPhotoURL
	}
	return m
}

// Apply pushes the metadata into a head builder as OG and Twitter tags.
func (m Meta) Apply(b *head.Builder) {
	b.SetTitle(m.Title)
	b.NameContent("description", m.Description)

	b.Property("og:title", m.Title)
	b.Property("og:description", m.Description)
	b.Property("og:image", m.ImageURL)
	b.Property("og:type", "website")

	b.NameContent("twitter:card", "summary_large_image")
	b.NameContent("twitter:title", m.Title)
	b.NameContent("twitter:description", m.Description)
	b.NameContent("twitter:image", m.ImageURL)
}

// coupleTitle builds "groom ♥ bride 결혼합니다" when both names exist,
// falling back to the romanized names.
func coupleTitle(rec *card.Record) string {
	groom := rec.GroomName
	if groom == "" {
		groom = rec.GroomNameEn
	}
	bride := rec.BrideName
	if bride == "" {
		bride = rec.BrideNameEn
	}
	if groom == "" || bride == "" {
		return ""
	}
	return groom + " ♥ " + bride + " 결혼합니다"
}

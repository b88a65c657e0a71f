// internal/card/record.go
//
// Card record model.
//
// Context
// -------
// Record mirrors the JSON the admin proxy serves for one wedding page.
// The record store owns the data; this service only reads it.  PageID is
// the stable store-assigned identifier, UserURL is the optional
// human-chosen alias.  An alias can be reassigned at any time, so a
// record fetched by alias is only trusted when its own UserURL still
// matches the requested one (the resolver enforces this).
//
// GalleryMode and the section order feed the background assigner; the
// remaining fields are presentational payload passed through to the
// templates untouched.
package card

import "go.uber.org/zap"

// Gallery display modes.  ModeThumbnail is the default.
const (
	GallerySlide     = "slide"
	GalleryThumbnail = "thumbnail"
)

// Record is one wedding page as served by the record store.
type Record struct {
	ID             string   `json:"id"`
	PageID         string   `json:"page_id"`
	UserURL        string   `json:"user_url,omitempty"`
	GroomName      string   `json:"groom_name,omitempty"`
	BrideName      string   `json:"bride_name,omitempty"`
	GroomNameEn    string   `json:"groom_name_en,omitempty"`
	BrideNameEn    string   `json:"bride_name_en,omitempty"`
	WeddingDate    string   `json:"wedding_date,omitempty"` // YYYY-MM-DD
	WeddingTime    string   `json:"wedding_time,omitempty"`
	VenueName      string   `json:"venue_name,omitempty"`
	VenueAddress   string   `json:"venue_address,omitempty"`
	VenueLat       float64  `json:"venue_lat,omitempty"`
	VenueLng       float64  `json:"venue_lng,omitempty"`
	MainPhotoURL   string   `json:"main_photo_url,omitempty"`
	TagImage       string   `json:"tag_image,omitempty"`
	ComponentOrder []string `json:"component_order,omitempty"`
	GalleryType    string   `json:"gallery_type,omitempty"`
	Theme          string   `json:"theme,omitempty"`
	Type           string   `json:"type,omitempty"`
	KkoTitle       string   `json:"kko_title,omitempty"`
	KkoDate        string   `json:"kko_date,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// GalleryMode returns the record's gallery mode, defaulting to thumbnail.
func (r *Record) GalleryMode() string {
	if r.GalleryType == GallerySlide {
		return GallerySlide
	}
	return GalleryThumbnail
}

// Slug returns the preferred public identifier: the alias when present,
// else the page id.
func (r *Record) Slug() string {
	if r.UserURL != "" {
		return r.UserURL
	}
	return r.PageID
}

// SectionOrder decodes the stored component order.  Records without one
// get DefaultOrder.  Unknown wire names are logged and skipped so a stray
// admin entry cannot take the whole page down.
func (r *Record) SectionOrder() []Section {
	if len(r.ComponentOrder) == 0 {
		return Normalize(DefaultOrder())
	}

	order := make([]Section, 0, len(r.ComponentOrder))
	for _, wire := range r.ComponentOrder {
		s, err := ParseSection(wire)
		if err != nil {
			zap.L().Warn("component order entry skipped",
				zap.String("page_id", r.PageID),
				zap.String("name", wire))
			continue
		}
		order = append(order, s)
	}
	return Normalize(order)
}

// Normalize inserts derived sections at their fixed spots: the add-to-
// calendar button always sits immediately after the calendar.  Stored
// occurrences of derived sections are kept where they are (older records
// persisted the button explicitly).
func Normalize(order []Section) []Section {
	hasButton := false
	for _, s := range order {
		if s == SectionCalendarButton {
			hasButton = true
			break
		}
	}

	out := make([]Section, 0, len(order)+1)
	for _, s := range order {
		out = append(out, s)
		if s == SectionCalendar && !hasButton {
			out = append(out, SectionCalendarButton)
		}
	}
	return out
}

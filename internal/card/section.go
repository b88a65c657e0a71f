// internal/card/section.go
//
// Section catalog.
//
// Context
// -------
// A card page is composed from a fixed catalog of sections whose order is
// stored on the record as an array of wire names (the admin tool writes
// names such as "CalendarProxy" or "CommentBoard").  Everything downstream
// works with the Section enum; the wire names exist only at the storage
// boundary, in one bidirectional table, so an admin rename is a one-line
// change and an unknown name is reported instead of silently dropped.
//
// Notes
// -----
// • SectionCalendarButton is derived: it is never stored, it is inserted
//   right after the calendar during normalization.
// • Oxford commas, two spaces after periods.
package card

import "fmt"

// Section identifies one renderable block of the invitation page.
type Section int

const (
	SectionUnknown Section = iota
	SectionBGM
	SectionIntro      // fixed name/photo intro block
	SectionMainPhoto  // hero photo
	SectionInvitation // invitation text
	SectionCalendar
	SectionCalendarButton // derived "add to calendar" row
	SectionLocation
	SectionGallery
	SectionGuestbook
	SectionAccount
	SectionInfo
	SectionRSVP
	SectionContact // phone-contact row
	SectionShare
)

// sectionNames is the single source of truth for Section ↔ wire name.
// wireAliases below is derived from it at init time.
var sectionNames = map[Section]string{
	SectionBGM:            "bgm",
	SectionIntro:          "NameSection",
	SectionMainPhoto:      "PhotoSectionProxy",
	SectionInvitation:     "InviteName",
	SectionCalendar:       "CalendarProxy",
	SectionCalendarButton: "CalendarAddBtn",
	SectionLocation:       "LocationUnified",
	SectionGallery:        "UnifiedGalleryComplete",
	SectionGuestbook:      "CommentBoard",
	SectionAccount:        "Account",
	SectionInfo:           "Info",
	SectionRSVP:           "RSVPClient",
	SectionContact:        "WeddingContact",
	SectionShare:          "KakaoShare",
}

// extraAliases covers historical wire names still present on old records.
var extraAliases = map[string]Section{
	"MainSection": SectionIntro,
}

var wireAliases map[string]Section

func init() {
	wireAliases = make(map[string]Section, len(sectionNames)+len(extraAliases))
	for s, name := range sectionNames {
		wireAliases[name] = s
	}
	for name, s := range extraAliases {
		wireAliases[name] = s
	}
}

// WireName returns the stored name for s, or "unknown".
func (s Section) WireName() string {
	if n, ok := sectionNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Section) String() string { return s.WireName() }

// ParseSection maps a stored wire name to its Section.  Unknown names are
// an error so callers can log exactly what the admin tool sent.
func ParseSection(wire string) (Section, error) {
	if s, ok := wireAliases[wire]; ok {
		return s, nil
	}
	return SectionUnknown, fmt.Errorf("unknown section name %q", wire)
}

// DefaultOrder is used when a record carries no component_order.  It is
// the layout the admin tool seeds for new cards.
func DefaultOrder() []Section {
	return []Section{
		SectionBGM,
		SectionIntro,
		SectionMainPhoto,
		SectionInvitation,
		SectionCalendar,
		SectionLocation,
		SectionGallery,
		SectionGuestbook,
		SectionAccount,
		SectionInfo,
		SectionRSVP,
		SectionShare,
	}
}

// internal/background/assign.go
//
// Background assignment for the section stack.
//
// Context
// -------
// Given the normalized section order and the gallery mode, Assign computes
// one background per colorable section.  The pass is a pure pipeline:
// classify each section, build its candidate set by filtering the palette
// against the active constraints, pick preferred-first, then run a second
// pass that finalizes the slide-mode gallery (its neighbor's color may
// not exist yet when the gallery is visited).
//
// Rules
// -----
//  1. Fixed sections (bgm, intro, invitation text, contact row) and
//     derived sections (add-to-calendar button) take no background.
//  2. The location section is always pure white; its map tiles carry
//     their own grey button.
//  3. Gallery, slide mode: same color as the next section, no seam.
//     Gallery, thumbnail mode: never white, distinct from both neighbors
//     by at least MinNeighborContrast.
//  4. Info hosts white inner cards, so white is forbidden.
//  5. Everything else must clear MinButtonContrast against its registered
//     button tone, and may not be white directly under the invitation
//     block (keeps a visible seam below the intro).
//
// Determinism: pure function of (order, mode).  No clock, no randomness,
// and map iteration never decides anything — only the order slice does.
// Server and client must agree on these colors, so re-running on equal
// input must be byte-identical.
package background

import "github.com/roarc-kr/mcard/internal/card"

// buttonColors registers the fixed button tone rendered inside each
// section, used for the background-vs-button contrast rule.
var buttonColors = map[card.Section]Color{
	card.SectionCalendar:  Gray300,
	card.SectionAccount:   "#ebebec",
	card.SectionRSVP:      Gray300,
	card.SectionGuestbook: Gray150,
	card.SectionShare:     Gray300,
}

// preferredColors is tried before the filtered palette scan.  A preferred
// color is honored only when it satisfies every active constraint.
var preferredColors = map[card.Section]Color{
	card.SectionInfo:    Gray200,
	card.SectionGallery: Gray100, // thumbnail mode only
}

type class int

const (
	classExcluded class = iota
	classPinnedWhite
	classGallery
	classInfo
	classGeneral
)

func classify(s card.Section) class {
	switch s {
	case card.SectionBGM, card.SectionIntro, card.SectionInvitation,
		card.SectionContact, card.SectionCalendarButton:
		return classExcluded
	case card.SectionLocation:
		return classPinnedWhite
	case card.SectionGallery:
		return classGallery
	case card.SectionInfo:
		return classInfo
	default:
		return classGeneral
	}
}

// Assign maps every colorable section in order to a palette color.  The
// result holds the final colors: the slide-gallery post-pass has already
// run.  Empty input yields an empty, non-nil map.
func Assign(order []card.Section, galleryMode string) map[card.Section]Color {
	out := make(map[card.Section]Color, len(order))

	for i, s := range order {
		var prev, next card.Section
		if i > 0 {
			prev = order[i-1]
		}
		if i < len(order)-1 {
			next = order[i+1]
		}

		switch classify(s) {
		case classExcluded:
			continue

		case classPinnedWhite:
			out[s] = White

		case classGallery:
			if galleryMode == card.GallerySlide {
				// Match the following section.  When that color is not
				// known yet the post-pass fixes it; white is only a
				// placeholder here.
				if c, ok := out[next]; ok {
					out[s] = c
				} else {
					out[s] = White
				}
				continue
			}
			out[s] = pick(s, thumbnailCandidates(out, prev, next))

		case classInfo:
			out[s] = pick(s, infoCandidates(out, prev, next))

		case classGeneral:
			out[s] = pick(s, generalCandidates(s, out, prev, next))
		}
	}

	finalizeSlideGallery(order, galleryMode, out)
	return out
}

// pick returns the section's preferred color when it survived filtering,
// else the first filtered candidate, else the section's fixed fallback.
func pick(s card.Section, candidates []Color) Color {
	if want, ok := preferredColors[s]; ok {
		for _, c := range candidates {
			if c == want {
				return want
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return fallbackFor(s)
}

// fallbackFor is the fixed non-white default used when every palette
// entry is excluded.  A slightly wrong grey beats a broken page.
func fallbackFor(s card.Section) Color {
	switch s {
	case card.SectionGallery:
		return Gray50
	case card.SectionInfo:
		return Gray200
	default:
		return Gray100
	}
}

func thumbnailCandidates(assigned map[card.Section]Color, prev, next card.Section) []Color {
	prevColor, hasPrev := assigned[prev]
	nextColor, hasNext := assigned[next]

	var out []Color
	for _, c := range Assignable {
		if c == White {
			continue
		}
		if hasPrev && (c == prevColor || Contrast(c, prevColor) < MinNeighborContrast) {
			continue
		}
		if hasNext && (c == nextColor || Contrast(c, nextColor) < MinNeighborContrast) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func infoCandidates(assigned map[card.Section]Color, prev, next card.Section) []Color {
	prevColor, hasPrev := assigned[prev]
	nextColor, hasNext := assigned[next]

	var out []Color
	for _, c := range Assignable {
		if c == White {
			continue
		}
		if hasPrev && c == prevColor {
			continue
		}
		if hasNext && c == nextColor {
			continue
		}
		out = append(out, c)
	}
	return out
}

func generalCandidates(s card.Section, assigned map[card.Section]Color, prev, next card.Section) []Color {
	prevColor, hasPrev := assigned[prev]
	nextColor, hasNext := assigned[next]
	buttonColor, hasButton := buttonColors[s]

	// Directly under the invitation block the first content section may
	// not be white, so the intro visibly ends.
	afterInvite := prev == card.SectionIntro ||
		prev == card.SectionInvitation || prev == card.SectionBGM

	var out []Color
	for _, c := range Assignable {
		if afterInvite && c == White {
			continue
		}
		if hasPrev && c == prevColor {
			continue
		}
		if hasNext && c == nextColor {
			continue
		}
		if hasButton && Contrast(c, buttonColor) < MinButtonContrast {
			continue
		}
		out = append(out, c)
	}
	return out
}

// finalizeSlideGallery re-pins the slide-mode gallery to its next
// colorable neighbor's final color.  A gallery with nothing colorable
// after it stays white.
func finalizeSlideGallery(order []card.Section, galleryMode string, assigned map[card.Section]Color) {
	if galleryMode != card.GallerySlide {
		return
	}
	for i, s := range order {
		if s != card.SectionGallery {
			continue
		}
		assigned[s] = White
		for _, n := range order[i+1:] {
			if c, ok := assigned[n]; ok {
				assigned[s] = c
				break
			}
		}
		return
	}
}

// internal/background/assign_test.go
//
// Tests for background assignment.
//
// Coverage
// --------
//   • Determinism: identical input → identical mapping.
//   • Exclusion of fixed and derived sections.
//   • Pinned white for the location section in every mode.
//   • Slide gallery matches the final color of the next colorable
//     section, and falls back to white when it is last.
//   • Thumbnail gallery: never white, clears the neighbor threshold.
//   • Info: never white, preferred grey honored.
//   • Button-contrast and post-invitation white ban for the general
//     sections, with the full default layout exercised end to end.
package background

import (
	"reflect"
	"testing"

	"github.com/roarc-kr/mcard/internal/card"
)

func TestAssign_Empty(t *testing.T) {
	got := Assign(nil, card.GalleryThumbnail)
	if got == nil || len(got) != 0 {
		t.Fatalf("Assign(nil) = %v, want empty map", got)
	}
}

func TestAssign_Deterministic(t *testing.T) {
	order := card.Normalize(card.DefaultOrder())
	a := Assign(order, card.GalleryThumbnail)
	b := Assign(order, card.GalleryThumbnail)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs differ:\n%v\n%v", a, b)
	}
}

func TestAssign_ExcludedSections(t *testing.T) {
	order := card.Normalize(card.DefaultOrder())
	got := Assign(order, card.GalleryThumbnail)

	for _, s := range []card.Section{
		card.SectionBGM, card.SectionIntro, card.SectionInvitation,
		card.SectionContact, card.SectionCalendarButton,
	} {
		if c, ok := got[s]; ok {
			t.Errorf("excluded section %v got color %s", s, c)
		}
	}
}

func TestAssign_LocationPinnedWhite(t *testing.T) {
	orders := [][]card.Section{
		{card.SectionGallery, card.SectionLocation, card.SectionInfo},
		{card.SectionLocation},
		card.Normalize(card.DefaultOrder()),
	}
	for _, order := range orders {
		for _, mode := range []string{card.GallerySlide, card.GalleryThumbnail} {
			got := Assign(order, mode)
			if got[card.SectionLocation] != White {
				t.Errorf("location = %s in %v/%s, want white",
					got[card.SectionLocation], order, mode)
			}
		}
	}
}

func TestAssign_SlideGalleryMatchesNext(t *testing.T) {
	order := []card.Section{
		card.SectionIntro, card.SectionGallery,
		card.SectionInfo, card.SectionGuestbook,
	}
	got := Assign(order, card.GallerySlide)

	if got[card.SectionInfo] != Gray200 {
		t.Fatalf("info = %s, want %s", got[card.SectionInfo], Gray200)
	}
	if got[card.SectionGallery] != got[card.SectionInfo] {
		t.Errorf("gallery = %s, info = %s: slide mode must match",
			got[card.SectionGallery], got[card.SectionInfo])
	}
}

func TestAssign_SlideGalleryLastIsWhite(t *testing.T) {
	order := []card.Section{card.SectionInfo, card.SectionGallery}
	got := Assign(order, card.GallerySlide)
	if got[card.SectionGallery] != White {
		t.Errorf("trailing slide gallery = %s, want white", got[card.SectionGallery])
	}
}

func TestAssign_ThumbnailGallery(t *testing.T) {
	order := []card.Section{
		card.SectionLocation, card.SectionGallery, card.SectionGuestbook,
	}
	got := Assign(order, card.GalleryThumbnail)

	g := got[card.SectionGallery]
	if g == White {
		t.Fatal("thumbnail gallery must not be white")
	}
	// Preferred grey survives filtering here: against white it clears
	// the neighbor threshold.
	if g != Gray100 {
		t.Errorf("gallery = %s, want preferred %s", g, Gray100)
	}
	if Contrast(g, got[card.SectionLocation]) < MinNeighborContrast {
		t.Errorf("gallery %s too close to location %s", g, got[card.SectionLocation])
	}
}

func TestAssign_InfoNeverWhite(t *testing.T) {
	// Surround info with every grey in turn; it must always land on a
	// non-white color distinct from the assigned neighbor.
	for _, prev := range []card.Section{card.SectionLocation, card.SectionAccount} {
		order := []card.Section{prev, card.SectionInfo}
		got := Assign(order, card.GalleryThumbnail)
		c := got[card.SectionInfo]
		if c == White {
			t.Fatalf("info assigned white after %v", prev)
		}
		if c == got[prev] {
			t.Errorf("info %s equals neighbor %s", c, got[prev])
		}
	}
}

func TestAssign_NoWhiteDirectlyUnderInvitation(t *testing.T) {
	order := []card.Section{card.SectionInvitation, card.SectionCalendar}
	got := Assign(order, card.GalleryThumbnail)
	if got[card.SectionCalendar] == White {
		t.Error("first section under the invitation block must not be white")
	}
}

// TestAssign_DefaultLayout walks the full default order and checks the
// layout-wide invariants: palette membership, adjacency, and button
// contrast.  The exact colors are pinned so an accidental reordering of
// the candidate scan shows up as a diff, not a silent visual change.
func TestAssign_DefaultLayout(t *testing.T) {
	order := card.Normalize(card.DefaultOrder())
	got := Assign(order, card.GalleryThumbnail)

	want := map[card.Section]Color{
		card.SectionMainPhoto: Gray50,
		card.SectionCalendar:  Gray50,
		card.SectionLocation:  White,
		card.SectionGallery:   Gray100,
		card.SectionGuestbook: White,
		card.SectionAccount:   Gray50,
		card.SectionInfo:      Gray200,
		card.SectionRSVP:      White,
		card.SectionShare:     Gray50,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("default layout:\ngot  %v\nwant %v", got, want)
	}

	inPalette := func(c Color) bool {
		for _, p := range Assignable {
			if p == c {
				return true
			}
		}
		return false
	}

	var prevColor Color
	var havePrev bool
	for _, s := range order {
		c, ok := got[s]
		if !ok {
			havePrev = false
			continue
		}
		if !inPalette(c) {
			t.Errorf("%v assigned %s, not in palette", s, c)
		}
		if havePrev && c == prevColor {
			t.Errorf("adjacent colorable sections share %s at %v", c, s)
		}
		if btn, ok := buttonColors[s]; ok && Contrast(c, btn) < MinButtonContrast {
			t.Errorf("%v background %s too close to button %s", s, c, btn)
		}
		prevColor, havePrev = c, true
	}
}

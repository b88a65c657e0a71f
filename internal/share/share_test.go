// internal/share/share_test.go
package share

import (
	"strings"
	"testing"

	"github.com/roarc-kr/mcard/internal/card"
	"github.com/roarc-kr/mcard/internal/head"
)

func TestFor_NilRecordUsesDefaults(t *testing.T) {
	m := For(nil)
	if m.Title != DefaultTitle || m.Description != DefaultDescription || m.ImageURL != DefaultImageURL {
		t.Errorf("defaults not applied: %+v", m)
	}
}

func TestFor_AdminFieldsWin(t *testing.T) {
	m := For(&card.Record{
		KkoTitle:     "  민준 & 서윤  ",
		KkoDate:      "2026.12.21 SUN 2PM",
		GroomName:    "민준",
		BrideName:    "서윤",
		MainPhotoURL: "https://cdn.roarc.kr/p/main.jpg",
	})
	if m.Title != "민준 & 서윤" {
		t.Errorf("title = %q, want trimmed kko_title", m.Title)
	}
	if m.Description != "2026.12.21 SUN 2PM" {
		t.Errorf("description = %q", m.Description)
	}
	if m.ImageURL != "https://cdn.roarc.kr/p/main.jpg" {
		t.Errorf("image = %q", m.ImageURL)
	}
}

func TestFor_CoupleComposite(t *testing.T) {
	m := For(&card.Record{
		GroomName:   "민준",
		BrideName:   "서윤",
		WeddingDate: "2026-12-21",
		VenueName:   "roarc wedding",
	})
	if !strings.Contains(m.Title, "민준") || !strings.Contains(m.Title, "서윤") {
		t.Errorf("composite title = %q", m.Title)
	}
	if m.Description != "2026-12-21 roarc wedding" {
		t.Errorf("description = %q", m.Description)
	}
}

func TestFor_EnglishNameFallback(t *testing.T) {
	m := For(&card.Record{GroomNameEn: "Minjun", BrideName: "서윤"})
	if !strings.Contains(m.Title, "Minjun") {
		t.Errorf("title = %q, want romanized groom name", m.Title)
	}
}

func TestApply_EmitsOGTags(t *testing.T) {
	b := head.New()
	For(&card.Record{KkoTitle: "t", KkoDate: "d"}).Apply(b)

	if b.Title() != "t" {
		t.Errorf("head title = %q", b.Title())
	}
	metas := string(b.Metas())
	for _, want := range []string{`og:title`, `og:image`, `twitter:card`, `content="t"`} {
		if !strings.Contains(metas, want) {
			t.Errorf("metas missing %q:\n%s", want, metas)
		}
	}
}

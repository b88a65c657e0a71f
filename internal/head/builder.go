// internal/head/builder.go
//
// The Builder collects everything that should appear inside a page's
// <head> element.  It is scoped to a single request (or render call).
// Handlers push tags into the builder, then the page template decides
// where to emit each slice.
//
// Features
// --------
//   - SetTitle           – single <title> tag (last call wins).
//   - Meta, Link, Script – arbitrary tags with deduplication.
//   - Property           – convenience for <meta property=… content=…>
//     pairs (Open Graph, Twitter cards).
//   - Render helpers     – concat methods that return template.HTML.
package head

import (
	"html/template"
	"strings"
	"sync"
)

// Builder is not safe for concurrent writes from multiple goroutines,
// but typical use is one goroutine per request, so a simple mutex is
// enough.
type Builder struct {
	mu sync.Mutex

	title string

	metas   []string
	links   []string
	scripts []string

	// seen tracks tags for deduplication.
	seen map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// ------------------------------------------------------------------
// Single-value helper
// ------------------------------------------------------------------

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// Title returns the current title.
func (b *Builder) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

// ------------------------------------------------------------------
// Multi-value helpers
// ------------------------------------------------------------------

// Meta appends a raw <meta …> tag once.
func (b *Builder) Meta(tag string) { b.append(&b.metas, tag) }

// Link appends a raw <link …> tag once.
func (b *Builder) Link(tag string) { b.append(&b.links, tag) }

// Script appends a raw <script …> tag once.
func (b *Builder) Script(tag string) { b.append(&b.scripts, tag) }

// Property appends <meta property="…" content="…"> with escaping, the
// form Open Graph and Twitter cards use.
func (b *Builder) Property(property, content string) {
	b.Meta(`<meta property="` + template.HTMLEscapeString(property) +
		`" content="` + template.HTMLEscapeString(content) + `">`)
}

// NameContent appends <meta name="…" content="…"> with escaping.
func (b *Builder) NameContent(name, content string) {
	b.Meta(`<meta name="` + template.HTMLEscapeString(name) +
		`" content="` + template.HTMLEscapeString(content) + `">`)
}

func (b *Builder) append(dst *[]string, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[tag]; dup {
		return
	}
	b.seen[tag] = struct{}{}
	*dst = append(*dst, tag)
}

// ------------------------------------------------------------------
// Render helpers (called from templates)
// ------------------------------------------------------------------

func (b *Builder) Metas() template.HTML   { return b.join(b.metas) }
func (b *Builder) Links() template.HTML   { return b.join(b.links) }
func (b *Builder) Scripts() template.HTML { return b.join(b.scripts) }

func (b *Builder) join(tags []string) template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return template.HTML(strings.Join(tags, "\n"))
}

// internal/view/render.go
//
// Central view engine: template parsing, func-map injection, and an LRU
// of parsed *template.Template sets.
//
// Public helpers
// --------------
//   - Render         – write rendered HTML to an http.ResponseWriter.
//   - RenderToString – return template.HTML (emails, previews).
//
// All templates under the engine's directory are parsed as one set, so
// sub-templates ({{ template "section" . }}) work out of the box.
// Executed templates are addressed by file base name (e.g. "card.html").
// Parsed sets are cached; the cache key is the directory, which leaves
// room for per-theme directories later without an API change.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/roarc-kr/mcard/internal/cache"
)

// Engine renders page templates from one directory.
type Engine struct {
	dir string

	mu  sync.Mutex
	lru *cache.LRU[string, *template.Template]
}

// New returns an Engine rooted at dir.
func New(dir string) *Engine {
	return &Engine{
		dir: dir,
		lru: cache.New[string, *template.Template](8),
	}
}

// Render executes the named template into w with a text/html content
// type.  The caller should treat an error as already-unrecoverable: part
// of the body may have been written.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data any) error {
	tpl, err := e.set()
	if err != nil {
		return err
	}

	// Render to a buffer first so template failures produce a clean 500
	// instead of a half page.
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(buf.Bytes())
	return err
}

// RenderToString executes the named template and returns the markup.
func (e *Engine) RenderToString(name string, data any) (template.HTML, error) {
	tpl, err := e.set()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// set returns the parsed template set for the engine directory, parsing
// it on first use.
func (e *Engine) set() (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.lru.Get(e.dir); ok {
		return tpl, nil
	}

	tpl, err := template.ParseGlob(filepath.Join(e.dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates in %s: %w", e.dir, err)
	}
	e.lru.Add(e.dir, tpl)
	return tpl, nil
}

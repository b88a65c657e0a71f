// internal/guestbook/store.go
//
// Guestbook storage.
//
// Context
// -------
// Every card may carry a comment board where guests leave short
// congratulations.  Entries are scoped by page id and protected by a
// per-entry deletion password chosen by the guest (the service has no
// guest accounts), stored as a bcrypt hash.
//
// Schema
// ------
//	guestbook_entry (
//	    id            BIGINT AUTO_INCREMENT PRIMARY KEY,
//	    page_id       VARCHAR(64)  NOT NULL,
//	    author        VARCHAR(40)  NOT NULL,
//	    body          VARCHAR(500) NOT NULL,
//	    password_hash VARCHAR(60)  NOT NULL,
//	    created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    KEY idx_page (page_id, created_at)
//	)
package guestbook

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound is returned when the entry does not exist under the
	// given page.
	ErrNotFound = errors.New("guestbook entry not found")
	// ErrWrongPassword is returned when the deletion password does not
	// match.  Callers map it to 403, never to 404, so guessing ids
	// reveals nothing extra.
	ErrWrongPassword = errors.New("wrong deletion password")
)

var validate = validator.New()

// Entry is one stored comment.
type Entry struct {
	ID           int64     `db:"id"            json:"id"`
	PageID       string    `db:"page_id"       json:"page_id"`
	Author       string    `db:"author"        json:"author"`
	Body         string    `db:"body"          json:"body"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

// NewEntry is the validated input for Add.
type NewEntry struct {
	PageID   string `json:"page_id"  validate:"required,max=64"`
	Author   string `json:"author"   validate:"required,max=40"`
	Body     string `json:"body"     validate:"required,max=500"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

// Store wraps the guestbook table.
type Store struct {
	db *sqlx.DB
}

// NewStore returns a Store over db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// List returns entries for one page, newest first.
func (s *Store) List(ctx context.Context, pageID string, limit, offset int) ([]Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	const q = `
        SELECT id, page_id, author, body, password_hash, created_at
        FROM   guestbook_entry
        WHERE  page_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT  ? OFFSET ?`
	entries := make([]Entry, 0, limit)
	if err := s.db.SelectContext(ctx, &entries, q, pageID, limit, offset); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add validates, hashes the deletion password, and inserts.  Returns the
// new entry id.
func (s *Store) Add(ctx context.Context, in NewEntry) (int64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	const q = `
        INSERT INTO guestbook_entry (page_id, author, body, password_hash)
        VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, in.PageID, in.Author, in.Body, string(hash))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes one entry after checking the deletion password.
func (s *Store) Delete(ctx context.Context, pageID string, id int64, password string) error {
	const sel = `
        SELECT password_hash FROM guestbook_entry
        WHERE  id = ? AND page_id = ?`
	var hash string
	if err := s.db.GetContext(ctx, &hash, sel, id, pageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrWrongPassword
	}

	const del = `DELETE FROM guestbook_entry WHERE id = ? AND page_id = ?`
	_, err := s.db.ExecContext(ctx, del, id, pageID)
	return err
}

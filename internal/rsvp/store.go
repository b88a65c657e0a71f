// internal/rsvp/store.go
//
// RSVP storage.
//
// Context
// -------
// Guests announce attendance through the card's RSVP section.  A
// submission records which side the guest belongs to, whether they
// attend, how many companions they bring, and whether they want the
// meal.  The couple reads the per-page summary in the admin tool.
//
// Schema
// ------
//	rsvp_response (
//	    id         BIGINT AUTO_INCREMENT PRIMARY KEY,
//	    page_id    VARCHAR(64)  NOT NULL,
//	    guest_name VARCHAR(40)  NOT NULL,
//	    side       ENUM('groom','bride') NOT NULL,
//	    attending  TINYINT(1)   NOT NULL,
//	    companions INT          NOT NULL DEFAULT 0,
//	    meal       TINYINT(1)   NOT NULL DEFAULT 0,
//	    message    VARCHAR(300) NOT NULL DEFAULT '',
//	    created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    KEY idx_page (page_id, created_at)
//	)
package rsvp

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

// Guest sides.
const (
	SideGroom = "groom"
	SideBride = "bride"
)

var validate = validator.New()

// Response is one stored submission.
type Response struct {
	ID         int64     `db:"id"         json:"id"`
	PageID     string    `db:"page_id"    json:"page_id"`
	GuestName  string    `db:"guest_name" json:"guest_name"`
	Side       string    `db:"side"       json:"side"`
	Attending  bool      `db:"attending"  json:"attending"`
	Companions int       `db:"companions" json:"companions"`
	Meal       bool      `db:"meal"       json:"meal"`
	Message    string    `db:"message"    json:"message"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Submission is the validated input for Add.
type Submission struct {
	PageID     string `json:"page_id"    validate:"required,max=64"`
	GuestName  string `json:"guest_name" validate:"required,max=40"`
	Side       string `json:"side"       validate:"required,oneof=groom bride"`
	Attending  bool   `json:"attending"`
	Companions int    `json:"companions" validate:"gte=0,lte=10"`
	Meal       bool   `json:"meal"`
	Message    string `json:"message"    validate:"max=300"`
}

// Summary aggregates one page's responses.
type Summary struct {
	Attending  int `db:"attending"  json:"attending"`
	Declined   int `db:"declined"   json:"declined"`
	Companions int `db:"companions" json:"companions"`
	Meals      int `db:"meals"      json:"meals"`
}

// Store wraps the rsvp_response table.
type Store struct {
	db *sqlx.DB
}

// NewStore returns a Store over db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Add validates and inserts one submission.
func (s *Store) Add(ctx context.Context, in Submission) (int64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, err
	}

	const q = `
        INSERT INTO rsvp_response
               (page_id, guest_name, side, attending, companions, meal, message)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		in.PageID, in.GuestName, in.Side, in.Attending, in.Companions, in.Meal, in.Message)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Summarize returns headcounts for one page.  Companion and meal counts
// only include attending guests.
func (s *Store) Summarize(ctx context.Context, pageID string) (*Summary, error) {
	const q = `
        SELECT COALESCE(SUM(attending), 0)                        AS attending,
               COALESCE(SUM(1 - attending), 0)                    AS declined,
               COALESCE(SUM(attending * (1 + companions)), 0)     AS companions,
               COALESCE(SUM(attending * meal * (1 + companions)), 0) AS meals
        FROM   rsvp_response
        WHERE  page_id = ?`
	var sum Summary
	if err := s.db.GetContext(ctx, &sum, q, pageID); err != nil {
		return nil, err
	}
	return &sum, nil
}

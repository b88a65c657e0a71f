// internal/resolver/resolver.go
//
// Route resolution: (date segment, slug) → card record.
//
// Context
// -------
// A card URL is /{YYMMDD}/{slug} or the legacy /{slug}.  The slug is
// either the human-chosen alias (user_url) or the store-assigned page id,
// and both historical URL shapes must keep working.  Resolution runs an
// explicit ordered chain of named strategies, each a small function that
// either decides the outcome or passes to the next one:
//
//   1. alias  – look up by user_url, date segment forwarded so the store
//      can validate it server side.  A hit whose user_url no longer
//      equals the requested slug is a reused alias and is a definitive
//      not-found, never a fall-through (a stale alias must not leak that
//      it once existed).
//   2. page-id – look up by page_id.  A hit whose wedding date does not
//      round-trip to the requested segment is a definitive not-found.
//
// Failure semantics are fail-closed: transport errors against the record
// store resolve to the same user-visible not-found as a truly absent
// record.  The sentinel errors below stay distinguishable through
// errors.Is so callers can log and count the real cause even though the
// response does not change.
//
// Notes
// -----
// • Pure orchestration, no I/O of its own; the Store does the fetching.
// • Oxford commas, two spaces after periods.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roarc-kr/mcard/internal/card"
	"github.com/roarc-kr/mcard/internal/dateseg"
)

// All resolution failures unwrap to ErrNotFound; the specific sentinels
// exist for logging and metrics only.
var (
	ErrNotFound           = errors.New("card not found")
	ErrInvalidDateSegment = fmt.Errorf("invalid date segment: %w", ErrNotFound)
	ErrAliasStale         = fmt.Errorf("alias reassigned: %w", ErrNotFound)
	ErrDateMismatch       = fmt.Errorf("date segment mismatch: %w", ErrNotFound)
	ErrUpstream           = fmt.Errorf("record store unavailable: %w", ErrNotFound)
)

// Reason folds a resolution error to a short label for logs and metric
// label values.
func Reason(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, ErrInvalidDateSegment):
		return "invalid_date"
	case errors.Is(err, ErrAliasStale):
		return "alias_stale"
	case errors.Is(err, ErrDateMismatch):
		return "date_mismatch"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	default:
		return "not_found"
	}
}

// Store is the record-store surface the resolver needs.  Both lookups
// return (nil, nil) when the store answered and the record is absent;
// a non-nil error means the store could not answer at all.
type Store interface {
	ByAlias(ctx context.Context, alias, dateSegment string) (*card.Record, error)
	ByPageID(ctx context.Context, pageID string) (*card.Record, error)
}

// Request is one incoming URL.  DateSegment is empty for the
// single-segment legacy form, which skips all date validation.
type Request struct {
	DateSegment string
	Slug        string
}

// strategy decides an outcome or passes.  decided == false means "try
// the next one"; a non-nil err alongside it records that the strategy
// failed rather than missed, which matters if nothing later decides.
type strategy struct {
	name string
	run  func(ctx context.Context, req Request) (rec *card.Record, err error, decided bool)
}

// Resolver runs the strategy chain against a Store.
type Resolver struct {
	store Store
	chain []strategy
}

// New builds a Resolver with the standard alias-then-page-id chain.
func New(store Store) *Resolver {
	r := &Resolver{store: store}
	r.chain = []strategy{
		{name: "alias", run: r.byAlias},
		{name: "page_id", run: r.byPageID},
	}
	return r
}

// Resolve maps a request to its record.  Every failure satisfies
// errors.Is(err, ErrNotFound).
func (r *Resolver) Resolve(ctx context.Context, req Request) (*card.Record, error) {
	if req.Slug == "" {
		return nil, ErrNotFound
	}
	if req.DateSegment != "" {
		if _, ok := dateseg.Parse(req.DateSegment); !ok {
			return nil, ErrInvalidDateSegment
		}
	}

	var failed error
	for _, st := range r.chain {
		rec, err, decided := st.run(ctx, req)
		if decided {
			if err != nil {
				zap.L().Debug("resolution decided",
					zap.String("strategy", st.name),
					zap.String("slug", req.Slug),
					zap.String("reason", Reason(err)))
			}
			return rec, err
		}
		if err != nil {
			failed = err
		}
	}
	if failed != nil {
		// A strategy was down and nothing else found the record; count
		// this against the store, not as a clean miss.
		return nil, fmt.Errorf("%w: %s", ErrUpstream, failed.Error())
	}
	return nil, ErrNotFound
}

// byAlias is the preferred path.  Transport errors are logged and passed
// over: the proxy may simply not support alias lookups, and the page-id
// strategy still gets its chance.  The error rides along undecided so an
// eventual empty chain resolves as upstream trouble, not a clean miss.
func (r *Resolver) byAlias(ctx context.Context, req Request) (*card.Record, error, bool) {
	rec, err := r.store.ByAlias(ctx, req.Slug, req.DateSegment)
	if err != nil {
		zap.L().Warn("alias lookup failed",
			zap.String("alias", req.Slug), zap.Error(err))
		return nil, fmt.Errorf("alias lookup: %w", err), false
	}
	if rec == nil {
		return nil, nil, false
	}
	if rec.UserURL != req.Slug {
		// The alias was reassigned since this URL was shared.
		return nil, ErrAliasStale, true
	}
	return rec, nil, true
}

// byPageID is the fallback and the last strategy, so a store error here
// is decisive.
func (r *Resolver) byPageID(ctx context.Context, req Request) (*card.Record, error, bool) {
	rec, err := r.store.ByPageID(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err.Error()), true
	}
	if rec == nil {
		return nil, nil, false
	}
	if req.DateSegment != "" && rec.WeddingDate != "" {
		if seg, ok := dateseg.FormatISO(rec.WeddingDate); ok && seg != req.DateSegment {
			return nil, ErrDateMismatch, true
		}
	}
	return rec, nil, true
}

// internal/resolver/resolver_test.go
//
// Tests for the resolution chain and canonicalization.
//
// fakeStore lets each test script the alias and page-id answers without a
// real HTTP client, including transport failures for the fail-closed
// paths.
package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roarc-kr/mcard/internal/card"
)

type fakeStore struct {
	byAlias     map[string]*card.Record
	byPageID    map[string]*card.Record
	aliasErr    error
	pageIDErr   error
	aliasCalls  int
	pageIDCalls int
}

func (f *fakeStore) ByAlias(_ context.Context, alias, _ string) (*card.Record, error) {
	f.aliasCalls++
	if f.aliasErr != nil {
		return nil, f.aliasErr
	}
	return f.byAlias[alias], nil
}

func (f *fakeStore) ByPageID(_ context.Context, pageID string) (*card.Record, error) {
	f.pageIDCalls++
	if f.pageIDErr != nil {
		return nil, f.pageIDErr
	}
	return f.byPageID[pageID], nil
}

func TestResolve_ByAlias(t *testing.T) {
	rec := &card.Record{PageID: "r1", UserURL: "minjunseoyun", WeddingDate: "2026-12-21"}
	st := &fakeStore{byAlias: map[string]*card.Record{"minjunseoyun": rec}}

	got, err := New(st).Resolve(context.Background(),
		Request{DateSegment: "261221", Slug: "minjunseoyun"})
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, 0, st.pageIDCalls, "alias hit must not touch the page-id path")
}

func TestResolve_AliasStale(t *testing.T) {
	// The store answers the alias "alice" with a record whose own alias
	// has since moved on.  That is a definitive not-found, not a
	// fall-through.
	rec := &card.Record{PageID: "r2", UserURL: "alice-old"}
	st := &fakeStore{
		byAlias:  map[string]*card.Record{"alice": rec},
		byPageID: map[string]*card.Record{"alice": {PageID: "alice"}},
	}

	_, err := New(st).Resolve(context.Background(), Request{Slug: "alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAliasStale)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, st.pageIDCalls, "stale alias must not fall through")
}

func TestResolve_PageIDFallback(t *testing.T) {
	rec := &card.Record{PageID: "r1", WeddingDate: "2026-12-21"}
	st := &fakeStore{byPageID: map[string]*card.Record{"r1": rec}}

	got, err := New(st).Resolve(context.Background(),
		Request{DateSegment: "261221", Slug: "r1"})
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, 1, st.aliasCalls)
}

func TestResolve_DateMismatch(t *testing.T) {
	rec := &card.Record{PageID: "r1", WeddingDate: "2026-12-21"}
	st := &fakeStore{byPageID: map[string]*card.Record{"r1": rec}}

	_, err := New(st).Resolve(context.Background(),
		Request{DateSegment: "261220", Slug: "r1"})
	assert.ErrorIs(t, err, ErrDateMismatch)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_SingleSegmentSkipsDateChecks(t *testing.T) {
	rec := &card.Record{PageID: "r1", WeddingDate: "2026-12-21"}
	st := &fakeStore{byPageID: map[string]*card.Record{"r1": rec}}

	got, err := New(st).Resolve(context.Background(), Request{Slug: "r1"})
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestResolve_InvalidDateSegment(t *testing.T) {
	st := &fakeStore{}
	for _, seg := range []string{"991332", "260230", "12345", "abcdef"} {
		_, err := New(st).Resolve(context.Background(),
			Request{DateSegment: seg, Slug: "r1"})
		assert.ErrorIs(t, err, ErrInvalidDateSegment, "segment %q", seg)
	}
	assert.Equal(t, 0, st.aliasCalls, "invalid segments must not reach the store")
}

func TestResolve_AliasErrorFallsThrough(t *testing.T) {
	rec := &card.Record{PageID: "r1"}
	st := &fakeStore{
		aliasErr: errors.New("proxy has no userUrl support"),
		byPageID: map[string]*card.Record{"r1": rec},
	}

	got, err := New(st).Resolve(context.Background(), Request{Slug: "r1"})
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestResolve_AliasErrorThenMissIsUpstream(t *testing.T) {
	// The alias path is down and the page-id path answers a clean miss.
	// That must surface (and count) as upstream trouble, not as a plain
	// not-found that hides the outage.
	st := &fakeStore{aliasErr: errors.New("proxy 503")}

	_, err := New(st).Resolve(context.Background(), Request{Slug: "r1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, "upstream", Reason(err))
	assert.Equal(t, 1, st.pageIDCalls, "page-id path still gets its chance")
}

func TestResolve_UpstreamFailClosed(t *testing.T) {
	st := &fakeStore{
		aliasErr:  errors.New("timeout"),
		pageIDErr: errors.New("timeout"),
	}

	_, err := New(st).Resolve(context.Background(), Request{Slug: "r1"})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, ErrNotFound, "upstream failure is user-visibly a 404")
}

func TestResolve_Absent(t *testing.T) {
	st := &fakeStore{}
	_, err := New(st).Resolve(context.Background(), Request{Slug: "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not_found", Reason(err))
}

func TestCanonical_PreferAliasAndWeddingDate(t *testing.T) {
	rec := &card.Record{
		PageID: "r1", UserURL: "minjunseoyun", WeddingDate: "2026-12-21",
	}

	// Accessed at the wrong segment via the page id: both halves are
	// corrected.
	requested := URL{DateSegment: "261220", Slug: "r1"}
	assert.False(t, IsCanonical(requested, rec))

	c := Canonical(rec, requested.DateSegment)
	assert.Equal(t, URL{DateSegment: "261221", Slug: "minjunseoyun"}, c)
	assert.Equal(t, "/261221/minjunseoyun", c.Path())
}

func TestCanonical_NoWeddingDateKeepsSegment(t *testing.T) {
	rec := &card.Record{PageID: "r1"}
	c := Canonical(rec, "261221")
	assert.Equal(t, URL{DateSegment: "261221", Slug: "r1"}, c)
	assert.True(t, IsCanonical(URL{DateSegment: "261221", Slug: "r1"}, rec))
}

func TestReason_Labels(t *testing.T) {
	assert.Equal(t, "found", Reason(nil))
	assert.Equal(t, "invalid_date", Reason(ErrInvalidDateSegment))
	assert.Equal(t, "alias_stale", Reason(ErrAliasStale))
	assert.Equal(t, "date_mismatch", Reason(ErrDateMismatch))
	assert.Equal(t, "upstream", Reason(ErrUpstream))
	assert.Equal(t, "not_found", Reason(ErrNotFound))
}

// internal/store/client.go
//
// Record-store client.
//
// Context
// -------
// Card records live behind the admin proxy, an external HTTP service:
//
//	GET {base}/api/page-settings?userUrl=<alias>&date=<YYMMDD>
//	GET {base}/api/page-settings?pageId=<id>
//
// Responses use a {success, data, error} envelope.  This client is the
// only place that knows the wire shape; the resolver sees (record, nil),
// (nil, nil) for a clean miss, or (nil, err) when the store could not
// answer.
//
// Caller-side optimizations, neither required for correctness:
//   - page-id responses are cached for a short TTL (go-cache), because a
//     page render fans out into several section fetches for the same id;
//   - concurrent lookups for the same key are collapsed with
//     singleflight.
//
// Alias lookups are never cached: an alias can be reassigned at any
// moment and a stale hit here would defeat the resolver's staleness
// check.
//
// Notes
// -----
// • 5xx and transport failures are errors; 4xx is a clean miss.  The
//   resolver folds both into not-found but logs them apart.
// • Oxford commas, two spaces after periods.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/roarc-kr/mcard/internal/card"
	"github.com/roarc-kr/mcard/internal/metrics"
)

// Defaults, overridable via Options.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultCacheTTL = 60 * time.Second
)

// envelope is the proxy's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// Options tunes a Client.  The zero value picks the defaults above.
type Options struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	// HTTPClient overrides the transport, used by tests.
	HTTPClient *http.Client
}

// Client fetches card records from the admin proxy.
type Client struct {
	base     string
	http     *http.Client
	cache    *gocache.Cache
	cacheTTL time.Duration
	sfg      singleflight.Group
}

// New returns a Client for the proxy at baseURL (no trailing slash
// required).
func New(baseURL string, opt Options) *Client {
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultTimeout
	}
	if opt.CacheTTL <= 0 {
		opt.CacheTTL = DefaultCacheTTL
	}
	httpClient := opt.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opt.Timeout}
	}

	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}

	return &Client{
		base:     baseURL,
		http:     httpClient,
		cache:    gocache.New(opt.CacheTTL, 2*opt.CacheTTL),
		cacheTTL: opt.CacheTTL,
	}
}

// ByAlias looks a record up by its user_url.  The date segment, when the
// caller has one, is forwarded so the proxy can validate it server side.
// Never cached.
func (c *Client) ByAlias(ctx context.Context, alias, dateSegment string) (*card.Record, error) {
	q := url.Values{"userUrl": {alias}}
	if dateSegment != "" {
		q.Set("date", dateSegment)
	}
	rec, err := c.dedupedFetch(ctx, "alias", alias+"#"+dateSegment, q)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ByPageID looks a record up by its page_id, with TTL caching.
func (c *Client) ByPageID(ctx context.Context, pageID string) (*card.Record, error) {
	if v, ok := c.cache.Get(pageID); ok {
		metrics.RecordCacheHitsTotal.Inc()
		return v.(*card.Record), nil
	}

	rec, err := c.dedupedFetch(ctx, "page_id", pageID, url.Values{"pageId": {pageID}})
	if err != nil {
		return nil, err
	}
	if rec != nil {
		c.cache.Set(pageID, rec, c.cacheTTL)
	}
	return rec, nil
}

// dedupedFetch collapses concurrent identical lookups onto one request.
func (c *Client) dedupedFetch(ctx context.Context, kind, key string, q url.Values) (*card.Record, error) {
	v, err, _ := c.sfg.Do(kind+":"+key, func() (interface{}, error) {
		return c.fetch(ctx, kind, q)
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*card.Record), nil
}

// fetch performs one GET against /api/page-settings.  Returns
// (nil, nil) for a clean miss.
func (c *Client) fetch(ctx context.Context, kind string, q url.Values) (*card.Record, error) {
	metrics.RecordFetchTotal.WithLabelValues(kind).Inc()

	reqURL := c.base + "/api/page-settings?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordFetchErrorsTotal.WithLabelValues(kind).Inc()
		return nil, fmt.Errorf("record store %s lookup: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		metrics.RecordFetchErrorsTotal.WithLabelValues(kind).Inc()
		return nil, fmt.Errorf("record store %s lookup: status %d", kind, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		// 4xx: the store answered, the record is not there.
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.RecordFetchErrorsTotal.WithLabelValues(kind).Inc()
		return nil, fmt.Errorf("record store %s read: %w", kind, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		metrics.RecordFetchErrorsTotal.WithLabelValues(kind).Inc()
		return nil, fmt.Errorf("record store %s decode: %w", kind, err)
	}
	if !env.Success || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}

	var rec card.Record
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		metrics.RecordFetchErrorsTotal.WithLabelValues(kind).Inc()
		return nil, fmt.Errorf("record store %s decode record: %w", kind, err)
	}
	return &rec, nil
}

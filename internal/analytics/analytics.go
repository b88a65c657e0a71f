// internal/analytics/analytics.go
//
// Per-view analytics.
//
// Context
// -------
// Couples want to know how many guests opened their card and on what.
// Every successful render records one page view: device class, browser,
// OS (avct/uasurfer), and a best-effort country from the client IP
// (MaxMind GeoLite2, optional).  Crawler hits are dropped so the open
// counts mean something.
//
// The insert runs on its own goroutine with a short deadline; analytics
// must never slow down or fail a page render.  Without a database the
// recorder degrades to metrics and logs only.
package analytics

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/jmoiron/sqlx"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/roarc-kr/mcard/internal/metrics"
)

const insertTimeout = 2 * time.Second

// View is one recorded page view.
type View struct {
	PageID   string    `db:"page_id"`
	Device   string    `db:"device"`
	Browser  string    `db:"browser"`
	OS       string    `db:"os"`
	Country  string    `db:"country"`
	ViewedAt time.Time `db:"viewed_at"`
}

// Recorder writes page views.  Both db and the GeoIP reader are
// optional; a zero-capability Recorder still counts views in Prometheus.
type Recorder struct {
	db  *sqlx.DB
	geo *geoip2.Reader
}

// New builds a Recorder.  geoDBPath may be empty; a missing or broken
// GeoLite2 file is logged and skipped, never fatal.
func New(db *sqlx.DB, geoDBPath string) *Recorder {
	r := &Recorder{db: db}
	if geoDBPath != "" {
		geo, err := geoip2.Open(geoDBPath)
		if err != nil {
			zap.L().Warn("geoip database unavailable",
				zap.String("path", geoDBPath), zap.Error(err))
		} else {
			r.geo = geo
		}
	}
	return r
}

// Close releases the GeoIP handle.
func (r *Recorder) Close() {
	if r.geo != nil {
		_ = r.geo.Close()
	}
}

// PageView records one render of pageID.  Bot traffic is ignored.
func (r *Recorder) PageView(req *http.Request, pageID string) {
	ua := uasurfer.Parse(req.UserAgent())
	if ua.IsBot() {
		return
	}

	v := View{
		PageID:   pageID,
		Device:   ua.DeviceType.StringTrimPrefix(),
		Browser:  ua.Browser.Name.StringTrimPrefix(),
		OS:       ua.OS.Name.StringTrimPrefix(),
		Country:  r.country(clientIP(req)),
		ViewedAt: time.Now().UTC(),
	}
	metrics.PageViewsTotal.WithLabelValues(v.Device).Inc()

	if r.db == nil {
		return
	}
	go r.insert(v)
}

func (r *Recorder) insert(v View) {
	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	const q = `
        INSERT INTO page_view (page_id, device, browser, os, country, viewed_at)
        VALUES (:page_id, :device, :browser, :os, :country, :viewed_at)`
	if _, err := r.db.NamedExecContext(ctx, q, v); err != nil {
		zap.L().Warn("page view insert failed",
			zap.String("page_id", v.PageID), zap.Error(err))
	}
}

// country resolves a best-effort ISO country code, empty when unknown.
func (r *Recorder) country(ip net.IP) string {
	if r.geo == nil || ip == nil {
		return ""
	}
	rec, err := r.geo.City(ip)
	if err != nil {
		return ""
	}
	return rec.Country.IsoCode
}

// clientIP prefers the first X-Forwarded-For hop, falling back to
// RemoteAddr.
func clientIP(req *http.Request) net.IP {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		first := fwd
		if i := strings.IndexByte(fwd, ','); i != -1 {
			first = fwd[:i]
		}
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return net.ParseIP(req.RemoteAddr)
	}
	return net.ParseIP(host)
}

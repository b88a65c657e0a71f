// cmd/web/main.go
//
// Mobile card server – HTTP entry point.
//
// Startup life-cycle
// ------------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load the typed config tree and resolve vault: secret references.
//
//  4. Open the MariaDB pool for guestbook, RSVP, and page-view analytics.
//     The database is optional: without a DSN the card pages still serve
//     and the /api endpoints answer 503.
//
//  5. Build the record-store client, the resolver, and the view engine.
//
//  6. Assemble the chi router, wrap it with ForceHTTPS when configured,
//     and serve.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/roarc-kr/mcard/internal/analytics"
	"github.com/roarc-kr/mcard/internal/config"
	"github.com/roarc-kr/mcard/internal/database"
	"github.com/roarc-kr/mcard/internal/guestbook"
	"github.com/roarc-kr/mcard/internal/logger"
	"github.com/roarc-kr/mcard/internal/middleware"
	"github.com/roarc-kr/mcard/internal/resolver"
	"github.com/roarc-kr/mcard/internal/rsvp"
	"github.com/roarc-kr/mcard/internal/server"
	"github.com/roarc-kr/mcard/internal/store"
	"github.com/roarc-kr/mcard/internal/view"
	"github.com/roarc-kr/mcard/internal/web"
)

const serverEnvPath = "/usr/local/etc/mcard/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config + secrets ────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := config.ResolveSecrets(ctx, cfg); err != nil {
		logOut.Fatalf("resolve secrets: %v", err)
	}
	cancel()

	//
	// ── 2.  Database (optional) ─────────────────────────────────────────
	//
	handler := &web.Handler{}
	if cfg.Database.DSN != "" {
		logOut.Infof("connecting to database …")
		db, err := database.Open(cfg.Database.DSN)
		if err != nil {
			logOut.Fatalf("connect database: %v", err)
		}
		defer db.Close()
		logOut.Infof("database online")

		handler.Guestbook = guestbook.NewStore(db)
		handler.RSVP = rsvp.NewStore(db)
		handler.Analytics = analytics.New(db, cfg.GeoIP.DBPath)
	} else {
		logOut.Warnf("no database DSN; guestbook, RSVP, and analytics disabled")
	}

	//
	// ── 3.  Record store + resolver + views ─────────────────────────────
	//
	records := store.New(cfg.Store.BaseURL, store.Options{
		Timeout:  time.Duration(cfg.Store.TimeoutSeconds) * time.Second,
		CacheTTL: time.Duration(cfg.Store.CacheTTLSecs) * time.Second,
	})
	handler.Resolver = resolver.New(records)
	handler.Views = view.New(filepath.Join(cfg.Paths.Root, "templates"))

	//
	// ── 4.  Router + HTTPS enforcement ──────────────────────────────────
	//
	var root = web.NewRouter(handler)
	if cfg.HTTP.ForceHTTPS {
		root = middleware.ForceHTTPS(root)
	}

	srv := server.New(cfg.HTTP.ListenAddr, root)
	logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
}

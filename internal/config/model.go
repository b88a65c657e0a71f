// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `MCARD_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so the rest of the app
// only ever sees plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.
package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Record-store section
//

// Store points at the external admin proxy that owns the card records.
type Store struct {
	BaseURL        string `koanf:"base_url"         validate:"required,url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"  validate:"gte=0"`
	CacheTTLSecs   int    `koanf:"cache_ttl_seconds" validate:"gte=0"`
}

//
// Database section
//

// Database holds the DSN for the guestbook/RSVP/analytics store.  The
// password half usually lives in Vault and is spliced into the DSN at
// load time, keeping credentials out of flat files and git history.
// An empty DSN is valid: the server then runs card rendering only, with
// the database-backed endpoints disabled.
type Database struct {
	DSN      string `koanf:"dsn"`
	Password string `koanf:"password"`
}

//
// GeoIP section
//

// GeoIP is optional.  Without a database path, analytics simply records
// no country.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers Root (repo root or MCARD_ROOT override) so later code can
// build absolute file paths (templates, logs, GeoIP database).
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Store    Store    `koanf:"store"`
	Database Database `koanf:"database"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"`
}

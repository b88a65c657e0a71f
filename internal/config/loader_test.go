// internal/config/loader_test.go
//
// Loader tests run against a throw-away root directory so they never
// touch the repo's own conf/ tree.  MCARD_ROOT pins root discovery to
// the fixture.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConf drops a conf/global.yaml under a temp root and returns it.
func writeConf(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"),
		[]byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLoad_EmptyDSNIsValid(t *testing.T) {
	// Database-less deployments leave dsn empty; the loader must accept
	// that and let main run with the /api endpoints disabled.
	root := writeConf(t, `
http:
  listen_addr: ":8080"
store:
  base_url: "https://admin.example.com"
  timeout_seconds: 5
  cache_ttl_seconds: 60
database:
  dsn: ""
`)
	t.Setenv("MCARD_ROOT", root)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.DSN != "" {
		t.Errorf("DSN = %q, want empty", cfg.Database.DSN)
	}
	if cfg.HTTP.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Paths.Root != root {
		t.Errorf("Paths.Root = %q, want %q", cfg.Paths.Root, root)
	}
}

func TestLoad_MissingListenAddrFails(t *testing.T) {
	root := writeConf(t, `
store:
  base_url: "https://admin.example.com"
`)
	t.Setenv("MCARD_ROOT", root)

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a config without http.listen_addr")
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	root := writeConf(t, `
http:
  listen_addr: ":8080"
store:
  base_url: "https://admin.example.com"
`)
	t.Setenv("MCARD_ROOT", root)
	t.Setenv("MCARD_HTTP__LISTEN_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want env override :9090", cfg.HTTP.ListenAddr)
	}
}

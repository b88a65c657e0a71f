package vault

import (
	"context"
	"testing"
	"time"
)

func TestSplitMount(t *testing.T) {
	cases := []struct {
		in, mount, rel string
	}{
		{"secret/mcard", "secret", "mcard"},
		{"secret/team/mcard", "secret", "team/mcard"},
		{"secret", "secret", ""},
	}
	for _, c := range cases {
		mount, rel := splitMount(c.in)
		if mount != c.mount || rel != c.rel {
			t.Errorf("splitMount(%q) = (%q, %q), want (%q, %q)",
				c.in, mount, rel, c.mount, c.rel)
		}
	}
}

func TestGetKV_RejectsEmptyArgs(t *testing.T) {
	c := &Client{cache: make(map[string]cached)}
	if _, err := c.GetKV(context.Background(), "", "key", 0); err == nil {
		t.Error("empty path accepted")
	}
	if _, err := c.GetKV(context.Background(), "secret/mcard", "", 0); err == nil {
		t.Error("empty key accepted")
	}
}

func TestGetKV_CacheHitSkipsNetwork(t *testing.T) {
	// api is nil, so any cache miss would panic; a fresh entry must be
	// served without touching the server at all.
	c := &Client{cache: map[string]cached{
		"secret/mcard#db_password": {val: "s3cret", exp: time.Now().Add(time.Minute)},
	}}

	got, err := c.GetKV(context.Background(), "secret/mcard", "db_password", time.Minute)
	if err != nil {
		t.Fatalf("GetKV: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("got %q, want cached value", got)
	}
}

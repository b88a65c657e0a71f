// internal/config/secrets.go
//
// Vault-backed secret resolution.
//
// Context
// -------
// Configuration values may carry the indirection prefix
// `vault:<mount>/<path>#<key>`.  ResolveSecrets walks the few fields that
// accept it and replaces the reference with the secret's plain value, so
// nothing past the loader ever sees a Vault URI.  The database password
// is additionally spliced into the DSN when the DSN carries a `%s` verb.
//
// The path is the logical secret path, without the KV-v2 `data/` API
// segment — the SDK inserts that itself.  A secret written with
// `vault kv put secret/mcard db_password=…` is referenced as
// `vault:secret/mcard#db_password`.
//
// Deployments without Vault simply never use the prefix; ResolveSecrets
// is then a no-op and no Vault client is constructed.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roarc-kr/mcard/internal/vault"
)

const vaultPrefix = "vault:"

// secretTTL caches resolved secrets inside the Vault client so a config
// reload does not hammer the KV mount.
const secretTTL = 5 * time.Minute

// ResolveSecrets replaces vault: references in cfg in place.  The Vault
// client is created lazily, only when at least one reference exists.
func ResolveSecrets(ctx context.Context, cfg *Config) error {
	refs := []*string{&cfg.Database.Password}

	var cli *vault.Client
	for _, ref := range refs {
		if !strings.HasPrefix(*ref, vaultPrefix) {
			continue
		}
		if cli == nil {
			var err error
			if cli, err = vault.New(); err != nil {
				return fmt.Errorf("vault client: %w", err)
			}
		}

		secretPath, key, err := splitRef(strings.TrimPrefix(*ref, vaultPrefix))
		if err != nil {
			return err
		}
		val, err := cli.GetKV(ctx, secretPath, key, secretTTL)
		if err != nil {
			return err
		}
		*ref = val
	}

	// Splice the password into a templated DSN.
	if strings.Contains(cfg.Database.DSN, "%s") && cfg.Database.Password != "" {
		cfg.Database.DSN = fmt.Sprintf(cfg.Database.DSN, cfg.Database.Password)
	}
	return nil
}

// splitRef parses "<mount>/<path>#<key>".
func splitRef(ref string) (secretPath, key string, err error) {
	i := strings.LastIndexByte(ref, '#')
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("malformed vault reference %q", ref)
	}
	return ref[:i], ref[i+1:], nil
}

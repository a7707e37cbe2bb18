package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/iudanet/secretsguard/internal/crypto"
	"github.com/iudanet/secretsguard/internal/keyring"
	"github.com/iudanet/secretsguard/internal/store"
)

// storePath returns the artifact path of the named store.
func (c *Cli) storePath(name string) string {
	return filepath.Join(c.cfg.StoresPath, name+StoreExtension)
}

// obtainStoreName takes the store name from the positional arguments or asks
// for it.
func (c *Cli) obtainStoreName(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	name, err := c.io.ReadInput("Store name: ")
	if err != nil {
		return "", fmt.Errorf("failed to read store name: %w", err)
	}
	if name == "" {
		return "", fmt.Errorf("store name cannot be empty")
	}
	return name, nil
}

// obtainKey resolves the store key: the --key option first (never cached),
// then the keyring, then an interactive prompt. The second return value says
// whether the key was freshly prompted and may be cached after a successful
// open.
func (c *Cli) obtainKey(ctx context.Context, name string, allowKeyring bool) (store.Key, bool, error) {
	if c.cfg.Key != "" {
		return store.PlainKey(c.cfg.Key), false, nil
	}

	useKeyring := allowKeyring && !c.cfg.NoKeyring
	if useKeyring {
		key, err := c.keys.Get(ctx, name)
		if err == nil {
			log.WithField("store", name).Debug("using cached key")
			return key, false, nil
		}
		if !errors.Is(err, keyring.ErrKeyNotFound) {
			return store.Key{}, false, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	passphrase, err := c.io.ReadPassword("Store key: ")
	if err != nil {
		return store.Key{}, false, fmt.Errorf("failed to read store key: %w", err)
	}
	if passphrase == "" {
		return store.Key{}, false, fmt.Errorf("store key cannot be empty")
	}
	return store.PlainKey(passphrase), useKeyring, nil
}

// openStore opens the named store, consulting the keyring before prompting
// and caching a freshly prompted key (in derived form) after a successful
// open.
func (c *Cli) openStore(ctx context.Context, name string) (*store.Store, error) {
	key, cache, err := c.obtainKey(ctx, name, true)
	if err != nil {
		return nil, err
	}

	st := store.New(c.storePath(name), key, c.cipher)
	if err := st.Open(); err != nil {
		return nil, err
	}

	if cache {
		derived := store.DerivedKey(crypto.DeriveKey(string(key.Data)))
		if err := c.keys.Put(ctx, name, derived); err != nil {
			log.WithError(err).Warn("failed to cache store key")
		}
	}
	return st, nil
}

// promptNewKey reads a key twice and insists the two entries agree.
func (c *Cli) promptNewKey(prompt string) (string, error) {
	for {
		key, err := c.io.ReadPassword(prompt)
		if err != nil {
			return "", err
		}
		if key == "" {
			c.io.Println("The key cannot be empty")
			continue
		}
		again, err := c.io.ReadPassword(prompt[:len(prompt)-2] + " again: ")
		if err != nil {
			return "", err
		}
		if key != again {
			c.io.Println("Double check failed, please insert the key again")
			continue
		}
		return key, nil
	}
}

// promptFieldValue asks for the value of one field: hidden input for hidden
// fields (double-checked), re-prompting until non-empty for mandatory ones.
func (c *Cli) promptFieldValue(f store.Field) (string, error) {
	for {
		var value string
		var err error
		if f.Hidden {
			value, err = c.io.ReadPassword(f.Name + ": ")
		} else {
			value, err = c.io.ReadInput(f.Name + ": ")
		}
		if err != nil {
			return "", err
		}

		if f.Hidden && value != "" {
			again, err := c.io.ReadPassword(f.Name + " again: ")
			if err != nil {
				return "", err
			}
			if value != again {
				c.io.Println("Double check failed, please insert the field again")
				continue
			}
		}

		if f.Mandatory && value == "" {
			c.io.Printf("%s is mandatory\n", f.Name)
			continue
		}
		return value, nil
	}
}

// parseData converts a "key=value,key=value" option into a map.
func parseData(data string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(data, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid data entry %q, expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}

// parseIDs converts positional id arguments (space or comma separated) into
// integers.
func parseIDs(args []string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for _, raw := range strings.Split(arg, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid secret id %q: %w", raw, err)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no secret ids given")
	}
	return ids, nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/iudanet/secretsguard/internal/store"
)

// runChangeKey re-encrypts a store under a new key. The cached key, if any,
// is evicted so the next open prompts again.
func (c *Cli) runChangeKey(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	newKey := ""
	if len(args) > 1 {
		newKey = args[1]
	} else {
		newKey, err = c.promptNewKey("New store key: ")
		if err != nil {
			return fmt.Errorf("failed to read new store key: %w", err)
		}
	}

	old, err := c.openStore(ctx, name)
	if err != nil {
		return fmt.Errorf("cannot change key of store %q: %w", name, err)
	}

	st := store.New(c.storePath(name), store.PlainKey(newKey), c.cipher)
	st.CloneContentFrom(old)

	if err := st.Save(); err != nil {
		return fmt.Errorf("cannot change key of store %q: %w", name, err)
	}

	if err := c.keys.Delete(ctx, name); err != nil {
		log.WithError(err).Warn("failed to evict cached store key")
	}
	return nil
}

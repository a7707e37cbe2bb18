package cli

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/iudanet/secretsguard/internal/store"
)

// runDestroy deletes the store artifact and drops any cached key for it.
// Destroying needs no key: the artifact is removed, not decrypted.
func (c *Cli) runDestroy(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	st := store.New(c.storePath(name), store.Key{}, c.cipher)
	if err := st.Destroy(); err != nil {
		return fmt.Errorf("cannot destroy store %q: %w", name, err)
	}

	if err := c.keys.Delete(ctx, name); err != nil {
		log.WithError(err).Warn("failed to drop cached key")
	}
	return nil
}

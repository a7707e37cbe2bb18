package cli

import (
	"context"
	"fmt"
	"strings"
)

// runRemove removes the secrets addressed by the given display IDs. The batch
// succeeds when at least one id was valid; the user is told when part of it
// was skipped.
func (c *Cli) runRemove(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	rawIDs := args[1:]
	if len(rawIDs) == 0 {
		line, err := c.io.ReadInput("ID of the secret(s) to remove: ")
		if err != nil {
			return fmt.Errorf("failed to read secret ids: %w", err)
		}
		rawIDs = strings.Fields(line)
	}
	ids, err := parseIDs(rawIDs)
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx, name)
	if err != nil {
		return fmt.Errorf("cannot remove secrets from store %q: %w", name, err)
	}

	removed, err := st.RemoveSecrets(ids...)
	if err != nil {
		return fmt.Errorf("cannot remove secrets %v from store %q: %w", ids, name, err)
	}

	// The store removes each distinct id once, so a repeated id is not a skip.
	unique := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if removed < len(unique) {
		c.io.Printf("Removed %d of %d secret(s); some ids were out of bounds\n", removed, len(unique))
	}

	if err := st.Save(); err != nil {
		return fmt.Errorf("cannot remove secrets from store %q: %w", name, err)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
)

// runClear removes all the secrets of a store; the schema stays.
func (c *Cli) runClear(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx, name)
	if err != nil {
		return fmt.Errorf("cannot clear store %q: %w", name, err)
	}

	st.Clear()

	if err := st.Save(); err != nil {
		return fmt.Errorf("cannot clear store %q: %w", name, err)
	}
	return nil
}

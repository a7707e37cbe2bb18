package cli

import (
	"context"
	"fmt"
)

// runShow decrypts a store and prints its content with display IDs.
func (c *Cli) runShow(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx, name)
	if err != nil {
		return fmt.Errorf("cannot show store %q: %w", name, err)
	}

	c.renderMatches(st.FieldNames(), storeView(st))
	return nil
}

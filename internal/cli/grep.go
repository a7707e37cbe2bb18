package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/secretsguard/internal/store"
)

// runGrep searches every field of every secret with a regular expression and
// prints the matches with fresh match indexes.
func (c *Cli) runGrep(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	pattern := ""
	if len(args) > 1 {
		pattern = args[1]
	} else {
		pattern, err = c.io.ReadInput("Search pattern: ")
		if err != nil {
			return fmt.Errorf("failed to read search pattern: %w", err)
		}
	}

	st, err := c.openStore(ctx, name)
	if err != nil {
		return fmt.Errorf("cannot search store %q: %w", name, err)
	}

	matches, err := st.Grep(pattern, store.SearchOptions{
		Highlight: !c.cfg.NoColor,
		MarkStart: markStart,
		MarkEnd:   markEnd,
	})
	if err != nil {
		return fmt.Errorf("cannot search store %q: %w", name, err)
	}

	c.renderMatches(st.FieldNames(), matches)
	return nil
}

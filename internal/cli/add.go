package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/secretsguard/internal/store"
)

// runAdd inserts a new secret. With --data only the missing mandatory fields
// are asked interactively (batch use should not block on optional fields);
// without it every schema field is asked.
func (c *Cli) runAdd(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx, name)
	if err != nil {
		return fmt.Errorf("cannot add secret to store %q: %w", name, err)
	}

	var input map[string]string
	var missing []store.Field

	if c.cfg.Data != "" {
		input, err = parseData(c.cfg.Data)
		if err != nil {
			return err
		}
		for _, f := range st.Fields() {
			if f.Mandatory && !hasFieldValue(input, f.Name) {
				missing = append(missing, f)
			}
		}
	} else {
		input = make(map[string]string)
		missing = st.Fields()
	}

	for _, f := range missing {
		value, err := c.promptFieldValue(f)
		if err != nil {
			return fmt.Errorf("failed to read field %q: %w", f.Name, err)
		}
		input[f.Name] = value
	}

	st.AddSecret(input)

	if err := st.Save(); err != nil {
		return fmt.Errorf("cannot add secret to store %q: %w", name, err)
	}
	return nil
}

// hasFieldValue reports whether input carries a value for the field,
// matching the key case-insensitively like the store does.
func hasFieldValue(input map[string]string, field string) bool {
	for k := range input {
		if strings.EqualFold(k, field) {
			return true
		}
	}
	return false
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/secretsguard/internal/store"
)

// runModify changes fields of the secret addressed by a display ID, either
// from --data or through an interactive field picker.
func (c *Cli) runModify(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	rawID := ""
	if len(args) > 1 {
		rawID = args[1]
	} else {
		rawID, err = c.io.ReadInput("ID of the secret to modify: ")
		if err != nil {
			return fmt.Errorf("failed to read secret id: %w", err)
		}
	}
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return fmt.Errorf("invalid secret id %q: %w", rawID, err)
	}

	st, err := c.openStore(ctx, name)
	if err != nil {
		return fmt.Errorf("cannot modify secret in store %q: %w", name, err)
	}

	var patch map[string]string
	if c.cfg.Data != "" {
		patch, err = parseData(c.cfg.Data)
		if err != nil {
			return err
		}
	} else {
		patch, err = c.pickFieldChange(st, id)
		if err != nil {
			return err
		}
	}

	if err := st.ModifySecret(id, patch); err != nil {
		return fmt.Errorf("cannot modify secret %d in store %q: %w", id, name, err)
	}

	if err := st.Save(); err != nil {
		return fmt.Errorf("cannot modify secret %d in store %q: %w", id, name, err)
	}
	return nil
}

// pickFieldChange shows the secret's fields (hidden values masked) and asks
// which one to change, then asks the new value.
func (c *Cli) pickFieldChange(st *store.Store, id int) (map[string]string, error) {
	secret, err := st.SecretAt(id)
	if err != nil {
		return nil, err
	}

	fields := st.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("the store has no fields")
	}

	maxLen := 0
	for _, f := range fields {
		if len(f.Name) > maxLen {
			maxLen = len(f.Name)
		}
	}

	c.io.Println("Which field to modify?")
	choice := len(fields)
	for choice < 0 || choice >= len(fields) {
		for i, f := range fields {
			line := fmt.Sprintf("%d) %-*s", i, maxLen, f.Name)
			if value, ok := secret.Get(f.Name); ok {
				if f.Hidden {
					value = strings.Repeat("*", len(value))
				}
				line += " (" + value + ")"
			}
			c.io.Println(line)
		}
		raw, err := c.io.ReadInput(": ")
		if err != nil {
			return nil, fmt.Errorf("failed to read field choice: %w", err)
		}
		choice, err = strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			choice = len(fields)
		}
	}

	field := fields[choice]
	value, err := c.promptFieldValue(field)
	if err != nil {
		return nil, fmt.Errorf("failed to read new value of %q: %w", field.Name, err)
	}
	return map[string]string{field.Name: value}, nil
}

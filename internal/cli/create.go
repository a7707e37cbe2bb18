package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/secretsguard/internal/store"
)

// runCreate creates a new store with the given schema and saves it. The key
// for a brand new store is never taken from the keyring.
func (c *Cli) runCreate(ctx context.Context, args []string) error {
	name, err := c.obtainStoreName(args)
	if err != nil {
		return err
	}

	keyStr := c.cfg.Key
	if keyStr == "" {
		keyStr, err = c.promptNewKey("Store key: ")
		if err != nil {
			return fmt.Errorf("failed to read store key: %w", err)
		}
	}

	specs, err := c.obtainFieldSpecs()
	if err != nil {
		return err
	}

	fields := make([]store.Field, 0, len(specs))
	for _, spec := range specs {
		fields = append(fields, store.ParseFieldSpec(spec))
	}

	st := store.New(c.storePath(name), store.PlainKey(keyStr), c.cipher)
	st.AddFields(fields...)

	if err := st.Save(); err != nil {
		return fmt.Errorf("cannot create store %q: %w", name, err)
	}
	return nil
}

// obtainFieldSpecs takes the field specs from --fields or collects them
// interactively until an empty line.
func (c *Cli) obtainFieldSpecs() ([]string, error) {
	if c.cfg.Fields != "" {
		return strings.Split(c.cfg.Fields, ","), nil
	}

	c.io.Println()
	c.io.Println("Insert store fields with format <name>[+<attr_1><attr_2>...].")
	c.io.Println("Available attributes are:")
	c.io.Println("+ m (mandatory)")
	c.io.Println("+ h (hidden)")
	c.io.Println("(Leave empty to terminate the fields insertion)")
	c.io.Println()

	var specs []string
	for i := 1; ; i++ {
		spec, err := c.io.ReadInput(fmt.Sprintf("Field %d: ", i))
		if err != nil {
			return nil, fmt.Errorf("failed to read field spec: %w", err)
		}
		if spec == "" {
			break
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("a store needs at least one field")
	}
	return specs, nil
}

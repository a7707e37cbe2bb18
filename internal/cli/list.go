package cli

import (
	"context"
	"os"
	"strings"

	"github.com/apex/log"
)

// runList prints the names of the stores found at the stores path. A missing
// path just means there are no stores yet.
func (c *Cli) runList(ctx context.Context) error {
	entries, err := os.ReadDir(c.cfg.StoresPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", c.cfg.StoresPath).Warn("stores path does not exist")
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), StoreExtension) {
			continue
		}
		c.io.Println(strings.TrimSuffix(entry.Name(), StoreExtension))
	}
	return nil
}

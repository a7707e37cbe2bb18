package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/secretsguard/internal/gitsync"
)

// runPush commits and pushes the stores directory. The directory must already
// be a git working tree with a configured remote.
func (c *Cli) runPush(ctx context.Context) error {
	message := c.cfg.Message
	if message == "" {
		message = "Committed on " + time.Now().Format("2006-01-02 15:04:05")
	}
	if err := gitsync.Push(ctx, c.cfg.StoresPath, message); err != nil {
		return fmt.Errorf("cannot push stores at %q: %w", c.cfg.StoresPath, err)
	}
	return nil
}

// runPull fetches and merges the remote state of the stores directory.
func (c *Cli) runPull(ctx context.Context) error {
	if err := gitsync.Pull(ctx, c.cfg.StoresPath); err != nil {
		return fmt.Errorf("cannot pull stores at %q: %w", c.cfg.StoresPath, err)
	}
	return nil
}

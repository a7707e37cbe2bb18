// Package gitsync synchronizes the stores directory with a remote git
// repository. The store engine never calls into this package; only the CLI
// boundary does.
package gitsync

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/apex/log"
)

// Push stages everything under path, commits with the given message and
// pushes to the remote. The action covers the whole repository, not one
// particular store.
func Push(ctx context.Context, path, message string) error {
	if path == "" {
		return fmt.Errorf("local path must be specified")
	}
	if message == "" {
		return fmt.Errorf("a commit message must be specified")
	}

	if err := run(ctx, path, "add", "."); err != nil {
		return err
	}
	if err := run(ctx, path, "commit", "-m", message); err != nil {
		return err
	}
	return run(ctx, path, "push")
}

// Pull pulls the remote branch into path.
func Pull(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("local path must be specified")
	}
	return run(ctx, path, "pull")
}

func run(ctx context.Context, dir string, args ...string) error {
	log.WithField("args", args).Debug("running git")

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %w: %s", args[0], err, out)
	}
	return nil
}

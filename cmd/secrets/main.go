package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/iudanet/secretsguard/internal/cli"
	"github.com/iudanet/secretsguard/internal/crypto"
	"github.com/iudanet/secretsguard/internal/iocli"
	"github.com/iudanet/secretsguard/internal/keyring"
	"github.com/iudanet/secretsguard/internal/keyring/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	verbose := flag.Bool("verbose", false, "Print debug statements")
	path := flag.String("path", "", "Stores directory (default: ~/.secrets)")
	key := flag.String("key", "", "Store key (never cached in the keyring)")
	fields := flag.String("fields", "", "Comma separated field specs for create")
	data := flag.String("data", "", "Comma separated key=value pairs for add/modify")
	message := flag.String("message", "", "Commit message for push")
	noKeyring := flag.Bool("no-keyring", false, "Do not cache or reuse store keys")
	noColor := flag.Bool("no-color", false, "Do not highlight grep matches")
	noTable := flag.Bool("no-table", false, "Print field-per-line blocks instead of a table")

	flag.Usage = cli.PrintUsage
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	cfg := cli.Config{
		StoresPath: *path,
		Key:        *key,
		Fields:     *fields,
		Data:       *data,
		Message:    *message,
		NoKeyring:  *noKeyring,
		NoColor:    *noColor,
		NoTable:    *noTable,
	}

	// The command runs in a helper so its defers (keyring close) fire before
	// the process exits.
	if err := run(context.Background(), cfg, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cli.Config, command string, args []string) error {
	if cfg.StoresPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		cfg.StoresPath = filepath.Join(home, ".secrets")
	}
	if err := os.MkdirAll(cfg.StoresPath, 0o700); err != nil {
		return fmt.Errorf("failed to create stores directory: %w", err)
	}

	var keys keyring.Keyring = keyring.Noop{}
	if !cfg.NoKeyring {
		boltKeys, err := boltdb.New(ctx, filepath.Join(cfg.StoresPath, "keyring.db"))
		if err != nil {
			return fmt.Errorf("failed to open keyring: %w", err)
		}
		defer func() {
			if err := boltKeys.Close(); err != nil {
				log.WithError(err).Error("failed to close keyring")
			}
		}()
		keys = boltKeys
	}

	app := cli.New(iocli.NewStdio(), crypto.NewFileCipher(), keys, cfg)
	return app.Run(ctx, command, args)
}

func printVersion() {
	fmt.Printf("Secrets Guard\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

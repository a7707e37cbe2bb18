package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/secretsguard/internal/iocli"
	"github.com/iudanet/secretsguard/internal/keyring"
	"github.com/iudanet/secretsguard/internal/store"
)

const (
	// StoreExtension is the filename suffix of store artifacts
	StoreExtension = ".sec"

	// ANSI escapes wrapped around grep matches
	markStart = "\x1b[31m"
	markEnd   = "\x1b[0m"
)

// Config carries the command-line options shared by all commands.
type Config struct {
	StoresPath string // directory holding the store artifacts
	Key        string // store key passed on the command line, never cached
	Fields     string // comma separated field specs for create
	Data       string // comma separated key=value pairs for add/modify
	Message    string // commit message for push
	NoKeyring  bool
	NoColor    bool
	NoTable    bool
}

// Cli executes the user-facing commands against the store engine and its
// collaborators.
type Cli struct {
	io     iocli.IO
	cipher store.Cipher
	keys   keyring.Keyring
	cfg    Config
}

// New creates a Cli with the given collaborators.
func New(io iocli.IO, cipher store.Cipher, keys keyring.Keyring, cfg Config) *Cli {
	return &Cli{
		io:     io,
		cipher: cipher,
		keys:   keys,
		cfg:    cfg,
	}
}

// Run dispatches a single command. Unknown commands are an error; process
// termination is up to the caller.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "create":
		return c.runCreate(ctx, args)
	case "destroy":
		return c.runDestroy(ctx, args)
	case "list":
		return c.runList(ctx)
	case "show":
		return c.runShow(ctx, args)
	case "grep":
		return c.runGrep(ctx, args)
	case "add":
		return c.runAdd(ctx, args)
	case "remove":
		return c.runRemove(ctx, args)
	case "modify":
		return c.runModify(ctx, args)
	case "clear":
		return c.runClear(ctx, args)
	case "key":
		return c.runChangeKey(ctx, args)
	case "push":
		return c.runPush(ctx)
	case "pull":
		return c.runPull(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage prints the command summary.
func PrintUsage() {
	fmt.Println("secrets - encrypt and decrypt private information (such as passwords)")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  secrets [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --path PATH       Stores directory (default: ~/.secrets)")
	fmt.Println("  --key KEY         Store key (never cached in the keyring)")
	fmt.Println("  --fields FIELDS   Comma separated field specs for create, e.g. Site+m,Password+mh")
	fmt.Println("  --data DATA       Comma separated key=value pairs for add/modify")
	fmt.Println("  --message MSG     Commit message for push")
	fmt.Println("  --no-keyring      Do not cache or reuse store keys")
	fmt.Println("  --no-color        Do not highlight grep matches")
	fmt.Println("  --no-table        Print field-per-line blocks instead of a table")
	fmt.Println("  --verbose         Print debug statements")
	fmt.Println("  --version         Show version information")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  create [NAME]            Create a new store")
	fmt.Println("  destroy [NAME]           Destroy a store")
	fmt.Println("  list                     List the stores at the path")
	fmt.Println("  show [NAME]              Decrypt and show the content of a store")
	fmt.Println("  grep [NAME] [PATTERN]    Regular expression search across the store")
	fmt.Println("  add [NAME]               Insert a new secret into a store")
	fmt.Println("  remove [NAME] [IDS...]   Remove the secrets with the given IDs")
	fmt.Println("  modify [NAME] [ID]       Modify the secret with the given ID")
	fmt.Println("  clear [NAME]             Remove all the secrets of a store")
	fmt.Println("  key [NAME] [NEW_KEY]     Change the key of a store")
	fmt.Println("  push                     Commit and push the stores directory")
	fmt.Println("  pull                     Pull the stores directory")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  secrets create password --fields Site+m,Account+m,Password+mh,Other")
	fmt.Println("  secrets add password --data Site=megavideo.com,Account=me@gmail.com,Password=secret")
	fmt.Println("  secrets grep password '^My.*word'")
	fmt.Println("  secrets remove password 12 14")
}

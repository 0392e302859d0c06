package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/wordseed/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Flag overrides for environment configuration.
	PoolPath    string
	LexiconPath string
	CachePath   string
	RedisAddr   string
	AllowDrift  bool

	// Config is resolved from the environment and flags before any
	// subcommand runs.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the wordseed CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wordseed",
		Short: "wordseed - deterministic daily word sets",
		Long: `Operator tooling for the daily word association engine.

Derives daily seeds, previews per-user word sets, validates pool and lexicon
documents, audits fairness and runs reproducibility scenarios.

The HMAC secret is read from WORDSEED_SECRET only.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if err := resolveConfig(cmd, opts); err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.PoolPath, "pool", "", "word pool document (default $WORDSEED_POOL_PATH)")
	cmd.PersistentFlags().StringVar(&opts.LexiconPath, "lexicon", "", "lexicon document (default $WORDSEED_LEXICON_PATH)")
	cmd.PersistentFlags().StringVar(&opts.CachePath, "cache", "", "SQLite seed cache path (default $WORDSEED_CACHE_PATH)")
	cmd.PersistentFlags().StringVar(&opts.RedisAddr, "redis-addr", "", "Redis seed cache address (default $WORDSEED_REDIS_ADDR)")
	cmd.PersistentFlags().BoolVar(&opts.AllowDrift, "allow-lexicon-drift", false, "warn instead of fail on pool words missing from the lexicon")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewSampleCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewAuditCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolveConfig loads the environment and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("pool") {
		cfg.PoolPath = opts.PoolPath
	}
	if flags.Changed("lexicon") {
		cfg.LexiconPath = opts.LexiconPath
	}
	if flags.Changed("cache") {
		cfg.CachePath = opts.CachePath
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = opts.RedisAddr
	}
	if flags.Changed("allow-lexicon-drift") {
		cfg.AllowLexiconDrift = opts.AllowDrift
	}

	opts.Config = cfg
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

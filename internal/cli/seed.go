package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/seed"
	"github.com/roach88/wordseed/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Days   int
	Cached bool // list stored seeds instead of deriving
}

// seedLister is a seed cache that can list what it has stored.
type seedLister interface {
	ListRange(ctx context.Context, keyPrefix, first, last string) ([]model.DailySeed, error)
}

var _ seedLister = (*store.Store)(nil)

// SeedList is the seed command's output.
type SeedList []model.DailySeed

// String renders one line per seed.
func (l SeedList) String() string {
	if len(l) == 0 {
		return "No cached seeds in range."
	}
	var b strings.Builder
	for i, s := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %-14s %s  (pools %s, created %s)", s.Date, s.Theme, s.SeedHex, s.PoolsVersion, s.CreatedAt.Format(time.RFC3339))
	}
	return b.String()
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed [date]",
		Short: "Show the daily seed and theme",
		Long: `Derive the daily seed and theme for a date (default: today, UTC).

With --days N, derive N consecutive dates starting at date.

With --cached, list the seeds already stored in the SQLite seed cache for
this secret and pool instead of deriving them. Dates never requested are
absent from the listing.

Examples:
  wordseed seed
  wordseed seed 2025-10-15 --days 7
  wordseed seed 2025-10-01 --days 31 --cached --cache seeds.db
  wordseed seed 2025-10-15 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := today()
			if len(args) == 1 {
				date = args[0]
			}
			return runSeed(opts, date, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", 1, "number of consecutive days to derive")
	cmd.Flags().BoolVar(&opts.Cached, "cached", false, "list seeds stored in the SQLite cache instead of deriving")

	return cmd
}

func runSeed(opts *SeedOptions, date string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Days < 1 {
		return formatter.Fail("invalid --days", model.NewValidationError("cli.seed", fmt.Sprintf("days must be at least 1, got %d", opts.Days)))
	}
	start, err := seed.ParseDate(date)
	if err != nil {
		return formatter.Fail("invalid date", err)
	}
	last := start.AddDate(0, 0, opts.Days-1).Format(time.DateOnly)

	eng, cache, closeEngine, err := openEngine(cmd.Context(), opts.RootOptions, cmd)
	if err != nil {
		return formatter.Fail("failed to start engine", err)
	}
	defer closeEngine()

	if opts.Cached {
		lister, ok := cache.(seedLister)
		if !ok {
			return formatter.Fail("invalid --cached", model.NewConfigurationError("cli.seed", "--cached needs a SQLite seed cache (--cache or WORDSEED_CACHE_PATH)", nil))
		}
		// Keys are <namespace>:<date>, so the empty date yields the namespace.
		seeds, err := lister.ListRange(cmd.Context(), eng.CacheKey(""), date, last)
		if err != nil {
			return formatter.Fail("failed to list cached seeds", err)
		}
		formatter.VerboseLog("Found %d cached seed(s) between %s and %s", len(seeds), date, last)
		return formatter.Success(SeedList(seeds))
	}

	seeds, err := eng.Seeds(cmd.Context(), date, last)
	if err != nil {
		return formatter.Fail("failed to derive seeds", err)
	}

	return formatter.Success(SeedList(seeds))
}

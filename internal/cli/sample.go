package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wordseed/internal/engine"
	"github.com/roach88/wordseed/internal/model"
)

// SampleOptions holds flags for the sample command.
type SampleOptions struct {
	*RootOptions
	Date   string
	Count  int
	Detail bool
}

// SampleOutput is the sample command's output.
type SampleOutput struct {
	User      string            `json:"user"`
	Date      string            `json:"date"`
	Theme     string            `json:"theme"`
	Count     int               `json:"count"`
	Capacity  int               `json:"capacity"`
	Words     []string          `json:"words"`
	Selection *engine.Selection `json:"selection,omitempty"`

	detail bool
}

// String renders the words, with slot and cluster when detailed.
func (o SampleOutput) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d of %d words (capacity %d)\n", o.Date, o.Theme, len(o.Words), o.Count, o.Capacity)
	if !o.detail || o.Selection == nil {
		b.WriteString(strings.Join(o.Words, ", "))
		return b.String()
	}
	for i, c := range o.Selection.Words {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "  %-16s %-10s %s", c.Word, c.Slot, c.Cluster)
	}
	return b.String()
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SampleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sample <user-id>",
		Short: "Preview a user's word set",
		Long: `Compute the word set a user receives on a date.

The result is identical to what the engine serves for the same secret, pool,
user, date and count.

Examples:
  wordseed sample user-abc --date 2025-10-15
  wordseed sample user-abc --date 2025-10-15 --count 20 --detail`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "date (YYYY-MM-DD, default today UTC)")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 12, "number of words")
	cmd.Flags().BoolVar(&opts.Detail, "detail", false, "show slot and cluster per word")

	return cmd
}

func runSample(opts *SampleOptions, userID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	date := opts.Date
	if date == "" {
		date = today()
	}

	eng, _, closeEngine, err := openEngine(ctx, opts.RootOptions, cmd)
	if err != nil {
		return formatter.Fail("failed to start engine", err)
	}
	defer closeEngine()

	sel, err := eng.Select(ctx, userID, date, opts.Count)
	if err != nil {
		return formatter.Fail("failed to sample words", err)
	}
	capacity, err := eng.Capacity(ctx, date)
	if err != nil {
		return formatter.Fail("failed to compute capacity", err)
	}
	formatter.VerboseLog("user hash %s, cache key %s", model.HashUserID(userID), eng.CacheKey(date))

	out := SampleOutput{
		User:     userID,
		Date:     date,
		Theme:    sel.Seed.Theme,
		Count:    opts.Count,
		Capacity: capacity,
		Words:    sel.WordList(),
		detail:   opts.Detail,
	}
	if opts.Detail {
		out.Selection = &sel
	}
	return formatter.Success(out)
}

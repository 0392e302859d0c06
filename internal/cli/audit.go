package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wordseed/internal/audit"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
	Date   string
	Users  int
	Count  int
	Prefix string
	Top    int
}

// AuditOutput is the audit command's output.
type AuditOutput struct {
	audit.Report
}

// String renders the report as a short table.
func (o AuditOutput) String() string {
	r := o.Report
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d users, count %d, capacity %d\n", r.Date, r.Theme, r.Users, r.Count, r.Capacity)
	fmt.Fprintf(&b, "  distinct sets  %d (%.2f%%)\n", r.DistinctSets, 100*float64(r.DistinctSets)/float64(r.Users))
	fmt.Fprintf(&b, "  mean size      %.2f\n", r.MeanSize)
	fmt.Fprintf(&b, "  mean slots     %.2f\n", r.MeanSlots)
	b.WriteString("  most frequent ")
	for i, wc := range r.MostFrequent {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " %s (%d)", wc.Word, wc.Count)
	}
	return b.String()
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Measure word set fairness over synthetic users",
		Long: `Sample many synthetic users on one date and report how distinct and
how balanced their word sets are.

User ids are random UUIDv7 values unless --prefix is given, in which case
they are <prefix>-0, <prefix>-1, ... and the report is reproducible.

Examples:
  wordseed audit --date 2025-10-15 --users 10000
  wordseed audit --date 2025-10-15 --users 1000 --prefix audit --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "date (YYYY-MM-DD, default today UTC)")
	cmd.Flags().IntVar(&opts.Users, "users", 1000, "number of synthetic users")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 12, "words per user")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "use sequential user ids with this prefix")
	cmd.Flags().IntVar(&opts.Top, "top", 5, "most frequent words to report")

	return cmd
}

func runAudit(opts *AuditOptions, cmd *cobra.Command) error {
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

	var ids audit.UserIDGenerator = audit.UUIDv7Generator{}
	if opts.Prefix != "" {
		ids = audit.NewSequenceGenerator(opts.Prefix)
	}
	formatter.VerboseLog("Auditing %d users on %s", opts.Users, date)

	report, err := audit.Run(ctx, eng, audit.Options{
		Date:  date,
		Users: opts.Users,
		Count: opts.Count,
		IDs:   ids,
		Top:   opts.Top,
	})
	if err != nil {
		return formatter.Fail("audit failed", err)
	}

	return formatter.Success(AuditOutput{Report: report})
}

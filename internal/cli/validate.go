package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wordseed/internal/lexicon"
	"github.com/roach88/wordseed/internal/sampler"
)

// ThemeCapacity is the most words one theme can serve.
type ThemeCapacity struct {
	Theme    string `json:"theme"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid          bool                      `json:"valid"`
	PoolVersion    string                    `json:"pool_version,omitempty"`
	LexiconVersion string                    `json:"lexicon_version,omitempty"`
	Fingerprint    string                    `json:"fingerprint,omitempty"`
	Themes         []ThemeCapacity           `json:"themes,omitempty"`
	Errors         []lexicon.ValidationError `json:"errors,omitempty"`
	Warnings       []lexicon.ValidationError `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the word pool and lexicon",
		Long: `Validate the word pool and lexicon documents.

Checks document shape against the CUE schema, then pool and lexicon
consistency. On success, prints the per-theme capacity.

Exit codes:
  0 - Documents valid
  1 - Validation errors found
  2 - Command error (missing files, etc.)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	cfg := opts.Config

	formatter.VerboseLog("Validating %s and %s", cfg.PoolPath, cfg.LexiconPath)

	cat, err := lexicon.LoadFiles(cfg.PoolPath, cfg.LexiconPath, cfg.LexiconOptions())
	if err != nil {
		var verrs lexicon.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, verrs)
		}
		return formatter.Fail("failed to load documents", err)
	}

	s := sampler.New(nil)
	result := ValidationResult{
		Valid:          true,
		PoolVersion:    cat.Version(),
		LexiconVersion: cat.LexiconVersion(),
		Fingerprint:    cat.Fingerprint(),
		Warnings:       cat.Warnings(),
	}
	for _, key := range cat.ThemeKeys() {
		theme, _ := cat.Theme(key)
		result.Themes = append(result.Themes, ThemeCapacity{
			Theme:    key,
			Name:     theme.Name,
			Capacity: s.Capacity(theme, cat.Lexicon()),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "warning %s: %s: %s\n", warn.Code, warn.Field, warn.Message)
	}
	fmt.Fprintf(w, "✓ Pool %s and lexicon %s valid (%s)\n", result.PoolVersion, result.LexiconVersion, result.Fingerprint)
	for _, tc := range result.Themes {
		fmt.Fprintf(w, "  %-14s capacity %d\n", tc.Theme, tc.Capacity)
	}
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs lexicon.ValidationErrors) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

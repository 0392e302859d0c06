package harness

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/wordseed/internal/audit"
	"github.com/roach88/wordseed/internal/engine"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %s, actual %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions runs all assertions and returns failure messages.
func EvaluateAssertions(ctx context.Context, eng *engine.Engine, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(ctx, eng, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(ctx context.Context, eng *engine.Engine, a Assertion) error {
	switch a.Type {
	case AssertDistinctSets:
		return assertDistinctSets(ctx, eng, a)
	case AssertDateSensitivity:
		return assertDateSensitivity(ctx, eng, a)
	case AssertStableSeed:
		return assertStableSeed(ctx, eng, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertDistinctSets samples a.Users sequential synthetic users and requires
// every set to differ.
func assertDistinctSets(ctx context.Context, eng *engine.Engine, a Assertion) error {
	report, err := audit.Run(ctx, eng, audit.Options{
		Date:  a.Date,
		Users: a.Users,
		Count: a.Count,
		IDs:   audit.NewSequenceGenerator("scenario-user"),
	})
	if err != nil {
		return err
	}
	if report.DistinctSets != a.Users {
		return &AssertionError{
			Type:     AssertDistinctSets,
			Expected: fmt.Sprintf("%d distinct sets", a.Users),
			Actual:   fmt.Sprintf("%d distinct sets", report.DistinctSets),
		}
	}
	return nil
}

// assertDateSensitivity requires different seeds and word sets on two dates.
func assertDateSensitivity(ctx context.Context, eng *engine.Engine, a Assertion) error {
	first, err := eng.Select(ctx, a.User, a.Dates[0], a.Count)
	if err != nil {
		return err
	}
	second, err := eng.Select(ctx, a.User, a.Dates[1], a.Count)
	if err != nil {
		return err
	}

	if first.Seed.SeedHex == second.Seed.SeedHex {
		return &AssertionError{
			Type:     AssertDateSensitivity,
			Expected: "different seeds",
			Actual:   fmt.Sprintf("both dates derived %s", first.Seed.SeedHex),
		}
	}
	if slices.Equal(first.WordList(), second.WordList()) {
		return &AssertionError{
			Type:     AssertDateSensitivity,
			Expected: "different word sets",
			Actual:   fmt.Sprintf("both dates returned %v", first.WordList()),
		}
	}
	return nil
}

// assertStableSeed requires two derivations of a date to be identical,
// including CreatedAt.
func assertStableSeed(ctx context.Context, eng *engine.Engine, a Assertion) error {
	first, err := eng.DeriveDailySeed(ctx, a.Date)
	if err != nil {
		return err
	}
	second, err := eng.DeriveDailySeed(ctx, a.Date)
	if err != nil {
		return err
	}
	if first != second {
		return &AssertionError{
			Type:     AssertStableSeed,
			Expected: fmt.Sprintf("%+v", first),
			Actual:   fmt.Sprintf("%+v", second),
		}
	}
	return nil
}

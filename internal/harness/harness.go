package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/wordseed/internal/config"
	"github.com/roach88/wordseed/internal/engine"
	"github.com/roach88/wordseed/internal/lexicon"
	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/store"
	"github.com/roach88/wordseed/internal/testutil"
)

// Harness executes one scenario against one engine.
type Harness struct {
	engine *engine.Engine
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs with a fresh in-memory seed cache and a clock pinned to
// testutil.Epoch for isolation.
//
// Execution flow:
// 1. Load the catalog and build the engine
// 2. Execute steps, checking expectations and built-in invariants
// 3. Evaluate assertions
// 4. Return result with pass/fail, trace, and errors
//
// A returned error means the scenario could not run at all, for example an
// invalid secret or pool.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	cat, err := lexicon.LoadFiles(scenario.Pool, scenario.Lexicon, lexicon.Options{AllowMissingEntries: scenario.AllowLexiconDrift})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := config.DiscardLogger()
	eng, err := engine.New(cat, scenario.Secret,
		engine.WithCache(st),
		engine.WithClock(testutil.NewFixedClock()),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	h := &Harness{engine: eng, logger: logger}
	result := NewResult()

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scenario cancelled at step %d: %w", i, err)
		}
		h.executeStep(ctx, i, step, result)
	}

	for _, msg := range EvaluateAssertions(ctx, eng, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// executeStep runs one step and records its trace event and failures.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) {
	var (
		ev  TraceEvent
		err error
	)

	switch {
	case step.Seed != nil:
		ev = TraceEvent{Step: index, Op: OpSeed, Date: step.Seed.Date}
		var ds model.DailySeed
		ds, err = h.engine.DeriveDailySeed(ctx, step.Seed.Date)
		if err == nil {
			ev.Theme = ds.Theme
			ev.Seed = ds.SeedHex
		}

	case step.Sample != nil:
		s := step.Sample
		ev = TraceEvent{Step: index, Op: OpSample, Date: s.Date, User: s.User, Count: s.Count}
		var sel engine.Selection
		sel, err = h.engine.Select(ctx, s.User, s.Date, s.Count)
		if err == nil {
			ev.Theme = sel.Seed.Theme
			ev.Words = sel.WordList()
			for _, msg := range CheckSelection(ctx, h.engine, s.User, s.Count, sel) {
				result.AddError(fmt.Sprintf("steps[%d]: %s", index, msg))
			}
		}
	}

	if err != nil {
		ev.Error = string(model.KindOf(err))
		ev.Detail = err.Error()
	}
	result.Trace = append(result.Trace, ev)

	for _, msg := range checkExpect(ev, step.Expect) {
		result.AddError(fmt.Sprintf("steps[%d]: %s", index, msg))
	}
}

// checkExpect compares a trace event with the step's expectation.
// A step without expectation must succeed.
func checkExpect(ev TraceEvent, expect *Expect) []string {
	if expect == nil {
		if ev.Error != "" {
			return []string{fmt.Sprintf("unexpected error: %s", ev.Detail)}
		}
		return nil
	}

	if expect.Error != "" {
		if ev.Error == "" {
			return []string{fmt.Sprintf("expected %s error, got success", expect.Error)}
		}
		if ev.Error != expect.Error {
			return []string{fmt.Sprintf("expected %s error, got %s", expect.Error, ev.Detail)}
		}
		return nil
	}
	if ev.Error != "" {
		return []string{fmt.Sprintf("unexpected error: %s", ev.Detail)}
	}

	var errs []string
	if expect.Theme != "" && ev.Theme != expect.Theme {
		errs = append(errs, fmt.Sprintf("theme = %q, want %q", ev.Theme, expect.Theme))
	}
	if expect.SeedHex != "" && ev.Seed != expect.SeedHex {
		errs = append(errs, fmt.Sprintf("seed_hex = %s, want %s", ev.Seed, expect.SeedHex))
	}
	if expect.Words != nil && !hasPrefix(ev.Words, expect.Words) {
		errs = append(errs, fmt.Sprintf("words = %v, want prefix %v", ev.Words, expect.Words))
	}
	if expect.Size != nil && len(ev.Words) != *expect.Size {
		errs = append(errs, fmt.Sprintf("size = %d, want %d", len(ev.Words), *expect.Size))
	}
	return errs
}

func hasPrefix(got, prefix []string) bool {
	if len(prefix) > len(got) {
		return false
	}
	for i := range prefix {
		if got[i] != prefix[i] {
			return false
		}
	}
	return true
}

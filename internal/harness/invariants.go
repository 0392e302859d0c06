package harness

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/wordseed/internal/engine"
)

// CheckSelection verifies the properties every word set must have and
// returns one message per violation.
func CheckSelection(ctx context.Context, eng *engine.Engine, userID string, count int, sel engine.Selection) []string {
	var errs []string

	theme, ok := eng.Catalog().Theme(sel.Seed.Theme)
	if !ok {
		return []string{fmt.Sprintf("theme %q not in catalog", sel.Seed.Theme)}
	}
	members := make(map[string]bool)
	for _, slot := range theme.Slots {
		for _, w := range slot.Words {
			members[w] = true
		}
	}

	words := make(map[string]bool, len(sel.Words))
	clusters := make(map[string]string, len(sel.Words))
	for _, c := range sel.Words {
		if words[c.Word] {
			errs = append(errs, fmt.Sprintf("word %q repeated", c.Word))
		}
		words[c.Word] = true
		if prev, dup := clusters[c.Cluster]; dup {
			errs = append(errs, fmt.Sprintf("words %q and %q share cluster %q", prev, c.Word, c.Cluster))
		}
		clusters[c.Cluster] = c.Word
		if !members[c.Word] {
			errs = append(errs, fmt.Sprintf("word %q is not in theme %q", c.Word, sel.Seed.Theme))
		}
	}

	capacity, err := eng.Capacity(ctx, sel.Seed.Date)
	if err != nil {
		errs = append(errs, fmt.Sprintf("capacity: %v", err))
	} else if want := min(count, capacity); len(sel.Words) != want {
		errs = append(errs, fmt.Sprintf("size = %d, want min(%d, %d) = %d", len(sel.Words), count, capacity, want))
	}

	again, err := eng.SampleWords(ctx, userID, sel.Seed.Date, count)
	if err != nil {
		errs = append(errs, fmt.Sprintf("re-run failed: %v", err))
	} else if !slices.Equal(again, sel.WordList()) {
		errs = append(errs, fmt.Sprintf("re-run returned %v, first run %v", again, sel.WordList()))
	}

	return errs
}

// Package audit measures fairness of a day's word sets over synthetic users.
//
// A report answers: do distinct users get distinct sets, how large are the
// sets relative to theme capacity, and how evenly are slots covered.
package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/wordseed/internal/engine"
	"github.com/roach88/wordseed/internal/model"
)

// MaxUsers bounds a single audit run.
const MaxUsers = 100000

// Options configures an audit run.
type Options struct {
	Date  string
	Users int
	Count int
	// IDs defaults to UUIDv7Generator.
	IDs UserIDGenerator
	// Top is the number of most frequent words reported. Default 5.
	Top int
}

// WordCount is a word and the number of sets it appeared in.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Report summarises one audit run.
type Report struct {
	Date         string         `json:"date"`
	Theme        string         `json:"theme"`
	Users        int            `json:"users"`
	Count        int            `json:"count"`
	Capacity     int            `json:"capacity"`
	DistinctSets int            `json:"distinct_sets"`
	MeanSize     float64        `json:"mean_size"`
	MeanSlots    float64        `json:"mean_slots"`
	SlotWords    map[string]int `json:"slot_words"`
	MostFrequent []WordCount    `json:"most_frequent"`
}

// Run samples Users synthetic users on Date and aggregates the results.
func Run(ctx context.Context, e *engine.Engine, opts Options) (Report, error) {
	if opts.Users < 1 || opts.Users > MaxUsers {
		return Report{}, model.NewValidationError("audit.Run", fmt.Sprintf("users must be between 1 and %d, got %d", MaxUsers, opts.Users))
	}
	ids := opts.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	top := opts.Top
	if top <= 0 {
		top = 5
	}

	capacity, err := e.Capacity(ctx, opts.Date)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Date:      opts.Date,
		Users:     opts.Users,
		Count:     opts.Count,
		Capacity:  capacity,
		SlotWords: make(map[string]int),
	}

	sets := make(map[string]struct{}, opts.Users)
	words := make(map[string]int)
	totalWords, totalSlots := 0, 0

	for i := 0; i < opts.Users; i++ {
		if err := ctx.Err(); err != nil {
			return Report{}, fmt.Errorf("audit cancelled after %d users: %w", i, err)
		}

		sel, err := e.Select(ctx, ids.Generate(), opts.Date, opts.Count)
		if err != nil {
			return Report{}, err
		}
		report.Theme = sel.Seed.Theme

		sets[strings.Join(sel.WordList(), "\x00")] = struct{}{}
		slots := make(map[string]bool)
		for _, c := range sel.Words {
			words[c.Word]++
			report.SlotWords[c.Slot]++
			slots[c.Slot] = true
		}
		totalWords += len(sel.Words)
		totalSlots += len(slots)
	}

	report.DistinctSets = len(sets)
	report.MeanSize = float64(totalWords) / float64(opts.Users)
	report.MeanSlots = float64(totalSlots) / float64(opts.Users)
	report.MostFrequent = mostFrequent(words, top)
	return report, nil
}

// mostFrequent returns the n highest counts, ties broken by canonical word order.
func mostFrequent(counts map[string]int, n int) []WordCount {
	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return model.CompareCanonical(out[i].Word, out[j].Word) < 0
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

package sampler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/wordseed/internal/model"
)

// Bounds on the requested set size.
const (
	MinCount = 1
	MaxCount = 100
)

// Source supplies uniform draws in [0, n). *stream.Stream satisfies it.
type Source interface {
	Intn(n int) int
}

// Candidate is a theme word with its classification.
type Candidate struct {
	Word    string `json:"word"`
	Slot    string `json:"slot"`
	Cluster string `json:"cluster"`
}

// Bucket holds the candidates of one slot in pool order.
type Bucket struct {
	Slot       string
	Candidates []Candidate
}

// Sampler draws word sets.
//
// Thread-safety: Sampler holds no per-call state and is safe for concurrent use.
type Sampler struct {
	logger *slog.Logger
}

// New creates a Sampler that reports skipped words to logger.
// A nil logger discards warnings.
func New(logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sampler{logger: logger}
}

// ValidateCount checks count against [MinCount, MaxCount].
func ValidateCount(count int) error {
	if count < MinCount || count > MaxCount {
		return model.NewValidationError("sampler.Sample", fmt.Sprintf("count must be between %d and %d, got %d", MinCount, MaxCount, count))
	}
	return nil
}

// Sample returns min(count, distinct clusters available) words.
func (s *Sampler) Sample(theme model.Theme, lex model.Lexicon, src Source, count int) ([]string, error) {
	picked, err := s.SampleCandidates(theme, lex, src, count)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(picked))
	for i, c := range picked {
		words[i] = c.Word
	}
	return words, nil
}

// SampleCandidates is Sample returning each word's classification as well.
func (s *Sampler) SampleCandidates(theme model.Theme, lex model.Lexicon, src Source, count int) ([]Candidate, error) {
	if err := ValidateCount(count); err != nil {
		return nil, err
	}

	buckets := s.Buckets(theme, lex)
	if len(buckets) == 0 {
		return nil, model.NewInternalError("sampler.Sample", fmt.Sprintf("theme %q has zero usable candidates", theme.Name), nil)
	}

	return roundRobin(buckets, src, count), nil
}

// Buckets builds the slot buckets for theme in canonical slot order.
// Pool words without a lexicon entry are skipped and logged.
func (s *Sampler) Buckets(theme model.Theme, lex model.Lexicon) []Bucket {
	seen := make(map[string]bool)
	bySlot := make(map[string][]Candidate)

	for _, slotKey := range theme.SlotKeys() {
		for _, word := range theme.Slots[slotKey].Words {
			if seen[word] {
				continue
			}
			c, ok := lex.Lookup(word)
			if !ok {
				s.logger.Warn("pool word has no lexicon entry; skipping",
					"theme", theme.Name,
					"slot", slotKey,
					"word", word,
				)
				continue
			}
			seen[word] = true
			bySlot[c.Slot] = append(bySlot[c.Slot], Candidate{Word: word, Slot: c.Slot, Cluster: c.Cluster})
		}
	}

	buckets := make([]Bucket, 0, len(bySlot))
	for _, slot := range model.SortedKeys(bySlot) {
		buckets = append(buckets, Bucket{Slot: slot, Candidates: bySlot[slot]})
	}
	return buckets
}

// Capacity returns the number of distinct clusters among usable candidates,
// the largest set Sample can return for theme.
func (s *Sampler) Capacity(theme model.Theme, lex model.Lexicon) int {
	clusters := make(map[string]bool)
	for _, b := range s.Buckets(theme, lex) {
		for _, c := range b.Candidates {
			clusters[c.Cluster] = true
		}
	}
	return len(clusters)
}

// roundRobin runs the selection loop. Every iteration either picks a word or
// retires a bucket, so it terminates after at most count+len(buckets) turns.
func roundRobin(buckets []Bucket, src Source, count int) []Candidate {
	active := make([]Bucket, len(buckets))
	copy(active, buckets)

	picked := make([]Candidate, 0, count)
	chosen := make(map[string]bool, count)
	usedClusters := make(map[string]bool, count)
	eligible := make([]Candidate, 0)

	pos := 0
	for len(picked) < count && len(active) > 0 {
		if pos >= len(active) {
			pos = 0
		}

		eligible = eligible[:0]
		for _, c := range active[pos].Candidates {
			if !chosen[c.Word] && !usedClusters[c.Cluster] {
				eligible = append(eligible, c)
			}
		}

		if len(eligible) == 0 {
			active = append(active[:pos], active[pos+1:]...)
			continue
		}

		c := eligible[src.Intn(len(eligible))]
		picked = append(picked, c)
		chosen[c.Word] = true
		usedClusters[c.Cluster] = true
		pos = (pos + 1) % len(active)
	}

	return picked
}

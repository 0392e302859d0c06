package model

import (
	"time"
)

// WordPool is the curated theme/slot/word document.
type WordPool struct {
	Version Version          `json:"version" yaml:"version"`
	Themes  map[string]Theme `json:"themes" yaml:"themes"`
}

// Theme is a named grouping of word slots assigned to a day's puzzle.
type Theme struct {
	Name  string          `json:"name" yaml:"name"`
	Slots map[string]Slot `json:"slots" yaml:"slots"`
}

// Slot is a semantic category within a theme.
type Slot struct {
	Words []string `json:"words" yaml:"words"`
}

// Lexicon maps every candidate word to its classification.
type Lexicon struct {
	Version  Version                   `json:"version" yaml:"version"`
	Mappings map[string]Classification `json:"mappings" yaml:"mappings"`
}

// Classification places a word in a slot and a cluster of near-synonyms.
// At most one word per cluster may appear in a generated set.
type Classification struct {
	Slot    string `json:"slot" yaml:"slot"`
	Cluster string `json:"cluster" yaml:"cluster"`
}

// ThemeKeys returns the pool's theme keys in canonical order.
func (p WordPool) ThemeKeys() []string {
	return SortedKeys(p.Themes)
}

// SlotKeys returns the theme's slot keys in canonical order.
func (t Theme) SlotKeys() []string {
	return SortedKeys(t.Slots)
}

// Lookup returns the classification for word.
func (l Lexicon) Lookup(word string) (Classification, bool) {
	c, ok := l.Mappings[word]
	return c, ok
}

// DailySeed anchors all randomness for one calendar date.
//
// A DailySeed is a pure function of (secret, date, sorted theme keys); only
// CreatedAt depends on when it was first computed.
type DailySeed struct {
	Date         string    `json:"date"`
	SeedHex      string    `json:"seed_hex"`
	Theme        string    `json:"theme"`
	PoolsVersion string    `json:"pools_version"`
	CreatedAt    time.Time `json:"created_at"`
}

// SameDerivation reports whether two seeds carry identical derived fields.
// CreatedAt is ignored.
func (s DailySeed) SameDerivation(o DailySeed) bool {
	return s.Date == o.Date &&
		s.SeedHex == o.SeedHex &&
		s.Theme == o.Theme &&
		s.PoolsVersion == o.PoolsVersion
}

// Package harness runs YAML scenarios against a real engine.
//
// Each scenario builds its own engine from the pool and lexicon it names,
// with a fixed clock and a fresh in-memory SQLite seed cache, then executes
// its steps in order and records a trace.
//
// # Scenario Format
//
//	name: city_nights_reference
//	description: "Reference outputs for 2025-10-15"
//	secret: "0000...0000"
//	pool: ../../data/pools.json
//	lexicon: ../../data/lexicon.json
//	steps:
//	  - seed: { date: "2025-10-15" }
//	    expect: { theme: city-nights }
//	  - sample: { user: user-abc, date: "2025-10-15", count: 12 }
//	    expect: { words: [hustle, flickering] }
//	  - sample: { user: "", date: "2025-10-15", count: 12 }
//	    expect: { error: VALIDATION }
//	assertions:
//	  - type: distinct_sets
//	    date: "2025-10-15"
//	    users: 200
//	    count: 12
//
// Pool and lexicon paths are relative to the scenario file.
//
// # Built-in Checks
//
// Every successful sample step is checked, with no scenario text required, for:
//
//   - no repeated word and no repeated cluster
//   - every word belongs to the seed's theme
//   - size equals min(count, theme capacity)
//   - a second identical call returns the identical list
//
// # Assertion Types
//
//   - distinct_sets: N synthetic users on a date receive pairwise-distinct sets
//   - date_sensitivity: one user on two dates gets different seeds and sets
//   - stable_seed: deriving a date twice returns the same seed and created_at
//
// # Golden Traces
//
// RunWithGolden compares the canonical JSON trace against
// testdata/golden/<name>.golden. CreatedAt is excluded from traces.
package harness

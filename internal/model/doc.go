// Package model provides the foundational types for wordseed.
//
// This package contains the word pool and lexicon documents, the daily seed
// record, the error taxonomy and the canonical ordering and hashing helpers
// every other package relies on. model imports nothing internal, so it stays
// the bottom layer with no circular dependencies.
//
// Key design constraints:
//   - Canonical ordering is UTF-16 code unit order, never Go map iteration order
//   - Canonical JSON has no floats and no HTML escaping
//   - Raw user identifiers never leave the process boundary; use HashUserID
//   - All JSON tags use snake_case
package model

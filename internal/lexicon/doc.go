// Package lexicon loads and validates the word pool and lexicon documents.
//
// Loading happens once at startup and runs in three passes:
//
//  1. Decode: JSON, or YAML for .yaml/.yml files, with unknown fields rejected
//  2. Shape: the raw document is unified with an embedded CUE schema
//     (#WordPool or #Lexicon)
//  3. Semantics: emptiness rules and pool/lexicon consistency, reported with
//     stable E2xx codes
//
// A successful load yields an immutable Catalog. Words and lexicon keys are
// NFC normalized so that lookups never depend on how a word was typed.
//
// Any failure is a model.KindConfiguration error; the process must not begin
// serving.
package lexicon

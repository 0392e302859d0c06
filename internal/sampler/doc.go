// Package sampler selects a fairness-constrained word set for one user.
//
// Selection rules:
//   - Candidates are every word in every slot of the theme, in canonical slot
//     order then pool order, annotated with the lexicon's (slot, cluster).
//     A word listed twice is kept once; a word with no lexicon entry is
//     skipped with a warning.
//   - Candidates are bucketed by slot and buckets rotate round-robin in
//     canonical slot order.
//   - At each turn the current bucket's eligible words are those not chosen
//     and whose cluster is unused. One is drawn uniformly from the stream.
//   - A bucket with nothing eligible leaves the rotation without consuming a
//     draw; the bucket that slides into its position takes the turn.
//   - Selection stops at count words or when every bucket has left.
//
// Output is in selection order with no repeated word and no repeated cluster.
// The result is a pure function of (theme, lexicon, stream, count).
package sampler

// Package engine is the deterministic fair-sampling facade.
//
// An Engine binds a loaded catalog to the deployment secret and answers two
// questions: which seed and theme belong to a date, and which words a user
// receives for that date. Both answers are pure functions of the inputs and
// the catalog; only DailySeed.CreatedAt depends on when a seed was first seen.
//
// Control flow for SampleWords:
//
//  1. Validate userID, date and count (ValidationError on failure).
//  2. Resolve the daily seed through the seed generator and its cache.
//  3. Open a per-user stream keyed by (seed, userID).
//  4. Run the sampler over the seed's theme.
//
// Internal errors are logged with the operation, date, count and a hash of
// the user id. Raw user ids never reach the log.
package engine

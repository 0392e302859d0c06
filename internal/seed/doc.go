// Package seed derives the per-day seed and theme.
//
// A DailySeed is a pure function of (secret, date, canonically sorted theme
// keys):
//
//	seed_hex = hex(HMAC-SHA256(secret, date))
//	theme    = themeKeys[uint32be(digest[0:4]) % len(themeKeys)]
//
// Any number of processes computing the seed for the same inputs agree byte
// for byte. The Cache only stabilizes CreatedAt; it is never a source of
// truth. Concurrent first requests for a date may both derive the seed, which
// is harmless because they compute the identical value.
package seed

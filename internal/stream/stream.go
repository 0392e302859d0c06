// Package stream turns (daily seed, user id) into a reproducible sequence of
// uniformly distributed draws.
//
// Block i of the stream is
//
//	HMAC-SHA256(key = ascii(seed_hex), msg = NFC(user_id) || uint64be(i))
//
// and each 32-byte block yields eight big-endian uint32 sub-values in order.
// Blocks are generated lazily: the draw counter is the only state, so memory
// stays constant no matter how many values are consumed.
package stream

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"math"

	"github.com/roach88/wordseed/internal/model"
)

const wordSize = 4

// Stream is a deterministic per-user draw sequence.
//
// Thread-safety: Stream is NOT safe for concurrent use. Each request opens
// its own stream.
type Stream struct {
	mac     hash.Hash
	user    []byte
	counter uint64
	block   []byte
	offset  int
}

// Open opens the stream for a user on the seed's date.
// Returns a model.KindValidation error for an empty user id.
func Open(seed model.DailySeed, userID string) (*Stream, error) {
	if userID == "" {
		return nil, model.NewValidationError("stream.Open", "user id must not be empty")
	}
	if seed.SeedHex == "" {
		return nil, model.NewInternalError("stream.Open", "daily seed has no seed_hex", nil)
	}
	return New(seed.SeedHex, userID), nil
}

// New creates a stream from a raw seed hex string and user id.
// Callers are responsible for rejecting empty user ids.
func New(seedHex, userID string) *Stream {
	return &Stream{
		mac:    hmac.New(sha256.New, []byte(seedHex)),
		user:   []byte(model.NormalizeUserID(userID)),
		offset: sha256.Size, // forces the first block on first draw
	}
}

// Uint32 returns the next 32-bit sub-value.
func (s *Stream) Uint32() uint32 {
	if s.offset >= len(s.block) {
		s.nextBlock()
	}
	v := binary.BigEndian.Uint32(s.block[s.offset : s.offset+wordSize])
	s.offset += wordSize
	return v
}

// Intn returns a uniform value in [0, n).
//
// Values at or above the largest multiple of n below 2^32 are rejected and
// redrawn, so there is no modulo bias. Panics if n <= 0 or n > 2^32-1.
func (s *Stream) Intn(n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		panic(fmt.Sprintf("stream: Intn argument out of range: %d", n))
	}
	bound := uint64(n)
	limit := (uint64(1) << 32) / bound * bound
	for {
		v := uint64(s.Uint32())
		if v < limit {
			return int(v % bound)
		}
	}
}

// Blocks returns how many HMAC blocks have been generated so far.
func (s *Stream) Blocks() uint64 {
	return s.counter
}

func (s *Stream) nextBlock() {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], s.counter)

	s.mac.Reset()
	s.mac.Write(s.user)
	s.mac.Write(idx[:])
	s.block = s.mac.Sum(s.block[:0])

	s.counter++
	s.offset = 0
}

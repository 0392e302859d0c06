package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for hashed identifiers.
// Version suffix enables future algorithm migration.
const (
	DomainPoolFingerprint = "wordseed/pool-fingerprint/v1"
	DomainUserLog         = "wordseed/user-log/v1"
)

// userHashLen is the number of hex characters kept from a user hash.
const userHashLen = 16

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeUserID returns the NFC form of a user identifier.
// Visually identical ids in composed and decomposed form map to one stream.
func NormalizeUserID(userID string) string {
	return norm.NFC.String(userID)
}

// HashUserID returns a short, stable digest of a user id for logs.
// Raw user ids are never logged.
func HashUserID(userID string) string {
	return hashWithDomain(DomainUserLog, []byte(NormalizeUserID(userID)))[:userHashLen]
}

// PoolFingerprint identifies everything about a pool that influences seed
// derivation: its version tag and its canonically ordered theme keys.
func PoolFingerprint(pool WordPool) (string, error) {
	doc := map[string]any{
		"pools_version": pool.Version.String(),
		"themes":        pool.ThemeKeys(),
	}
	data, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("PoolFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPoolFingerprint, data), nil
}

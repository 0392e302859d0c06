package seed

import (
	"encoding/hex"
	"strings"

	"github.com/roach88/wordseed/internal/model"
)

// ParseSecret decodes the hex-encoded server secret.
// The decoded bytes are the HMAC key. Surrounding whitespace is ignored.
func ParseSecret(secretHex string) ([]byte, error) {
	s := strings.TrimSpace(secretHex)
	if s == "" {
		return nil, model.NewConfigurationError("seed.ParseSecret", "secret is missing or empty", nil)
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, model.NewConfigurationError("seed.ParseSecret", "secret is not a valid hex string", err)
	}
	return key, nil
}

package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/oarkflow/shamir"
)

// Split divides secret into parts hex-encoded Shamir shares, any threshold
// of which rebuild it.
func Split(secret []byte, parts, threshold int) ([]string, error) {
	if threshold < 2 || threshold > parts || parts > 255 {
		return nil, fmt.Errorf("invalid share threshold %d of %d", threshold, parts)
	}
	raw, err := shamir.Split(secret, threshold, parts)
	if err != nil {
		return nil, fmt.Errorf("split secret: %w", err)
	}
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = hex.EncodeToString(s)
	}
	return out, nil
}

// Combine rebuilds a secret from hex-encoded shares.
func Combine(shares []string) ([]byte, error) {
	if len(shares) < 2 {
		return nil, fmt.Errorf("at least two shares are required, got %d", len(shares))
	}
	raw := make([][]byte, len(shares))
	for i, s := range shares {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		raw[i] = b
	}
	secret, err := shamir.Combine(raw)
	if err != nil {
		return nil, fmt.Errorf("combine shares: %w", err)
	}
	return secret, nil
}

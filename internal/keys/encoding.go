package keys

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Encoding names a textual form of key material.
type Encoding string

const (
	EncodingBase64 Encoding = "base64"
	EncodingHex    Encoding = "hex"
)

// ParseEncoding accepts "base64" or "hex".
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncodingBase64:
		return EncodingBase64, nil
	case EncodingHex:
		return EncodingHex, nil
	}
	return "", fmt.Errorf("unknown key encoding %q", s)
}

// Encode renders key in e. Base64 output is unpadded URL-safe.
func Encode(key []byte, e Encoding) string {
	if e == EncodingHex {
		return hex.EncodeToString(key)
	}
	return base64.RawURLEncoding.EncodeToString(key)
}

// Decode reads key material given as base64 (any alphabet, padded or not),
// hex, or the raw characters themselves. The result must be one of sizes.
func Decode(input string, sizes ...int) ([]byte, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: key is empty", ErrKeyDecode)
	}
	fits := func(b []byte, err error) bool {
		return err == nil && slices.Contains(sizes, len(b))
	}
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(trimmed); fits(b, err) {
			return b, nil
		}
	}
	if b, err := hex.DecodeString(trimmed); fits(b, err) {
		return b, nil
	}
	if b := []byte(trimmed); fits(b, nil) {
		return b, nil
	}
	return nil, fmt.Errorf("%w: want %v bytes", ErrKeyDecode, sizes)
}

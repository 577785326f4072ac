package paseto

import (
	"encoding/base64"
	"encoding/binary"
)

// b64 is strict so that every token has exactly one textual form.
var b64 = base64.RawURLEncoding.Strict()

// EncodeBase64URL returns raw URL-safe base64 encoding
func EncodeBase64URL(data []byte) string {
	return b64.EncodeToString(data)
}

// DecodeBase64URL decodes an unpadded URL-safe base64 string.
// Padding, line breaks and any other character outside the alphabet are rejected.
func DecodeBase64URL(data string) ([]byte, error) {
	for i := 0; i < len(data); i++ {
		if !isBase64URLChar(data[i]) {
			return nil, ErrMalformedEncoding
		}
	}
	raw, err := b64.DecodeString(data)
	if err != nil {
		return nil, ErrMalformedEncoding
	}
	return raw, nil
}

func isBase64URLChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// PAE is the pre-authentication encoding: LE64(count) followed by LE64(len)||bytes for each piece.
func PAE(pieces ...[]byte) []byte {
	size := 8
	for _, p := range pieces {
		size += 8 + len(p)
	}
	buf := make([]byte, 0, size)
	buf = appendLE64(buf, len(pieces))
	for _, p := range pieces {
		buf = appendLE64(buf, len(p))
		buf = append(buf, p...)
	}
	return buf
}

// appendLE64 clears the top bit as required for interoperability with signed 64-bit readers.
func appendLE64(buf []byte, n int) []byte {
	return binary.LittleEndian.AppendUint64(buf, uint64(n)&^(1<<63))
}

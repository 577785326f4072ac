package paseto

import (
	"strings"
)

// Header strings. They are mutually exclusive, so a prefix match is unambiguous.
const (
	headerV2Local  = "v2.local."
	headerV2Public = "v2.public."
	headerV4Local  = "v4.local."
	headerV4Public = "v4.public."
)

// header returns the fixed header for a version and purpose pair.
func header(v Version, p Purpose) (string, bool) {
	switch {
	case v == Version2 && p == PurposeLocal:
		return headerV2Local, true
	case v == Version2 && p == PurposePublic:
		return headerV2Public, true
	case v == Version4 && p == PurposeLocal:
		return headerV4Local, true
	case v == Version4 && p == PurposePublic:
		return headerV4Public, true
	}
	return "", false
}

// splitHeader matches s against the known headers.
func splitHeader(s string) (Version, Purpose, string, bool) {
	switch {
	case strings.HasPrefix(s, headerV2Local):
		return Version2, PurposeLocal, s[len(headerV2Local):], true
	case strings.HasPrefix(s, headerV2Public):
		return Version2, PurposePublic, s[len(headerV2Public):], true
	case strings.HasPrefix(s, headerV4Local):
		return Version4, PurposeLocal, s[len(headerV4Local):], true
	case strings.HasPrefix(s, headerV4Public):
		return Version4, PurposePublic, s[len(headerV4Public):], true
	}
	return 0, "", "", false
}

// Token is a decoded but unverified PASETO token.
type Token struct {
	Version Version
	Purpose Purpose
	// Payload is nonce||ciphertext||tag for local tokens and message||signature for public ones.
	Payload []byte
	// Footer is nil when the token carries no footer segment.
	Footer []byte
}

// Header returns the header string of t, e.g. "v4.local.".
func (t *Token) Header() string {
	h, _ := header(t.Version, t.Purpose)
	return h
}

// String formats t. It returns an empty string for an unknown version and purpose pair.
func (t *Token) String() string {
	s, err := Format(t.Version, t.Purpose, t.Payload, t.Footer)
	if err != nil {
		return ""
	}
	return s
}

// Format emits header.b64(payload) and appends .b64(footer) when the footer is non-empty.
func Format(v Version, p Purpose, payload, footer []byte) (string, error) {
	h, ok := header(v, p)
	if !ok {
		return "", ErrInvalidFormat
	}
	var sb strings.Builder
	sb.Grow(len(h) + b64.EncodedLen(len(payload)) + 1 + b64.EncodedLen(len(footer)))
	sb.WriteString(h)
	sb.WriteString(EncodeBase64URL(payload))
	if len(footer) > 0 {
		sb.WriteByte('.')
		sb.WriteString(EncodeBase64URL(footer))
	}
	return sb.String(), nil
}

// Parse splits a token string into its header, payload and optional footer.
// It performs no cryptographic work.
func Parse(s string) (*Token, error) {
	v, p, rest, ok := splitHeader(s)
	if !ok {
		return nil, ErrInvalidFormat
	}
	segments := strings.Split(rest, ".")
	if len(segments) > 2 {
		return nil, ErrInvalidFormat
	}
	payload, err := DecodeBase64URL(segments[0])
	if err != nil {
		return nil, err
	}
	t := &Token{Version: v, Purpose: p, Payload: payload}
	if len(segments) == 2 {
		// An empty footer segment is never emitted, so "x." is not canonical.
		if segments[1] == "" {
			return nil, ErrInvalidFormat
		}
		footer, err := DecodeBase64URL(segments[1])
		if err != nil {
			return nil, err
		}
		t.Footer = footer
	}
	return t, nil
}

// parseExpected parses s and rejects it unless its header is exactly v and p.
// The header is checked before any segment is decoded.
func parseExpected(s string, v Version, p Purpose) (*Token, error) {
	tv, tp, _, ok := splitHeader(s)
	if !ok {
		return nil, ErrInvalidFormat
	}
	if tv != v || tp != p {
		return nil, ErrWrongVersionOrPurpose
	}
	return Parse(s)
}

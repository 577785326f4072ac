package paseto

import (
	"fmt"
)

// SignPublic builds a public token: payload||Ed25519(PAE(h, m, f[, i])).
// Signing is deterministic, so equal inputs give equal tokens.
func SignPublic(v Version, key *AsymSecretKey, payload []byte, opts ...ProvidedOption) (string, error) {
	h, ok := header(v, PurposePublic)
	if !ok {
		return "", fmt.Errorf("%w: unsupported version %s", ErrWrongVersionOrPurpose, v)
	}
	if !key.isValidFor(v, PurposePublic) {
		return "", ErrInvalidKey
	}
	o, err := applyOptions(v, opts)
	if err != nil {
		return "", err
	}
	sig, err := signEd25519(key.keyMaterial, publicPreAuth(v, h, payload, o.footer, o.assertion))
	if err != nil {
		return "", err
	}
	body := make([]byte, 0, len(payload)+signatureSize)
	body = append(body, payload...)
	body = append(body, sig...)
	return Format(v, PurposePublic, body, o.footer)
}

// VerifyPublic checks the signature of a public token of version v and returns its message.
func VerifyPublic(v Version, token string, key *AsymPublicKey, opts ...ProvidedOption) (*Message, error) {
	tok, err := parseExpected(token, v, PurposePublic)
	if err != nil {
		return nil, err
	}
	if !key.isValidFor(v, PurposePublic) {
		return nil, ErrInvalidKey
	}
	o, err := applyOptions(v, opts)
	if err != nil {
		return nil, err
	}
	if len(tok.Payload) < signatureSize {
		return nil, ErrInvalidFormat
	}
	split := len(tok.Payload) - signatureSize
	m, sig := tok.Payload[:split], tok.Payload[split:]
	if !verifyEd25519(key.keyMaterial, publicPreAuth(v, tok.Header(), m, tok.Footer, o.assertion), sig) {
		return nil, ErrSignatureInvalid
	}
	return &Message{Payload: m, Footer: tok.Footer}, nil
}

// publicPreAuth returns the signed message. v2 has no implicit assertion piece.
func publicPreAuth(v Version, h string, m, footer, assertion []byte) []byte {
	if v == Version2 {
		return PAE([]byte(h), m, footer)
	}
	return PAE([]byte(h), m, footer, assertion)
}

package paseto

import (
	"fmt"
)

// Message is the authenticated content recovered from a token.
type Message struct {
	Payload []byte
	// Footer is empty when the token carried none.
	Footer []byte
}

// EncryptLocal builds a local token for version v. A fresh nonce is drawn for every call.
func EncryptLocal(v Version, key *SymKey, payload []byte, opts ...ProvidedOption) (string, error) {
	h, ok := header(v, PurposeLocal)
	if !ok {
		return "", fmt.Errorf("%w: unsupported version %s", ErrWrongVersionOrPurpose, v)
	}
	if !key.isValidFor(v, PurposeLocal) {
		return "", ErrInvalidKey
	}
	o, err := applyOptions(v, opts)
	if err != nil {
		return "", err
	}
	var body []byte
	switch v {
	case Version2:
		body, err = sealV2(h, key.keyMaterial, payload, o)
	case Version4:
		body, err = sealV4(h, key.keyMaterial, payload, o)
	}
	if err != nil {
		return "", err
	}
	return Format(v, PurposeLocal, body, o.footer)
}

// DecryptLocal authenticates and decrypts a local token of version v.
// Nothing but the sentinel error is returned on failure.
func DecryptLocal(v Version, token string, key *SymKey, opts ...ProvidedOption) (*Message, error) {
	tok, err := parseExpected(token, v, PurposeLocal)
	if err != nil {
		return nil, err
	}
	if !key.isValidFor(v, PurposeLocal) {
		return nil, ErrInvalidKey
	}
	o, err := applyOptions(v, opts)
	if err != nil {
		return nil, err
	}
	h := tok.Header()
	var plain []byte
	switch v {
	case Version2:
		plain, err = openV2(h, key.keyMaterial, tok.Payload, tok.Footer)
	case Version4:
		plain, err = openV4(h, key.keyMaterial, tok.Payload, tok.Footer, o.assertion)
	}
	if err != nil {
		return nil, err
	}
	return &Message{Payload: plain, Footer: tok.Footer}, nil
}

// sealV2 returns n||c where n = BLAKE2b-192(key=b, m) for a random b and
// c = XChaCha20-Poly1305(k, n, m, PAE(h, n, f)).
func sealV2(h string, k, payload []byte, o *optional) ([]byte, error) {
	b, err := readNonce(o.entropy, v2NonceSize)
	if err != nil {
		return nil, err
	}
	defer wipe(b)
	d, err := deriveKeys(Version2, k, b, payload)
	if err != nil {
		return nil, err
	}
	defer d.wipe()
	preAuth := PAE([]byte(h), d.counterNonce, o.footer)
	c, err := aeadSeal(d.encKey, d.counterNonce, payload, preAuth)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, v2NonceSize+len(c))
	out = append(out, d.counterNonce...)
	return append(out, c...), nil
}

func openV2(h string, k, body, footer []byte) ([]byte, error) {
	if len(body) < v2NonceSize+v2TagSize {
		return nil, ErrInvalidFormat
	}
	n, c := body[:v2NonceSize], body[v2NonceSize:]
	preAuth := PAE([]byte(h), n, footer)
	return aeadOpen(k, n, c, preAuth)
}

// sealV4 returns n||c||t where c is the XChaCha20 keystream XOR and
// t = BLAKE2b-256(Ak, PAE(h, n, c, f, i)).
func sealV4(h string, k, payload []byte, o *optional) ([]byte, error) {
	n, err := readNonce(o.entropy, v4NonceSize)
	if err != nil {
		return nil, err
	}
	d, err := deriveKeys(Version4, k, n, nil)
	if err != nil {
		return nil, err
	}
	defer d.wipe()
	c, err := streamXOR(d.encKey, d.counterNonce, payload)
	if err != nil {
		return nil, err
	}
	preAuth := PAE([]byte(h), n, c, o.footer, o.assertion)
	t, err := keyedHash(v4TagSize, d.authKey, preAuth)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, v4NonceSize+len(c)+v4TagSize)
	out = append(out, n...)
	out = append(out, c...)
	return append(out, t...), nil
}

// openV4 verifies the tag before any decryption happens.
func openV4(h string, k, body, footer, assertion []byte) ([]byte, error) {
	if len(body) < v4NonceSize+v4TagSize {
		return nil, ErrInvalidFormat
	}
	n := body[:v4NonceSize]
	c := body[v4NonceSize : len(body)-v4TagSize]
	t := body[len(body)-v4TagSize:]
	d, err := deriveKeys(Version4, k, n, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	defer d.wipe()
	preAuth := PAE([]byte(h), n, c, footer, assertion)
	t2, err := keyedHash(v4TagSize, d.authKey, preAuth)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	if !constantTimeEqual(t, t2) {
		return nil, ErrAuthenticationFailed
	}
	return streamXOR(d.encKey, d.counterNonce, c)
}

package paseto

import "fmt"

// Protocol is one of the four supported version and purpose pairs.
// The zero value is invalid; use one of the constructors.
type Protocol struct {
	version Version
	purpose Purpose
}

// NewPV2Local returns the v2.local protocol (XChaCha20-Poly1305).
func NewPV2Local() Protocol { return Protocol{version: Version2, purpose: PurposeLocal} }

// NewPV2Public returns the v2.public protocol (Ed25519).
func NewPV2Public() Protocol { return Protocol{version: Version2, purpose: PurposePublic} }

// NewPV4Local returns the v4.local protocol (XChaCha20 + BLAKE2b-MAC).
func NewPV4Local() Protocol { return Protocol{version: Version4, purpose: PurposeLocal} }

// NewPV4Public returns the v4.public protocol (Ed25519).
func NewPV4Public() Protocol { return Protocol{version: Version4, purpose: PurposePublic} }

// ProtocolFor validates a version and purpose pair.
func ProtocolFor(v Version, p Purpose) (Protocol, error) {
	if _, ok := header(v, p); !ok {
		return Protocol{}, fmt.Errorf("%w: %s.%s", ErrWrongVersionOrPurpose, v, p)
	}
	return Protocol{version: v, purpose: p}, nil
}

func (p Protocol) Version() Version { return p.version }
func (p Protocol) Purpose() Purpose { return p.purpose }

// Header returns the token header, e.g. "v4.public.".
func (p Protocol) Header() string {
	h, _ := header(p.version, p.purpose)
	return h
}

func (p Protocol) String() string {
	return fmt.Sprintf("%s.%s", p.version, p.purpose)
}

// Seal encrypts (local) or signs (public) payload.
// key must be a *SymKey for local and an *AsymSecretKey for public protocols.
func (p Protocol) Seal(key Key, payload []byte, opts ...ProvidedOption) (string, error) {
	switch p.purpose {
	case PurposeLocal:
		k, ok := key.(*SymKey)
		if !ok {
			return "", ErrInvalidKey
		}
		return EncryptLocal(p.version, k, payload, opts...)
	case PurposePublic:
		k, ok := key.(*AsymSecretKey)
		if !ok {
			return "", ErrInvalidKey
		}
		return SignPublic(p.version, k, payload, opts...)
	}
	return "", ErrWrongVersionOrPurpose
}

// Open decrypts (local) or verifies (public) token.
// key must be a *SymKey for local and an *AsymPublicKey for public protocols.
func (p Protocol) Open(token string, key Key, opts ...ProvidedOption) (*Message, error) {
	switch p.purpose {
	case PurposeLocal:
		k, ok := key.(*SymKey)
		if !ok {
			return nil, ErrInvalidKey
		}
		return DecryptLocal(p.version, token, k, opts...)
	case PurposePublic:
		k, ok := key.(*AsymPublicKey)
		if !ok {
			return nil, ErrInvalidKey
		}
		return VerifyPublic(p.version, token, k, opts...)
	}
	return nil, ErrWrongVersionOrPurpose
}

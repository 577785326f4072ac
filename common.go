package paseto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Purpose denotes whether a token is encrypted with a shared key or signed with a key pair.
type Purpose string

const (
	PurposeLocal  Purpose = "local"
	PurposePublic Purpose = "public"
)

// ParsePurpose accepts "local" or "public" in any case.
func ParsePurpose(s string) (Purpose, error) {
	switch Purpose(strings.ToLower(strings.TrimSpace(s))) {
	case PurposeLocal:
		return PurposeLocal, nil
	case PurposePublic:
		return PurposePublic, nil
	}
	return "", fmt.Errorf("unknown purpose %q", s)
}

// Version denotes a PASETO version which will be used.
type Version int32

const (
	Version2 Version = 2
	Version4 Version = 4
)

const (
	SymmetricKeyLength     = 32
	AsymmetricSeedLength   = ed25519.SeedSize
	AsymmetricSecretLength = ed25519.PrivateKeySize
	AsymmetricPublicLength = ed25519.PublicKeySize
)

func (v Version) String() string {
	return fmt.Sprintf("v%d", int32(v))
}

func (v Version) supported() bool {
	return v == Version2 || v == Version4
}

// ParseVersion accepts "v2", "v4", "2" or "4".
func ParseVersion(s string) (Version, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v") {
	case "2":
		return Version2, nil
	case "4":
		return Version4, nil
	}
	return 0, fmt.Errorf("unsupported version %q", s)
}

// Key is implemented by SymKey, AsymSecretKey and AsymPublicKey.
type Key interface {
	Version() Version
	isValidFor(v Version, p Purpose) bool
}

// key abstracts raw key material for extra safety.
// The material is borrowed from the caller and never copied.
type key struct {
	keyMaterial []byte
	version     Version
}

func (k key) Version() Version { return k.version }

// SymKey is a symmetric key abstraction for usage inside PASETO.
type SymKey struct {
	key
}

// AsymSecretKey is an asymmetric key abstraction for usage inside PASETO on sign.
type AsymSecretKey struct {
	key
}

// AsymPublicKey is an asymmetric key abstraction for usage inside PASETO on verify.
type AsymPublicKey struct {
	key
}

// NewSymmetricKey is a constructor-like function for SymKey which is a wrapper for raw key material used inside PASETO.
func NewSymmetricKey(keyMaterial []byte, version Version) (*SymKey, error) {
	if !version.supported() {
		return nil, fmt.Errorf("%w: unsupported version %s", ErrInvalidKey, version)
	}
	if len(keyMaterial) != SymmetricKeyLength {
		return nil, fmt.Errorf("%w: symmetric key must be %d bytes", ErrInvalidKey, SymmetricKeyLength)
	}
	return &SymKey{key: key{keyMaterial: keyMaterial, version: version}}, nil
}

// NewAsymmetricSecretKey wraps either a 32-byte Ed25519 seed or a 64-byte expanded Ed25519 key.
// An expanded key whose public half does not match its seed is rejected.
func NewAsymmetricSecretKey(keyMaterial []byte, version Version) (*AsymSecretKey, error) {
	if !version.supported() {
		return nil, fmt.Errorf("%w: unsupported version %s", ErrInvalidKey, version)
	}
	switch len(keyMaterial) {
	case AsymmetricSeedLength:
	case AsymmetricSecretLength:
		if !expandedKeyConsistent(keyMaterial) {
			return nil, fmt.Errorf("%w: public half of secret key does not match seed", ErrInvalidKey)
		}
	default:
		return nil, fmt.Errorf("%w: secret key must be %d or %d bytes", ErrInvalidKey, AsymmetricSeedLength, AsymmetricSecretLength)
	}
	return &AsymSecretKey{key{keyMaterial: keyMaterial, version: version}}, nil
}

// NewAsymmetricPublicKey is a constructor-like function for AsymPublicKey which is a wrapper for raw key material used inside PASETO.
func NewAsymmetricPublicKey(keyMaterial []byte, version Version) (*AsymPublicKey, error) {
	if !version.supported() {
		return nil, fmt.Errorf("%w: unsupported version %s", ErrInvalidKey, version)
	}
	if len(keyMaterial) != AsymmetricPublicLength {
		return nil, fmt.Errorf("%w: public key must be %d bytes", ErrInvalidKey, AsymmetricPublicLength)
	}
	return &AsymPublicKey{key: key{keyMaterial: keyMaterial, version: version}}, nil
}

// Public derives the verification key that belongs to k.
// The returned key owns a fresh 32-byte slice.
func (k *AsymSecretKey) Public() (*AsymPublicKey, error) {
	if k == nil {
		return nil, ErrInvalidKey
	}
	pub := make([]byte, AsymmetricPublicLength)
	if len(k.keyMaterial) == AsymmetricSecretLength {
		copy(pub, k.keyMaterial[AsymmetricSeedLength:])
	} else {
		priv := ed25519.NewKeyFromSeed(k.keyMaterial)
		copy(pub, priv[AsymmetricSeedLength:])
		wipe(priv)
	}
	return NewAsymmetricPublicKey(pub, k.version)
}

func (k *SymKey) isValidFor(v Version, p Purpose) bool {
	return k != nil && k.version == v && p == PurposeLocal
}

func (k *AsymSecretKey) isValidFor(v Version, p Purpose) bool {
	return k != nil && k.version == v && p == PurposePublic
}

func (k *AsymPublicKey) isValidFor(v Version, p Purpose) bool {
	return k != nil && k.version == v && p == PurposePublic
}

// optional includes optional arguments which is non-mandatory to PASETO.
type optional struct {
	footer    []byte
	assertion []byte
	entropy   io.Reader
}

// ProvidedOption is the type of constructor options.
type ProvidedOption func(*optional) error

// WithFooter adds PASETO footer to the token.
// The footer is authenticated but not encrypted.
func WithFooter(footer []byte) ProvidedOption {
	return func(o *optional) error {
		if footer == nil {
			return errors.New("nil footer was passed to WithFooter function")
		}
		o.footer = footer
		return nil
	}
}

// WithAssert adds implicit assertion to PASETO token
// Implicit assertion is unencrypted but authenticated data.
// Only v4 tokens support implicit assertions.
func WithAssert(assertion []byte) ProvidedOption {
	return func(o *optional) error {
		if assertion == nil {
			return errors.New("nil assertion was passed to WithAssert function")
		}
		o.assertion = assertion
		return nil
	}
}

// withEntropy swaps the nonce source. It is only reachable from tests.
func withEntropy(r io.Reader) ProvidedOption {
	return func(o *optional) error {
		o.entropy = r
		return nil
	}
}

func applyOptions(v Version, opts []ProvidedOption) (*optional, error) {
	o := &optional{entropy: rand.Reader}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if len(o.assertion) > 0 && v != Version4 {
		return nil, errAssertionUnsupported
	}
	return o, nil
}

var errAssertionUnsupported = fmt.Errorf("%w: implicit assertions require v4", ErrWrongVersionOrPurpose)

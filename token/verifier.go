package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oarkflow/paseto/v2"
)

// Parsed is a verified token with its decoded claims.
type Parsed struct {
	Claims Claims
	// Footer is the raw authenticated footer, empty when absent.
	Footer []byte
}

// ScanClaims decodes the claims into v.
func (p *Parsed) ScanClaims(v any) error {
	b, err := json.Marshal(p.Claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ScanFooter decodes a JSON footer into v.
func (p *Parsed) ScanFooter(v any) error {
	if len(p.Footer) == 0 {
		return errors.New("token has no footer")
	}
	return json.Unmarshal(p.Footer, v)
}

// KeyID returns the kid footer field, if any.
func (p *Parsed) KeyID() string {
	return footerKeyID(p.Footer)
}

// Verifier opens claim tokens and validates them.
type Verifier struct {
	protocol  paseto.Protocol
	key       paseto.Key
	ring      *Keyring
	validator *Validator
	nowFn     func() time.Time
	assertion []byte
}

// VerifierOption customizes a Verifier.
type VerifierOption func(*Verifier)

// WithValidator replaces the default validator, which only checks exp and nbf.
func WithValidator(v *Validator) VerifierOption {
	return func(vr *Verifier) {
		if v != nil {
			vr.validator = v
		}
	}
}

// WithVerifierNow injects a deterministic clock source.
func WithVerifierNow(fn func() time.Time) VerifierOption {
	return func(vr *Verifier) {
		if fn != nil {
			vr.nowFn = fn
		}
	}
}

// WithVerifierAssertion supplies the implicit assertion tokens were bound to.
func WithVerifierAssertion(assertion []byte) VerifierOption {
	return func(vr *Verifier) {
		vr.assertion = assertion
	}
}

func newVerifier(p paseto.Protocol, opts []VerifierOption) *Verifier {
	v := &Verifier{protocol: p, validator: NewValidator(), nowFn: defaultNow}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// NewVerifier builds a verifier. key must be a *paseto.SymKey for local
// protocols and a *paseto.AsymPublicKey for public ones.
func NewVerifier(p paseto.Protocol, key paseto.Key, opts ...VerifierOption) (*Verifier, error) {
	if err := checkKey(p, key, false); err != nil {
		return nil, err
	}
	v := newVerifier(p, opts)
	v.key = key
	return v, nil
}

// NewKeyringVerifier resolves the key from the token's kid footer.
func NewKeyringVerifier(ring *Keyring, opts ...VerifierOption) (*Verifier, error) {
	if ring == nil {
		return nil, errors.New("keyring is nil")
	}
	v := newVerifier(ring.Protocol(), opts)
	v.ring = ring
	return v, nil
}

// Verify opens encoded, decodes its claims and validates them.
func (v *Verifier) Verify(encoded string) (*Parsed, error) {
	if v == nil {
		return nil, errors.New("token verifier is nil")
	}
	key, err := v.resolveKey(encoded)
	if err != nil {
		return nil, err
	}
	var opts []paseto.ProvidedOption
	if v.assertion != nil {
		opts = append(opts, paseto.WithAssert(v.assertion))
	}
	msg, err := v.protocol.Open(encoded, key, opts...)
	if err != nil {
		return nil, err
	}
	claims, err := DecodeClaims(msg.Payload)
	if err != nil {
		return nil, err
	}
	if err := v.validator.Validate(claims, v.nowFn()); err != nil {
		return nil, err
	}
	return &Parsed{Claims: claims, Footer: msg.Footer}, nil
}

func (v *Verifier) resolveKey(encoded string) (paseto.Key, error) {
	if v.ring == nil {
		return v.key, nil
	}
	footer, err := PeekFooter(encoded)
	if err != nil {
		return nil, err
	}
	kid := footerKeyID(footer)
	if kid == "" {
		return nil, fmt.Errorf("%w: token carries no kid", ErrUnknownKeyID)
	}
	return v.ring.Lookup(kid)
}

// PeekFooter returns the footer of encoded without verifying it.
// The result must not be trusted until the token is opened.
func PeekFooter(encoded string) ([]byte, error) {
	t, err := paseto.Parse(encoded)
	if err != nil {
		return nil, err
	}
	return t.Footer, nil
}

func footerKeyID(footer []byte) string {
	if len(footer) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(footer, &fields); err != nil {
		return ""
	}
	kid, _ := fields[FooterKeyID].(string)
	return kid
}

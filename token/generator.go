package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oarkflow/paseto/v2"
)

// FooterKeyID is the footer field carrying the key identifier.
const FooterKeyID = "kid"

// Generator issues claim tokens for one protocol and key.
type Generator struct {
	protocol  paseto.Protocol
	key       paseto.Key
	ring      *Keyring
	ttl       time.Duration
	nowFn     func() time.Time
	keyID     string
	randomID  bool
	footer    map[string]any
	assertion []byte
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithGeneratorKeyID forces a static key identifier into the footer.
func WithGeneratorKeyID(keyID string) GeneratorOption {
	return func(g *Generator) {
		g.keyID = strings.TrimSpace(keyID)
	}
}

// WithGeneratorNow injects a deterministic clock source (useful for tests).
func WithGeneratorNow(fn func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if fn != nil {
			g.nowFn = fn
		}
	}
}

// WithTTL sets exp = iat + ttl on tokens that carry no exp. Zero disables it.
func WithTTL(ttl time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.ttl = ttl
	}
}

// WithRandomTokenID assigns a random UUID jti to tokens that carry none.
func WithRandomTokenID() GeneratorOption {
	return func(g *Generator) {
		g.randomID = true
	}
}

// WithFooterFields adds fixed fields to the JSON footer.
func WithFooterFields(fields map[string]any) GeneratorOption {
	return func(g *Generator) {
		if g.footer == nil {
			g.footer = make(map[string]any, len(fields))
		}
		for k, v := range fields {
			g.footer[k] = v
		}
	}
}

// WithGeneratorAssertion binds every token to an implicit assertion (v4 only).
func WithGeneratorAssertion(assertion []byte) GeneratorOption {
	return func(g *Generator) {
		g.assertion = assertion
	}
}

func (g *Generator) applyOptions(opts ...GeneratorOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.nowFn == nil {
		g.nowFn = defaultNow
	}
}

// NewGenerator builds a generator. key must be a *paseto.SymKey for local
// protocols and a *paseto.AsymSecretKey for public ones.
func NewGenerator(p paseto.Protocol, key paseto.Key, opts ...GeneratorOption) (*Generator, error) {
	if err := checkKey(p, key, true); err != nil {
		return nil, err
	}
	g := &Generator{protocol: p, key: key}
	g.applyOptions(opts...)
	return g, nil
}

// NewKeyringGenerator encrypts tokens with the current key of ring and
// records its id in the footer.
func NewKeyringGenerator(ring *Keyring, opts ...GeneratorOption) (*Generator, error) {
	if ring == nil {
		return nil, errors.New("keyring is nil")
	}
	g := &Generator{protocol: ring.Protocol(), ring: ring}
	g.applyOptions(opts...)
	return g, nil
}

// Generate fills iat, nbf, exp and jti when missing and seals the claims.
// The caller's map is not modified.
func (g *Generator) Generate(claims Claims) (string, error) {
	if g == nil {
		return "", errors.New("token generator is nil")
	}
	key, kid, err := g.resolveKey()
	if err != nil {
		return "", err
	}
	c := claims.Clone()
	now := g.nowFn().UTC().Truncate(time.Second)
	if _, ok := c[ClaimIssuedAt]; !ok {
		c.SetTime(ClaimIssuedAt, now)
	}
	if _, ok := c[ClaimNotBefore]; !ok {
		c.SetTime(ClaimNotBefore, now)
	}
	if _, ok := c[ClaimExpiration]; !ok && g.ttl > 0 {
		c.SetTime(ClaimExpiration, now.Add(g.ttl))
	}
	if _, ok := c[ClaimTokenID]; !ok && g.randomID {
		c.SetString(ClaimTokenID, uuid.NewString())
	}
	payload, err := c.Encode()
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}
	var opts []paseto.ProvidedOption
	footer, err := g.encodeFooter(kid)
	if err != nil {
		return "", err
	}
	if footer != nil {
		opts = append(opts, paseto.WithFooter(footer))
	}
	if g.assertion != nil {
		opts = append(opts, paseto.WithAssert(g.assertion))
	}
	return g.protocol.Seal(key, payload, opts...)
}

func (g *Generator) resolveKey() (paseto.Key, string, error) {
	if g.ring != nil {
		kid, key, err := g.ring.Current()
		if err != nil {
			return nil, "", err
		}
		return key, kid, nil
	}
	if g.key == nil {
		return nil, "", errors.New("generator missing key material")
	}
	return g.key, g.keyID, nil
}

func (g *Generator) encodeFooter(kid string) ([]byte, error) {
	if kid == "" && len(g.footer) == 0 {
		return nil, nil
	}
	fields := make(map[string]any, len(g.footer)+1)
	for k, v := range g.footer {
		fields[k] = v
	}
	if kid != "" {
		fields[FooterKeyID] = kid
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode footer: %w", err)
	}
	return b, nil
}

// checkKey verifies that key has the kind p needs for sealing or opening.
func checkKey(p paseto.Protocol, key paseto.Key, sealing bool) error {
	if p.Header() == "" {
		return paseto.ErrWrongVersionOrPurpose
	}
	var ok bool
	switch {
	case p.Purpose() == paseto.PurposeLocal:
		var k *paseto.SymKey
		k, ok = key.(*paseto.SymKey)
		ok = ok && k != nil
	case sealing:
		var k *paseto.AsymSecretKey
		k, ok = key.(*paseto.AsymSecretKey)
		ok = ok && k != nil
	default:
		var k *paseto.AsymPublicKey
		k, ok = key.(*paseto.AsymPublicKey)
		ok = ok && k != nil
	}
	if !ok || key.Version() != p.Version() {
		return fmt.Errorf("%w: key does not fit %s", paseto.ErrInvalidKey, p)
	}
	return nil
}

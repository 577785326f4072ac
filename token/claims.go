package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"
)

// Registered claim names.
const (
	ClaimIssuer     = "iss"
	ClaimSubject    = "sub"
	ClaimAudience   = "aud"
	ClaimExpiration = "exp"
	ClaimNotBefore  = "nbf"
	ClaimIssuedAt   = "iat"
	ClaimTokenID    = "jti"
)

var reservedClaims = map[string]struct{}{
	ClaimIssuer:     {},
	ClaimSubject:    {},
	ClaimAudience:   {},
	ClaimExpiration: {},
	ClaimNotBefore:  {},
	ClaimIssuedAt:   {},
	ClaimTokenID:    {},
}

// IsReserved reports whether name is one of the registered claim names.
func IsReserved(name string) bool {
	_, ok := reservedClaims[name]
	return ok
}

// Claims is the JSON object carried as a token payload.
type Claims map[string]any

// NewClaims returns an empty claim set.
func NewClaims() Claims { return make(Claims) }

// Clone returns a shallow copy of c.
func (c Claims) Clone() Claims {
	out := make(Claims, len(c))
	maps.Copy(out, c)
	return out
}

// Merge copies src into c. Nil values remove the claim.
func (c Claims) Merge(src map[string]any) {
	for k, v := range src {
		if v == nil {
			delete(c, k)
			continue
		}
		c[k] = v
	}
}

// SetCustom adds an application claim. Registered names are refused so that
// time and identity claims always go through their typed setters.
func (c Claims) SetCustom(name string, value any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty claim name", ErrInvalidClaims)
	}
	if IsReserved(name) {
		return fmt.Errorf("%w: %s", ErrReservedClaim, name)
	}
	c[name] = value
	return nil
}

func (c Claims) SetString(name, value string) { c[name] = value }

// SetTime stores t as an RFC 3339 string in UTC.
func (c Claims) SetTime(name string, t time.Time) {
	c[name] = t.UTC().Format(time.RFC3339)
}

// GetString returns the claim if it is present and a JSON string.
func (c Claims) GetString(name string) (string, bool) {
	v, ok := c[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetTime parses an RFC 3339 claim. ok is false when the claim is absent.
func (c Claims) GetTime(name string) (t time.Time, ok bool, err error) {
	v, present := c[name]
	if !present {
		return time.Time{}, false, nil
	}
	s, isString := v.(string)
	if !isString {
		return time.Time{}, true, fmt.Errorf("%w: %s is not a string", ErrInvalidClaims, name)
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("%w: %s: %v", ErrInvalidClaims, name, err)
	}
	return t, true, nil
}

func (c Claims) Issuer() string {
	s, _ := c.GetString(ClaimIssuer)
	return s
}

func (c Claims) Subject() string {
	s, _ := c.GetString(ClaimSubject)
	return s
}

func (c Claims) Audience() string {
	s, _ := c.GetString(ClaimAudience)
	return s
}

func (c Claims) TokenID() string {
	s, _ := c.GetString(ClaimTokenID)
	return s
}

// Registered extracts the registered claims of c.
func (c Claims) Registered() (RegisteredClaims, error) {
	r := RegisteredClaims{
		Issuer:   c.Issuer(),
		Subject:  c.Subject(),
		Audience: c.Audience(),
		TokenID:  c.TokenID(),
	}
	for name, dst := range map[string]**time.Time{
		ClaimExpiration: &r.Expiration,
		ClaimNotBefore:  &r.NotBefore,
		ClaimIssuedAt:   &r.IssuedAt,
	} {
		t, ok, err := c.GetTime(name)
		if err != nil {
			return RegisteredClaims{}, err
		}
		if ok {
			*dst = TimePtr(t)
		}
	}
	return r, nil
}

// Encode serializes c as a compact JSON object.
func (c Claims) Encode() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// DecodeClaims parses a JSON object payload. Numbers are kept as json.Number.
func DecodeClaims(data []byte) (Claims, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var c Claims
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}
	if c == nil || dec.More() {
		return nil, ErrInvalidClaims
	}
	return c, nil
}

// RegisteredClaims is the typed view of the registered claim names.
type RegisteredClaims struct {
	Issuer     string
	Subject    string
	Audience   string
	Expiration *time.Time
	NotBefore  *time.Time
	IssuedAt   *time.Time
	TokenID    string
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }

// Apply writes the non-empty fields of r into c.
func (r RegisteredClaims) Apply(c Claims) {
	for name, v := range map[string]string{
		ClaimIssuer:   r.Issuer,
		ClaimSubject:  r.Subject,
		ClaimAudience: r.Audience,
		ClaimTokenID:  r.TokenID,
	} {
		if v != "" {
			c.SetString(name, v)
		}
	}
	for name, t := range map[string]*time.Time{
		ClaimExpiration: r.Expiration,
		ClaimNotBefore:  r.NotBefore,
		ClaimIssuedAt:   r.IssuedAt,
	} {
		if t != nil {
			c.SetTime(name, *t)
		}
	}
}

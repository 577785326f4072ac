package token

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const defaultClockSkew = 1 * time.Minute

var (
	clockSkew   = defaultClockSkew
	clockSkewMu sync.RWMutex
)

// SetClockSkew updates the allowed clock skew globally.
func SetClockSkew(skew time.Duration) {
	clockSkewMu.Lock()
	defer clockSkewMu.Unlock()
	clockSkew = skew
}

// GetClockSkew returns the current clock skew setting.
func GetClockSkew() time.Duration {
	clockSkewMu.RLock()
	defer clockSkewMu.RUnlock()
	return clockSkew
}

// Rule checks one property of a decoded claim set.
type Rule func(c Claims) error

// Validator applies the time checks and a list of rules to a claim set.
type Validator struct {
	rules []Rule
	skew  *time.Duration
}

// NewValidator returns a validator with the given rules.
// exp and nbf are always checked when present.
func NewValidator(rules ...Rule) *Validator {
	return &Validator{rules: rules}
}

// WithClockSkew overrides the global clock skew for this validator.
func (v *Validator) WithClockSkew(skew time.Duration) *Validator {
	v.skew = &skew
	return v
}

// Add appends rules.
func (v *Validator) Add(rules ...Rule) *Validator {
	v.rules = append(v.rules, rules...)
	return v
}

func (v *Validator) clockSkew() time.Duration {
	if v != nil && v.skew != nil {
		return *v.skew
	}
	return GetClockSkew()
}

// Validate checks c at instant now.
func (v *Validator) Validate(c Claims, now time.Time) error {
	skew := v.clockSkew()
	exp, ok, err := c.GetTime(ClaimExpiration)
	if err != nil {
		return err
	}
	if ok && now.After(exp.Add(skew)) {
		return fmt.Errorf("%w: expired at %s", ErrTokenExpired, exp.Format(time.RFC3339))
	}
	nbf, ok, err := c.GetTime(ClaimNotBefore)
	if err != nil {
		return err
	}
	if ok && now.Add(skew).Before(nbf) {
		return fmt.Errorf("%w: valid from %s", ErrTokenNotYetValid, nbf.Format(time.RFC3339))
	}
	if _, _, err := c.GetTime(ClaimIssuedAt); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	for _, rule := range v.rules {
		if err := rule(c); err != nil {
			return err
		}
	}
	return nil
}

// ForSubject requires sub == subject.
func ForSubject(subject string) Rule { return Expect(ClaimSubject, subject) }

// ForIssuer requires iss == issuer.
func ForIssuer(issuer string) Rule { return Expect(ClaimIssuer, issuer) }

// IdentifiedBy requires jti == id.
func IdentifiedBy(id string) Rule { return Expect(ClaimTokenID, id) }

// ForAudience requires aud to be audience, or a list containing it.
func ForAudience(audience string) Rule {
	return func(c Claims) error {
		v, ok := c[ClaimAudience]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingClaim, ClaimAudience)
		}
		switch aud := v.(type) {
		case string:
			if aud == audience {
				return nil
			}
		case []any:
			for _, a := range aud {
				if s, ok := a.(string); ok && s == audience {
					return nil
				}
			}
		}
		return fmt.Errorf("%w: %s", ErrClaimMismatch, ClaimAudience)
	}
}

// ExpectTime requires a time claim equal to want at second precision.
func ExpectTime(name string, want time.Time) Rule {
	return func(c Claims) error {
		got, ok, err := c.GetTime(name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingClaim, name)
		}
		if !got.Truncate(time.Second).Equal(want.Truncate(time.Second)) {
			return fmt.Errorf("%w: %s", ErrClaimMismatch, name)
		}
		return nil
	}
}

// Expect requires claim name to equal want once both are rendered as JSON.
func Expect(name string, want any) Rule {
	return func(c Claims) error {
		got, ok := c[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingClaim, name)
		}
		if !jsonEqual(got, want) {
			return fmt.Errorf("%w: %s", ErrClaimMismatch, name)
		}
		return nil
	}
}

// RequireClaims fails if any of names is absent.
func RequireClaims(names ...string) Rule {
	return func(c Claims) error {
		for _, n := range names {
			if _, ok := c[n]; !ok {
				return fmt.Errorf("%w: %s", ErrMissingClaim, n)
			}
		}
		return nil
	}
}

func jsonEqual(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ja) == string(jb)
}

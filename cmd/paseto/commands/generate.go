package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oarkflow/paseto/v2/token"
)

// claimFlags are the claim options shared by generate and validate.
type claimFlags struct {
	subject    string
	issuer     string
	audience   string
	jti        string
	expiration string
	notBefore  string
	issuedAt   string
	custom     []string
	assertion  string
}

func (f *claimFlags) register(cmd *cobra.Command, verb string) {
	fs := cmd.Flags()
	fs.StringVarP(&f.subject, "subject", "s", "", verb+" subject claim")
	fs.StringVarP(&f.issuer, "issuer", "i", "", verb+" issuer claim")
	fs.StringVarP(&f.audience, "audience", "a", "", verb+" audience claim")
	fs.StringVar(&f.jti, "jti", "", verb+" token identifier claim")
	fs.StringVar(&f.expiration, "expiration", "", verb+" expiration time (RFC 3339 or relative, e.g. '2h', '-1d')")
	fs.StringVar(&f.notBefore, "not-before", "", verb+" not-before time (RFC 3339 or relative)")
	fs.StringVar(&f.issuedAt, "issued-at", "", verb+" issued-at time (RFC 3339 or relative)")
	fs.StringArrayVarP(&f.custom, "custom", "c", nil, verb+" custom claim in the format KEY=VALUE (repeatable)")
	fs.StringVar(&f.assertion, "assert", "", "implicit assertion bound to the token (v4 only)")
}

func (f *claimFlags) timeClaims() [][2]string {
	return [][2]string{
		{token.ClaimExpiration, f.expiration},
		{token.ClaimNotBefore, f.notBefore},
		{token.ClaimIssuedAt, f.issuedAt},
	}
}

func (f *claimFlags) stringClaims() [][2]string {
	return [][2]string{
		{token.ClaimSubject, f.subject},
		{token.ClaimIssuer, f.issuer},
		{token.ClaimAudience, f.audience},
		{token.ClaimTokenID, f.jti},
	}
}

func (f *claimFlags) assertBytes() []byte {
	if f.assertion == "" {
		return nil
	}
	return []byte(f.assertion)
}

func parseClaimTime(name, raw string, now time.Time) (time.Time, error) {
	t, err := token.ParseTime(raw, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: use RFC 3339 (e.g. '2024-07-23T00:20:32Z') or relative time (e.g. '5m', '-1h', '2d'): %w", name, err)
	}
	return t, nil
}

// claims builds the claim set to issue.
func (f *claimFlags) claims(now time.Time) (token.Claims, error) {
	c := token.NewClaims()
	for _, kv := range f.stringClaims() {
		if kv[1] != "" {
			c.SetString(kv[0], kv[1])
		}
	}
	for _, kv := range f.timeClaims() {
		if kv[1] == "" {
			continue
		}
		t, err := parseClaimTime(kv[0], kv[1], now)
		if err != nil {
			return nil, err
		}
		c.SetTime(kv[0], t)
	}
	for _, raw := range f.custom {
		k, v, err := parseKeyValue(raw)
		if err != nil {
			return nil, err
		}
		if err := c.SetCustom(k, v); err != nil {
			return nil, fmt.Errorf("custom claim %q: %w", k, err)
		}
	}
	return c, nil
}

// rules builds the expectations to validate against.
func (f *claimFlags) rules(now time.Time) ([]token.Rule, error) {
	var rules []token.Rule
	for _, kv := range f.stringClaims() {
		if kv[1] == "" {
			continue
		}
		if kv[0] == token.ClaimAudience {
			rules = append(rules, token.ForAudience(kv[1]))
			continue
		}
		rules = append(rules, token.Expect(kv[0], kv[1]))
	}
	for _, kv := range f.timeClaims() {
		if kv[1] == "" {
			continue
		}
		t, err := parseClaimTime(kv[0], kv[1], now)
		if err != nil {
			return nil, err
		}
		rules = append(rules, token.ExpectTime(kv[0], t))
	}
	for _, raw := range f.custom {
		k, v, err := parseKeyValue(raw)
		if err != nil {
			return nil, err
		}
		if token.IsReserved(k) {
			return nil, fmt.Errorf("custom claim %q: %w", k, token.ErrReservedClaim)
		}
		rules = append(rules, token.Expect(k, v))
	}
	return rules, nil
}

func (c *cli) generateCmd() *cobra.Command {
	var (
		claims    claimFlags
		ttl       string
		kid       string
		randomJTI bool
		footer    []string
		copyOut   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a claim token",
		Example: `  echo "$KEY" | paseto generate --subject user123 --expiration 2h
  paseto --key-file key.txt --format pretty generate -c role=admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.cfg.Protocol()
			if err != nil {
				return err
			}
			key, err := c.sealKey(p)
			if err != nil {
				return err
			}
			now := c.now().UTC()
			set, err := claims.claims(now)
			if err != nil {
				return err
			}
			if ttl == "" {
				ttl = c.cfg.TTL
			}
			lifetime, infinite, err := token.ParseTTL(ttl)
			if err != nil {
				return fmt.Errorf("invalid ttl: %w", err)
			}
			if infinite {
				lifetime = 0
			}
			fields := make(map[string]any, len(footer))
			for _, raw := range footer {
				k, v, err := parseKeyValue(raw)
				if err != nil {
					return fmt.Errorf("footer: %w", err)
				}
				fields[k] = v
			}
			opts := []token.GeneratorOption{
				token.WithGeneratorNow(func() time.Time { return now }),
				token.WithTTL(lifetime),
				token.WithGeneratorKeyID(kid),
				token.WithFooterFields(fields),
			}
			if randomJTI {
				opts = append(opts, token.WithRandomTokenID())
			}
			if a := claims.assertBytes(); a != nil {
				opts = append(opts, token.WithGeneratorAssertion(a))
			}
			gen, err := token.NewGenerator(p, key, opts...)
			if err != nil {
				return err
			}
			tok, err := gen.Generate(set)
			if err != nil {
				return err
			}
			c.log.Debug().
				Str("protocol", p.String()).
				Int("claims", len(set)).
				Dur("ttl", lifetime).
				Msg("token generated")
			c.copyToClipboard(tok, copyOut)
			return c.printer.Result(tok)
		},
	}
	claims.register(cmd, "Set the")
	fs := cmd.Flags()
	fs.StringVar(&ttl, "ttl", "", "lifetime when --expiration is absent, e.g. '15m', 'h:2', 'never' (default from config)")
	fs.StringVar(&kid, "kid", "", "key id written to the footer")
	fs.BoolVar(&randomJTI, "random-jti", false, "assign a random UUID token id when --jti is absent")
	fs.StringArrayVar(&footer, "footer", nil, "footer field in the format KEY=VALUE (repeatable)")
	fs.BoolVar(&copyOut, "copy", false, "copy the token to the clipboard")
	return cmd
}

package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oarkflow/paseto/v2/token"
)

func (c *cli) validateCmd() *cobra.Command {
	var (
		claims claimFlags
		tok    string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a claim token and print its claims",
		Example: `  echo "$KEY" | paseto validate --token v4.local.... --subject user123
  paseto --purpose public --key-file pub.txt validate -t v4.public.... -c role=admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				return errors.New("token is empty")
			}
			p, err := c.cfg.Protocol()
			if err != nil {
				return err
			}
			now := c.now().UTC()
			rules, err := claims.rules(now)
			if err != nil {
				return err
			}
			key, err := c.openKey(p)
			if err != nil {
				return err
			}
			opts := []token.VerifierOption{
				token.WithVerifierNow(func() time.Time { return now }),
				token.WithValidator(token.NewValidator(rules...).WithClockSkew(c.cfg.ClockSkew)),
			}
			if a := claims.assertBytes(); a != nil {
				opts = append(opts, token.WithVerifierAssertion(a))
			}
			ver, err := token.NewVerifier(p, key, opts...)
			if err != nil {
				return err
			}
			parsed, err := ver.Verify(tok)
			if err != nil {
				c.log.Debug().Err(err).Str("protocol", p.String()).Msg("token rejected")
				return err
			}
			c.log.Debug().
				Str("protocol", p.String()).
				Str("kid", parsed.KeyID()).
				Int("rules", len(rules)).
				Msg("token validated")
			return c.printer.Result(map[string]any(parsed.Claims))
		},
	}
	claims.register(cmd, "Expected")
	cmd.Flags().StringVarP(&tok, "token", "t", "", "the token to validate")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

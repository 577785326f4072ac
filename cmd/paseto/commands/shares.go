package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oarkflow/paseto/v2"
	"github.com/oarkflow/paseto/v2/internal/keys"
	"github.com/oarkflow/paseto/v2/internal/output"
)

type splitResult struct {
	Threshold int      `json:"threshold" yaml:"threshold"`
	Shares    []string `json:"shares" yaml:"shares"`
}

func (c *cli) keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Back up keys as Shamir shares",
	}
	cmd.AddCommand(c.keySplitCmd(), c.keyCombineCmd())
	return cmd
}

func (c *cli) keySplitCmd() *cobra.Command {
	var parts, threshold int
	cmd := &cobra.Command{
		Use:     "split",
		Short:   "Split a key into shares, any threshold of which rebuild it",
		Example: `  paseto --key-file key.txt key split --shares 5 --threshold 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.keyInput()
			if err != nil {
				return err
			}
			secret, err := keys.Decode(in, paseto.SymmetricKeyLength, paseto.AsymmetricSecretLength)
			if err != nil {
				return err
			}
			shares, err := keys.Split(secret, parts, threshold)
			if err != nil {
				return err
			}
			c.log.Debug().Int("shares", parts).Int("threshold", threshold).Msg("key split")
			if c.printer.Format() == output.FormatPlain {
				return c.printer.Result(strings.Join(shares, "\n"))
			}
			return c.printer.Result(splitResult{Threshold: threshold, Shares: shares})
		},
	}
	cmd.Flags().IntVar(&parts, "shares", 5, "number of shares to create")
	cmd.Flags().IntVar(&threshold, "threshold", 3, "shares needed to rebuild the key")
	return cmd
}

func (c *cli) keyCombineCmd() *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "combine SHARE SHARE...",
		Short: "Rebuild a key from its shares",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := keys.ParseEncoding(encoding)
			if err != nil {
				return err
			}
			secret, err := keys.Combine(args)
			if err != nil {
				return err
			}
			c.log.Debug().Int("shares", len(args)).Msg("key combined")
			return c.printer.Result(keys.Encode(secret, enc))
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "base64", "key encoding: base64 or hex")
	return cmd
}

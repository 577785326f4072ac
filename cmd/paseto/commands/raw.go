package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oarkflow/paseto/v2"
	"github.com/oarkflow/paseto/v2/internal/output"
)

var errStdinTwice = errors.New("payload and key cannot both come from stdin: pass --data, --data-file or --key-file")

// rawFlags are the options of the payload commands.
type rawFlags struct {
	data      string
	dataFile  string
	footer    string
	assertion string
	token     string
}

func (f *rawFlags) options() []paseto.ProvidedOption {
	var opts []paseto.ProvidedOption
	if f.footer != "" {
		opts = append(opts, paseto.WithFooter([]byte(f.footer)))
	}
	if f.assertion != "" {
		opts = append(opts, paseto.WithAssert([]byte(f.assertion)))
	}
	return opts
}

// opened is the result of decrypt and verify.
type opened struct {
	Payload string `json:"payload" yaml:"payload"`
	Footer  string `json:"footer,omitempty" yaml:"footer,omitempty"`
}

// payload returns the bytes to seal. stdin is only used when the key comes
// from a file.
func (c *cli) payload(f *rawFlags) ([]byte, error) {
	switch {
	case f.data != "" && f.dataFile != "":
		return nil, errors.New("--data and --data-file are mutually exclusive")
	case f.data != "":
		return []byte(f.data), nil
	case f.dataFile != "":
		b, err := os.ReadFile(f.dataFile)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		return b, nil
	case c.cfg.KeyFile == "":
		return nil, errStdinTwice
	}
	b, err := io.ReadAll(c.in)
	if err != nil {
		return nil, fmt.Errorf("read payload from stdin: %w", err)
	}
	return b, nil
}

func (c *cli) sealCmd(use, short string, purpose paseto.Purpose) *cobra.Command {
	var f rawFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.protocol(purpose)
			if err != nil {
				return err
			}
			if f.data == "" && f.dataFile == "" && c.cfg.KeyFile == "" {
				return errStdinTwice
			}
			key, err := c.sealKey(p)
			if err != nil {
				return err
			}
			data, err := c.payload(&f)
			if err != nil {
				return err
			}
			tok, err := p.Seal(key, data, f.options()...)
			if err != nil {
				return err
			}
			c.log.Debug().Str("protocol", p.String()).Int("payload", len(data)).Msg("payload sealed")
			return c.printer.Result(tok)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.data, "data", "d", "", "payload to seal")
	fs.StringVar(&f.dataFile, "data-file", "", "read the payload from this file")
	fs.StringVar(&f.footer, "footer", "", "authenticated footer")
	fs.StringVar(&f.assertion, "assert", "", "implicit assertion (v4 only)")
	return cmd
}

func (c *cli) openCmd(use, short string, purpose paseto.Purpose) *cobra.Command {
	var f rawFlags
	cmd := &cobra.Command{
		Use:   use + " [token]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok := f.token
			if len(args) == 1 {
				tok = args[0]
			}
			tok = strings.TrimSpace(tok)
			if tok == "" {
				return errors.New("token is required: pass it as an argument or with --token")
			}
			p, err := c.protocol(purpose)
			if err != nil {
				return err
			}
			key, err := c.openKey(p)
			if err != nil {
				return err
			}
			var opts []paseto.ProvidedOption
			if f.assertion != "" {
				opts = append(opts, paseto.WithAssert([]byte(f.assertion)))
			}
			msg, err := p.Open(tok, key, opts...)
			if err != nil {
				c.log.Debug().Err(err).Str("protocol", p.String()).Msg("token rejected")
				return err
			}
			if c.printer.Format() == output.FormatPlain {
				return c.printer.Result(string(msg.Payload))
			}
			return c.printer.Result(opened{Payload: string(msg.Payload), Footer: string(msg.Footer)})
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.token, "token", "t", "", "the token to open")
	fs.StringVar(&f.assertion, "assert", "", "implicit assertion the token was bound to (v4 only)")
	return cmd
}

func (c *cli) encryptCmd() *cobra.Command {
	return c.sealCmd("encrypt", "Encrypt a payload into a local token", paseto.PurposeLocal)
}

func (c *cli) decryptCmd() *cobra.Command {
	return c.openCmd("decrypt", "Decrypt a local token and print its payload", paseto.PurposeLocal)
}

func (c *cli) signCmd() *cobra.Command {
	return c.sealCmd("sign", "Sign a payload into a public token", paseto.PurposePublic)
}

func (c *cli) verifyCmd() *cobra.Command {
	return c.openCmd("verify", "Verify a public token and print its payload", paseto.PurposePublic)
}

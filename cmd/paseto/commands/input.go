package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oarkflow/paseto/v2"
	"github.com/oarkflow/paseto/v2/internal/keys"
)

var errNoKey = errors.New("no key provided: pipe it on stdin or pass --key-file")

// keyInput returns the key text from the configured key file or stdin.
func (c *cli) keyInput() (string, error) {
	if c.cfg.KeyFile != "" {
		b, err := os.ReadFile(c.cfg.KeyFile)
		if err != nil {
			return "", fmt.Errorf("read key file: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(c.in)
	if err != nil {
		return "", fmt.Errorf("read key from stdin: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", errNoKey
	}
	return string(b), nil
}

// sealKey loads the key that creates tokens for p.
func (c *cli) sealKey(p paseto.Protocol) (paseto.Key, error) {
	in, err := c.keyInput()
	if err != nil {
		return nil, err
	}
	if p.Purpose() == paseto.PurposeLocal {
		material, err := keys.Decode(in, paseto.SymmetricKeyLength)
		if err != nil {
			return nil, err
		}
		return paseto.NewSymmetricKey(material, p.Version())
	}
	material, err := keys.Decode(in, paseto.AsymmetricSeedLength, paseto.AsymmetricSecretLength)
	if err != nil {
		return nil, err
	}
	return paseto.NewAsymmetricSecretKey(material, p.Version())
}

// openKey loads the key that opens tokens of p. For public tokens a 64-byte
// secret key is accepted and its public half used.
func (c *cli) openKey(p paseto.Protocol) (paseto.Key, error) {
	in, err := c.keyInput()
	if err != nil {
		return nil, err
	}
	if p.Purpose() == paseto.PurposeLocal {
		material, err := keys.Decode(in, paseto.SymmetricKeyLength)
		if err != nil {
			return nil, err
		}
		return paseto.NewSymmetricKey(material, p.Version())
	}
	material, err := keys.Decode(in, paseto.AsymmetricPublicLength, paseto.AsymmetricSecretLength)
	if err != nil {
		return nil, err
	}
	if len(material) == paseto.AsymmetricSecretLength {
		sk, err := paseto.NewAsymmetricSecretKey(material, p.Version())
		if err != nil {
			return nil, err
		}
		return sk.Public()
	}
	return paseto.NewAsymmetricPublicKey(material, p.Version())
}

// parseKeyValue splits KEY=VALUE at the first '=' and trims both sides.
func parseKeyValue(s string) (string, string, error) {
	if s == "" {
		return "", "", errors.New("empty input: expected format KEY=value")
	}
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid format %q: expected KEY=value", s)
	}
	k, v = strings.TrimSpace(k), strings.TrimSpace(v)
	if k == "" {
		return "", "", errors.New("missing key: expected format KEY=value")
	}
	if v == "" {
		return "", "", fmt.Errorf("missing value for key %q: expected format KEY=value", k)
	}
	return k, v, nil
}

// copyToClipboard copies s when asked to. Failure is logged, not fatal.
func (c *cli) copyToClipboard(s string, requested bool) {
	if !requested && !c.cfg.Copy {
		return
	}
	if err := c.clip(s); err != nil {
		c.log.Warn().Err(err).Msg("copy to clipboard failed")
		return
	}
	c.log.Info().Int("len", len(s)).Msg("copied to clipboard")
}

// protocol returns the configured version with purpose forced to p.
func (c *cli) protocol(p paseto.Purpose) (paseto.Protocol, error) {
	v, err := paseto.ParseVersion(c.cfg.Version)
	if err != nil {
		return paseto.Protocol{}, err
	}
	return paseto.ProtocolFor(v, p)
}

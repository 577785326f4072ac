package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oarkflow/paseto/v2"
	"github.com/oarkflow/paseto/v2/internal/keys"
	"github.com/oarkflow/paseto/v2/internal/output"
)

// generatedKey is the keygen result. Key is set for local keys, SecretKey and
// PublicKey for key pairs.
type generatedKey struct {
	Version   string `json:"version" yaml:"version"`
	Purpose   string `json:"purpose" yaml:"purpose"`
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
	PublicKey string `json:"public_key,omitempty" yaml:"public_key,omitempty"`
	File      string `json:"file,omitempty" yaml:"file,omitempty"`
	Backup    string `json:"backup,omitempty" yaml:"backup,omitempty"`
}

func (k *generatedKey) plain() string {
	if k.Key != "" {
		return k.Key
	}
	return fmt.Sprintf("secret: %s\npublic: %s", k.SecretKey, k.PublicKey)
}

type keygenFlags struct {
	encoding string
	raw      bool
	file     string
	name     string
	fileType string
	noBackup bool
	copy     bool
}

func (c *cli) keygenCmd() *cobra.Command {
	var f keygenFlags
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a symmetric key or an Ed25519 key pair",
		Example: `  paseto keygen > key.txt
  paseto --purpose public keygen --encoding hex
  paseto keygen --file .env --name PASETO_KEY --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.cfg.Protocol()
			if err != nil {
				return err
			}
			enc, err := keys.ParseEncoding(f.encoding)
			if err != nil {
				return err
			}
			if f.raw && p.Purpose() != paseto.PurposeLocal {
				return fmt.Errorf("--raw only applies to local keys")
			}
			gen := keys.NewGenerator()
			res := generatedKey{Version: p.Version().String(), Purpose: string(p.Purpose())}
			switch {
			case f.raw:
				if res.Key, err = gen.Secret(paseto.SymmetricKeyLength); err != nil {
					return err
				}
			case p.Purpose() == paseto.PurposeLocal:
				material, err := gen.Symmetric()
				if err != nil {
					return err
				}
				res.Key = keys.Encode(material, enc)
			default:
				pub, priv, err := gen.SigningPair()
				if err != nil {
					return err
				}
				res.SecretKey = keys.Encode(priv, enc)
				res.PublicKey = keys.Encode(pub, enc)
			}
			if f.file != "" {
				if err := c.writeKeyFile(&f, &res); err != nil {
					return err
				}
			}
			c.log.Debug().
				Str("protocol", p.String()).
				Str("encoding", string(enc)).
				Str("file", res.File).
				Msg("key generated")
			secret := res.Key
			if secret == "" {
				secret = res.SecretKey
			}
			c.copyToClipboard(secret, f.copy)
			if c.printer.Format() == output.FormatPlain {
				return c.printer.Result(res.plain())
			}
			return c.printer.Result(res)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.encoding, "encoding", "base64", "key encoding: base64 or hex")
	fs.BoolVar(&f.raw, "raw", false, "emit 32 printable characters usable directly as a local key")
	fs.StringVar(&f.file, "file", "", "also write the key into this .env, JSON or YAML file")
	fs.StringVar(&f.name, "name", "", "entry name in --file (default PASETO_KEY, or PASETO_SECRET_KEY and PASETO_PUBLIC_KEY)")
	fs.StringVar(&f.fileType, "type", "", "file type: env, json or yaml (default from the extension)")
	fs.BoolVar(&f.noBackup, "no-backup", false, "do not keep a .bak copy of --file")
	fs.BoolVar(&f.copy, "copy", false, "copy the (secret) key to the clipboard")
	return cmd
}

func (c *cli) writeKeyFile(f *keygenFlags, res *generatedKey) error {
	var (
		kind keys.FileKind
		err  error
	)
	if f.fileType != "" {
		kind, err = keys.ParseFileKind(f.fileType)
	} else {
		kind, err = keys.DetectFileKind(f.file)
	}
	if err != nil {
		return err
	}
	if !f.noBackup {
		if res.Backup, err = keys.Backup(f.file); err != nil {
			return err
		}
	}
	entries := keyFileEntries(f.name, res)
	for _, e := range entries {
		if err := keys.WriteToFile(kind, f.file, e[0], e[1]); err != nil {
			return err
		}
	}
	res.File = f.file
	return nil
}

func keyFileEntries(name string, res *generatedKey) [][2]string {
	name = strings.TrimSpace(name)
	if res.Key != "" {
		if name == "" {
			name = "PASETO_KEY"
		}
		return [][2]string{{name, res.Key}}
	}
	secretName, publicName := "PASETO_SECRET_KEY", "PASETO_PUBLIC_KEY"
	if name != "" {
		secretName, publicName = name+"_SECRET", name+"_PUBLIC"
	}
	return [][2]string{{secretName, res.SecretKey}, {publicName, res.PublicKey}}
}

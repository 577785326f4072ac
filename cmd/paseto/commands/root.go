package commands

import (
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/oarkflow/paseto/v2/internal/config"
	"github.com/oarkflow/paseto/v2/internal/logging"
	"github.com/oarkflow/paseto/v2/internal/output"
)

// cli carries the streams and resolved settings shared by all subcommands.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
	clip   func(string) error

	cfg     *config.Config
	printer *output.Printer
	log     zerolog.Logger

	configPath string
	format     string
	versionTag string
	purpose    string
	logLevel   string
	keyFile    string
}

// Execute runs the CLI against the process arguments and standard streams.
func Execute() error {
	c := newCLI(os.Stdin, os.Stdout, os.Stderr)
	return c.run(os.Args[1:])
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli {
	return &cli{
		in:     in,
		out:    out,
		errOut: errOut,
		now:    time.Now,
		clip:   clipboard.WriteAll,
		log:    zerolog.Nop(),
	}
}

func (c *cli) run(args []string) error {
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	err := root.Execute()
	if err != nil {
		p := c.printer
		if p == nil {
			p = output.NewPrinter(output.FormatPlain, c.out, c.errOut)
		}
		_ = p.Error(err)
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paseto",
		Short:         "Generate and validate PASETO v2/v4 tokens",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default <user config dir>/paseto/config.yaml)")
	pf.StringVarP(&c.format, "format", "f", "plain", "output format: plain, pretty, json or yaml")
	pf.StringVar(&c.versionTag, "version-tag", "v4", "protocol version: v2 or v4")
	pf.StringVar(&c.purpose, "purpose", "local", "token purpose: local or public")
	pf.StringVar(&c.logLevel, "log-level", "warn", "diagnostic log level")
	pf.StringVar(&c.keyFile, "key-file", "", "read the key from this file instead of stdin")

	root.AddCommand(
		c.generateCmd(),
		c.validateCmd(),
		c.encryptCmd(),
		c.decryptCmd(),
		c.signCmd(),
		c.verifyCmd(),
		c.keygenCmd(),
		c.keyCmd(),
	)
	return root
}

// setup resolves the configuration; flags given explicitly win over every
// other source.
func (c *cli) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	overrides := map[string]any{}
	if flags.Changed("format") {
		overrides["format"] = c.format
	}
	if flags.Changed("version-tag") {
		overrides["version"] = c.versionTag
	}
	if flags.Changed("purpose") {
		overrides["purpose"] = c.purpose
	}
	if flags.Changed("key-file") {
		overrides["keyfile"] = c.keyFile
	}
	if flags.Changed("log-level") {
		overrides["log"] = map[string]any{"level": c.logLevel}
	}

	var opts []config.Option
	if c.configPath != "" {
		opts = append(opts, config.WithConfigFile(c.configPath))
	} else if path := config.DefaultPath(); path != "" {
		opts = append(opts, config.WithOptionalConfigFile(path))
	}
	cfg, err := config.NewLoader(opts...).Load(overrides)
	if err != nil {
		return err
	}
	logger, err := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: logging.Format(cfg.Log.Format),
		Output: c.errOut,
	})
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger
	c.printer = output.NewPrinter(format, c.out, c.errOut)
	c.log.Debug().
		Str("version", cfg.Version).
		Str("purpose", cfg.Purpose).
		Str("format", cfg.Format).
		Msg("configuration loaded")
	return nil
}

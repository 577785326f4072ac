// Package config loads command line settings.
//
// Sources are applied in order, later ones winning: built-in defaults, a YAML
// file, PASETO_* environment variables, then flag overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/oarkflow/paseto/v2"
	"github.com/oarkflow/paseto/v2/internal/logging"
	"github.com/oarkflow/paseto/v2/token"
)

// DefaultEnvPrefix is the environment variable prefix.
const DefaultEnvPrefix = "PASETO_"

// Config is the resolved tool configuration.
type Config struct {
	Version   string        `koanf:"version"`
	Purpose   string        `koanf:"purpose"`
	Format    string        `koanf:"format"`
	KeyFile   string        `koanf:"keyfile"`
	TTL       string        `koanf:"ttl"`
	ClockSkew time.Duration `koanf:"clockskew"`
	Copy      bool          `koanf:"copy"`
	Log       LogConfig     `koanf:"log"`
}

// LogConfig holds the diagnostic logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"version":   "v4",
		"purpose":   "local",
		"format":    "plain",
		"ttl":       "1h",
		"clockskew": "1m",
		"copy":      false,
		"log": map[string]any{
			"level":  "warn",
			"format": "text",
		},
	}
}

// Protocol resolves the configured version and purpose.
func (c *Config) Protocol() (paseto.Protocol, error) {
	v, err := paseto.ParseVersion(c.Version)
	if err != nil {
		return paseto.Protocol{}, err
	}
	p, err := paseto.ParsePurpose(c.Purpose)
	if err != nil {
		return paseto.Protocol{}, err
	}
	return paseto.ProtocolFor(v, p)
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Protocol(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Format) {
	case "plain", "pretty", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", c.Format))
	}
	if _, _, err := token.ParseTTL(c.TTL); err != nil {
		errs = append(errs, fmt.Errorf("ttl: %w", err))
	}
	if c.ClockSkew < 0 {
		errs = append(errs, errors.New("clock skew must not be negative"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(strings.ToLower(c.Log.Format)) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// DefaultPath returns the user config file location, or "" if unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "paseto", "config.yaml")
}

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	optional  bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path. A missing file is an error.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
		l.optional = false
	}
}

// WithOptionalConfigFile reads path only if it exists.
func WithOptionalConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
		l.optional = true
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load merges defaults, file, environment and overrides, then validates.
// overrides uses the same nested keys as the file, e.g. {"log": {"level": "debug"}}.
func (l *Loader) Load(overrides map[string]any) (*Config, error) {
	if err := l.k.Load(mapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := l.loadFile(); err != nil {
		return nil, err
	}
	if err := l.loadEnv(); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := l.k.Load(mapProvider(overrides), nil); err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}
	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) loadFile() error {
	if l.filePath == "" {
		return nil
	}
	if l.optional {
		if _, err := os.Stat(l.filePath); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	if err := l.k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", l.filePath, err)
	}
	return nil
}

// loadEnv maps PASETO_LOG_LEVEL to log.level.
func (l *Loader) loadEnv() error {
	transform := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}
	if err := l.k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Get returns a raw value by key.
func (l *Loader) Get(key string) any {
	return l.k.Get(key)
}

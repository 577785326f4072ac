// Package output renders command results and errors.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatPlain  Format = "plain"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// ParseFormat accepts plain, pretty, json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPlain, FormatPretty, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatPlain, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// envelope is the machine-readable wrapper for json and yaml output.
type envelope struct {
	Success bool   `json:"success" yaml:"success"`
	Output  any    `json:"output,omitempty" yaml:"output,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Printer writes results to out and, for human formats, errors to errOut.
type Printer struct {
	format Format
	out    io.Writer
	errOut io.Writer
	width  int
}

// NewPrinter creates a printer for format.
func NewPrinter(format Format, out, errOut io.Writer) *Printer {
	return &Printer{format: format, out: out, errOut: errOut, width: 80}
}

// Format returns the printer's format.
func (p *Printer) Format() Format { return p.format }

// Result prints a successful result. Strings print as-is in plain mode;
// maps and structs print as indented JSON.
func (p *Printer) Result(v any) error {
	switch p.format {
	case FormatJSON:
		return writeJSON(p.out, envelope{Success: true, Output: v})
	case FormatYAML:
		return writeYAML(p.out, envelope{Success: true, Output: v})
	case FormatPretty:
		return p.pretty(v)
	}
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(p.out, s)
		return err
	}
	return writeJSON(p.out, v)
}

// Error prints err. json and yaml keep it on the result stream so callers
// can parse a single document.
func (p *Printer) Error(err error) error {
	msg := err.Error()
	switch p.format {
	case FormatJSON:
		return writeJSON(p.out, envelope{Success: false, Error: msg})
	case FormatYAML:
		return writeYAML(p.out, envelope{Success: false, Error: msg})
	case FormatPretty:
		_, werr := fmt.Fprintf(p.errOut, "✗ %s\n", msg)
		return werr
	}
	_, werr := fmt.Fprintf(p.errOut, "Error: %s\n", msg)
	return werr
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(v)); err != nil {
		return err
	}
	return enc.Close()
}

// normalize round-trips v through JSON so yaml sees the same field names and
// number forms as the json output.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := yaml.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

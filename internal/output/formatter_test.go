package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/oarkflow/paseto/v2"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":       FormatPlain,
		"plain":  FormatPlain,
		"Pretty": FormatPretty,
		"json":   FormatJSON,
		"yml":    FormatYAML,
		"yaml":   FormatYAML,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("table"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(FormatPlain, &out, &errOut)
	if err := p.Result("v4.local.abc"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "v4.local.abc\n" {
		t.Fatalf("plain output %q", out.String())
	}
	out.Reset()
	if err := p.Result(map[string]any{"sub": "user123"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"sub": "user123"`) {
		t.Fatalf("plain map output %q", out.String())
	}
	_ = p.Error(errors.New("boom"))
	if errOut.String() != "Error: boom\n" {
		t.Fatalf("plain error %q", errOut.String())
	}
}

func TestJSONEnvelope(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(FormatJSON, &out, &out)
	if err := p.Result("tok<en>"); err != nil {
		t.Fatal(err)
	}
	var ok struct {
		Success bool   `json:"success"`
		Output  string `json:"output"`
	}
	if err := json.Unmarshal(out.Bytes(), &ok); err != nil || !ok.Success || ok.Output != "tok<en>" {
		t.Fatalf("success envelope %q: %v", out.String(), err)
	}
	if strings.Contains(out.String(), `\u003c`) {
		t.Fatalf("HTML must not be escaped: %q", out.String())
	}

	out.Reset()
	_ = p.Error(errors.New("token has expired"))
	var fail map[string]any
	if err := json.Unmarshal(out.Bytes(), &fail); err != nil {
		t.Fatalf("error envelope %q: %v", out.String(), err)
	}
	if fail["success"] != false || fail["error"] != "token has expired" {
		t.Fatalf("error envelope %v", fail)
	}
	if _, ok := fail["output"]; ok {
		t.Fatal("error envelope must not carry output")
	}
}

func TestYAMLEnvelope(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(FormatYAML, &out, &out)
	if err := p.Result(map[string]any{"sub": "a", "n": 3}); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Success bool           `yaml:"success"`
		Output  map[string]any `yaml:"output"`
	}
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("yaml output %q: %v", out.String(), err)
	}
	if !doc.Success || doc.Output["sub"] != "a" || doc.Output["n"] != 3 {
		t.Fatalf("unexpected yaml %+v", doc)
	}
}

func TestPrettyToken(t *testing.T) {
	key, _ := paseto.NewSymmetricKey(make([]byte, 32), paseto.Version4)
	tok, err := paseto.EncryptLocal(paseto.Version4, key, bytes.Repeat([]byte("x"), 200), paseto.WithFooter([]byte(`{"kid":"k1"}`)))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	p := NewPrinter(FormatPretty, &out, &out)
	if err := p.Result(tok); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "ENCRYPTED") || !strings.Contains(s, "v4.local.") || !strings.Contains(s, `footer: {"kid":"k1"}`) {
		t.Fatalf("pretty token %q", s)
	}
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if len(line) > 80 {
			t.Fatalf("line not wrapped: %q", line)
		}
	}
}

func TestPrettyClaims(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(FormatPretty, &out, &out)
	if err := p.Result(map[string]any{"sub": "user123", "aud": []any{"a", "b"}}); err != nil {
		t.Fatal(err)
	}
	want := "CLAIM  VALUES\n  aud: [\"a\",\"b\"]\n  sub: user123\n"
	if out.String() != want {
		t.Fatalf("pretty claims %q, want %q", out.String(), want)
	}
	out.Reset()
	_ = p.Error(errors.New("bad"))
	if out.String() != "✗ bad\n" {
		t.Fatalf("pretty error %q", out.String())
	}
}

func TestWrap(t *testing.T) {
	got := wrap(strings.Repeat("a", 40), 16, 2)
	want := strings.Repeat("a", 16) + "\n  " + strings.Repeat("a", 16) + "\n  " + strings.Repeat("a", 8)
	if got != want {
		t.Fatalf("wrap = %q", got)
	}
	if wrap("short", 16, 2) != "short" {
		t.Fatal("short text must not wrap")
	}
}

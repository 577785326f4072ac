package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/oarkflow/paseto/v2"
)

const indent = 7

func (p *Printer) pretty(v any) error {
	switch val := v.(type) {
	case string:
		if tok, err := paseto.Parse(val); err == nil {
			return p.prettyToken(tok)
		}
		_, err := fmt.Fprintln(p.out, wrap(val, p.width, 0))
		return err
	case map[string]any:
		return p.prettyTable("CLAIM", val)
	}
	var m map[string]any
	b, err := json.Marshal(v)
	if err == nil && json.Unmarshal(b, &m) == nil {
		return p.prettyTable("FIELD", m)
	}
	_, err = fmt.Fprintf(p.out, "%v\n", v)
	return err
}

func (p *Printer) prettyToken(tok *paseto.Token) error {
	label := "🔒 ENCRYPTED"
	if tok.Purpose == paseto.PurposePublic {
		label = "✍ SIGNED"
	}
	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", pad, label)
	body := paseto.EncodeBase64URL(tok.Payload)
	fmt.Fprintf(&b, "%s%s%s\n", pad, tok.Header(), wrap(body, p.width-indent-len(tok.Header()), indent+len(tok.Header())))
	if len(tok.Footer) > 0 {
		fmt.Fprintf(&b, "%sfooter: %s\n", pad, tok.Footer)
	}
	_, err := fmt.Fprint(p.out, b.String())
	return err
}

func (p *Printer) prettyTable(title string, m map[string]any) error {
	keys := make([]string, 0, len(m))
	width := len(title)
	for k := range m {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "%*s  VALUES\n", width, title)
	for _, k := range keys {
		fmt.Fprintf(&b, "%*s: %s\n", width, k, render(m[k]))
	}
	_, err := fmt.Fprint(p.out, b.String())
	return err
}

// render prints strings without quotes and everything else as compact JSON.
func render(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// wrap breaks s into lines of at most width runes; continuation lines are
// indented by hang spaces.
func wrap(s string, width, hang int) string {
	if width < 16 {
		width = 16
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	var b strings.Builder
	for len(runes) > width {
		b.WriteString(string(runes[:width]))
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", hang))
		runes = runes[width:]
	}
	b.WriteString(string(runes))
	return b.String()
}

package keys

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileKind is the format of a configuration file a key is written into.
type FileKind string

const (
	FileEnv  FileKind = "env"
	FileJSON FileKind = "json"
	FileYAML FileKind = "yaml"
)

// ParseFileKind accepts env, json, yaml or yml.
func ParseFileKind(s string) (FileKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "env":
		return FileEnv, nil
	case "json":
		return FileJSON, nil
	case "yaml", "yml":
		return FileYAML, nil
	}
	return "", fmt.Errorf("unsupported file type %q", s)
}

// DetectFileKind guesses the kind from the file name.
func DetectFileKind(path string) (FileKind, error) {
	base := strings.ToLower(filepath.Base(path))
	switch filepath.Ext(base) {
	case ".env":
		return FileEnv, nil
	case ".json":
		return FileJSON, nil
	case ".yaml", ".yml":
		return FileYAML, nil
	}
	if base == "env" || base == ".env" || strings.HasPrefix(base, ".env.") || strings.Contains(base, ".env.") {
		return FileEnv, nil
	}
	return "", fmt.Errorf("unable to detect file type for %s; pass --type", path)
}

// WriteToFile sets name to value in the file at path, creating it if needed.
// Other entries are preserved.
func WriteToFile(kind FileKind, path, name, value string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("key name is required")
	}
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read file: %w", err)
	}
	var updated []byte
	switch kind {
	case FileEnv:
		updated = upsertEnv(content, name, value)
	case FileJSON:
		updated, err = upsertJSON(content, name, value)
	case FileYAML:
		updated, err = upsertYAML(content, name, value)
	default:
		return fmt.Errorf("unsupported file type %q", kind)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, updated, 0o600)
}

func upsertEnv(content []byte, name, value string) []byte {
	text := strings.TrimRight(string(content), "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	pattern := regexp.MustCompile(`^\s*(export\s+)?` + regexp.QuoteMeta(name) + `=`)
	found := false
	for i, line := range lines {
		if m := pattern.FindStringSubmatch(line); m != nil {
			lines[i] = fmt.Sprintf("%s%s=%s", m[1], name, value)
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, fmt.Sprintf("%s=%s", name, value))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func upsertJSON(content []byte, name, value string) ([]byte, error) {
	data := make(map[string]any)
	if len(strings.TrimSpace(string(content))) > 0 {
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}
	data[name] = value
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// upsertYAML edits the document node tree so comments and key order survive.
func upsertYAML(content []byte, name, value string) ([]byte, error) {
	var doc yaml.Node
	if len(strings.TrimSpace(string(content))) > 0 {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML root is not a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == name {
			root.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
			return yaml.Marshal(&doc)
		}
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
	return yaml.Marshal(&doc)
}

// Backup copies path to path+".bak", replacing an older backup.
// A missing file needs no backup.
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	backupPath := path + ".bak"
	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup file: %w", err)
	}
	return backupPath, nil
}

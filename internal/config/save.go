package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys lists every dotted setting name SaveSetting accepts.
func Keys() []string {
	return []string{
		"database.path",
		"database.max_open_conns",
		"database.busy_timeout_ms",
		"database.backup_before_migrate",
		"log.enabled",
		"log.path",
		"log.level",
		"cache.enabled",
		"cache.ttl",
		"tracing.enabled",
		"tracing.exporter",
		"tracing.file_path",
		"tracing.otlp_endpoint",
		"tracing.sample_rate",
		"tracing.service_name",
	}
}

// SaveSetting sets a single dotted key, such as "cache.ttl", in the config
// file. Comments and formatting in the rest of the file are preserved by
// editing the yaml.Node tree. The file and any missing sections are created.
func SaveSetting(configPath, key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path comes from flags
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	if err := setPath(doc.Content[0], strings.Split(key, "."), value); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// setPath walks mapping nodes along path, creating sections as needed, and
// replaces the leaf scalar. The existing node is reused so its comments stay.
func setPath(node *yaml.Node, path []string, value string) error {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value != path[0] {
			continue
		}
		child := node.Content[i+1]
		if len(path) == 1 {
			child.Kind = yaml.ScalarNode
			child.Tag = ""
			child.Style = 0
			child.Value = value
			child.Content = nil
			return nil
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("setting %s: %q is not a section", strings.Join(path, "."), path[0])
		}
		return setPath(child, path[1:], value)
	}

	var leaf *yaml.Node
	if len(path) == 1 {
		leaf = &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	} else {
		leaf = &yaml.Node{Kind: yaml.MappingNode}
	}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: path[0]}, leaf)
	if len(path) == 1 {
		return nil
	}
	return setPath(leaf, path[1:], value)
}

// writeAtomic writes to a temp file in the target directory, then renames.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".hyperstore.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

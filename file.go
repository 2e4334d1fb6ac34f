// FILE: lixenwraith/flags/file.go
package flags

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MaxFileSize bounds how much of a config file is read.
const MaxFileSize = 4 << 20

// File formats understood by ReadFile.
const (
	FormatLines = "lines" // "name value" or "name: value" per line
	FormatTOML  = "toml"
	FormatYAML  = "yaml" // also used for .json, YAML being a superset
)

// fileEntry is one name/value pair found in a config file.
type fileEntry struct {
	name string
	text string
	line int // 0 when the format does not report positions
}

// ReadFile reads a config file. The path may be a file:// URI. Malformed
// lines and, in strict mode, unknown flag names are collected in the
// returned *ResolveError while the rest of the file is still read.
func ReadFile(reg *Registry, path string, strict bool) (map[string]RawValue, error) {
	var errs collector
	values, err := readFile(reg, path, strict, slog.Default(), &errs)
	if err != nil {
		errs.addErr("", SourceFile, ErrFileFormat, err)
	}
	return values, errs.err()
}

// readFile returns an error only when the file itself cannot be read or
// parsed as a whole. Per-entry problems go to errs.
func readFile(reg *Registry, path string, strict bool, log *slog.Logger, errs *collector) (rawSet, error) {
	path = NormalizePath(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("config file '%s' exceeds maximum size %d bytes", path, MaxFileSize)
	}

	var entries []fileEntry
	switch detectFileFormat(path) {
	case FormatTOML:
		entries, err = tomlEntries(data)
	case FormatYAML:
		entries, err = yamlEntries(data)
	default:
		entries = lineEntries(data, path, errs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	values := make(rawSet, len(entries))
	for _, e := range entries {
		if _, ok := reg.entries[e.name]; !ok {
			if strict {
				errs.add(newFlagError(e.name, SourceFile, ErrUnknownFlag, "%s", location(path, e.line)))
			} else {
				log.Warn("Ignoring unknown flag in config file", "flag", e.name, "file", path, "line", e.line)
			}
			continue
		}
		values[e.name] = RawValue{Source: SourceFile, Text: e.text}
	}
	return values, nil
}

func location(path string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return path
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".yaml", ".yml", ".json":
		return FormatYAML
	default:
		return FormatLines
	}
}

// lineEntries parses the plain format: blank lines and '#' comments are
// skipped, every other line splits at its first whitespace or colon.
func lineEntries(data []byte, path string, errs *collector) []fileEntry {
	var entries []fileEntry

	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxFileSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexFunc(line, func(r rune) bool {
			return unicode.IsSpace(r) || r == ':'
		})
		if idx <= 0 {
			errs.add(newFlagError("", SourceFile, ErrFileFormat,
				"%s: malformed line %q: expected 'name value' or 'name: value'", location(path, lineNo), line))
			continue
		}

		entries = append(entries, fileEntry{
			name: line[:idx],
			text: strings.TrimSpace(line[idx+1:]),
			line: lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		errs.add(newFlagError("", SourceFile, ErrFileFormat, "%s: %v", location(path, lineNo+1), err))
	}
	return entries
}

// tomlEntries flattens a TOML document. Top-level scalars become values,
// arrays are joined with commas and tables become key=value lists, keeping
// document order.
func tomlEntries(data []byte) ([]fileEntry, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}

	var top []string
	children := make(map[string][]string)
	for _, key := range md.Keys() {
		switch len(key) {
		case 1:
			top = append(top, key[0])
		case 2:
			children[key[0]] = append(children[key[0]], key[1])
		}
	}

	entries := make([]fileEntry, 0, len(top))
	for _, name := range top {
		text, err := renderFileValue(doc[name], children[name])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		entries = append(entries, fileEntry{name: name, text: text})
	}
	return entries, nil
}

// renderFileValue turns a decoded TOML value back into flag text.
func renderFileValue(v any, order []string) (string, error) {
	switch val := v.(type) {
	case []any:
		parts := make([]string, 0, len(val))
		for _, elem := range val {
			s, err := renderScalar(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case map[string]any:
		if len(order) != len(val) {
			order = make([]string, 0, len(val))
			for k := range val {
				order = append(order, k)
			}
			sort.Strings(order)
		}
		pairs := make([]string, 0, len(order))
		for _, k := range order {
			s, err := renderScalar(val[k])
			if err != nil {
				return "", fmt.Errorf("key %q: %w", k, err)
			}
			pairs = append(pairs, k+"="+s)
		}
		return strings.Join(pairs, ","), nil
	default:
		return renderScalar(v)
	}
}

func renderScalar(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// yamlEntries flattens a YAML (or JSON) mapping using the node tree so that
// line numbers and key order survive.
func yamlEntries(data []byte) ([]fileEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil // empty document
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping, got %s", yamlKind(root))
	}

	entries := make([]fileEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if isYAMLNull(value) {
			continue // "name: ~" leaves the flag unset
		}
		text, err := renderYAMLValue(value)
		if err != nil {
			return nil, fmt.Errorf("line %d, key %q: %w", key.Line, key.Value, err)
		}
		entries = append(entries, fileEntry{name: key.Value, text: text, line: key.Line})
	}
	return entries, nil
}

func isYAMLNull(n *yaml.Node) bool {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func renderYAMLValue(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, elem := range n.Content {
			if elem.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("nested %s in list", yamlKind(elem))
			}
			parts = append(parts, elem.Value)
		}
		return strings.Join(parts, ","), nil
	case yaml.MappingNode:
		pairs := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("nested %s under %q", yamlKind(v), k.Value)
			}
			pairs = append(pairs, k.Value+"="+v.Value)
		}
		return strings.Join(pairs, ","), nil
	case yaml.AliasNode:
		return renderYAMLValue(n.Alias)
	default:
		return "", fmt.Errorf("unsupported %s", yamlKind(n))
	}
}

func yamlKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

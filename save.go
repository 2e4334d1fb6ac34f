// FILE: lixenwraith/flags/save.go
package flags

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Save writes the resolved configuration to a TOML file atomically. Every
// set flag is stored as its textual form, so the file reads back through
// ReadFile to the same values. Unset optional flags are left out.
func (r *Result) Save(path string) error {
	data, err := r.MarshalTOML()
	if err != nil {
		return err
	}
	return atomicWriteFile(NormalizePath(path), data)
}

// MarshalTOML renders the resolved configuration as TOML text.
func (r *Result) MarshalTOML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(r.Texts()); err != nil {
		return nil, fmt.Errorf("failed to marshal configuration to TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// Texts returns name -> textual value for every set flag.
func (r *Result) Texts() map[string]string {
	out := make(map[string]string, len(r.Values.order))
	for _, name := range r.Values.order {
		if r.Values.IsSet(name) {
			out[name] = r.Values.Text(name)
		}
	}
	return out
}

// Debug returns a formatted listing of every flag, its value and source.
func (r *Result) Debug() string {
	var b strings.Builder
	b.WriteString("Resolved configuration:\n")
	if r.FilePath != "" {
		fmt.Fprintf(&b, "File: %s\n", r.FilePath)
	}
	for _, name := range r.Values.order {
		src, ok := r.Values.Source(name)
		if !ok {
			fmt.Fprintf(&b, "  %s: (unset)\n", name)
			continue
		}
		fmt.Fprintf(&b, "  %s = %q [%s]\n", name, r.Values.Text(name), src.Describe())
	}
	return b.String()
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op once renamed

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

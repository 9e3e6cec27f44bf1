// Package configfile decodes the YAML/JSON registry files used by targets and publishers.
package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrFormat is returned when the content matches none of the known formats.
var ErrFormat = errors.New("file format not recognized (expected YAML or JSON)")

type decoder struct {
	name string
	exts []string
	fn   func([]byte, any) error
}

var decoders = []decoder{
	{name: "yaml", exts: []string{".yaml", ".yml"}, fn: yaml.Unmarshal},
	{name: "json", exts: []string{".json"}, fn: json.Unmarshal},
}

// Load reads path and decodes it into out, choosing the decoder by extension.
// Files without a known extension are tried as YAML, then JSON.
func Load(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return Decode(raw, filepath.Ext(path), out)
}

// Decode decodes data into out. An empty or unknown ext tries every decoder.
func Decode(data []byte, ext string, out any) error {
	ext = strings.ToLower(strings.TrimSpace(ext))
	known := false
	for _, d := range decoders {
		if matches(d.exts, ext) {
			known = true
		}
	}

	var lastErr error
	for _, d := range decoders {
		if known && !matches(d.exts, ext) {
			continue
		}
		if err := d.fn(data, out); err != nil {
			lastErr = fmt.Errorf("decode %s: %w", d.name, err)
			continue
		}
		return nil
	}
	if known {
		return lastErr
	}
	return fmt.Errorf("%w: %v", ErrFormat, lastErr)
}

func matches(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

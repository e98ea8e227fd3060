package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrRead is returned when the providers file cannot be read.
	ErrRead = errors.New("providers file unreadable")
	// ErrInvalidFormat is returned when the input is not an array of objects.
	ErrInvalidFormat = errors.New("providers must be an array of objects")
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// List is an ordered sequence of provider records.
type List []Record

// FormatFromPath picks YAML for .yaml/.yml files and JSON for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the providers file at path.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return Parse(data, FormatFromPath(path))
}

// Parse decodes a provider list. Any element that is not an object fails
// the whole list.
func Parse(data []byte, format Format) (List, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidFormat
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	list := make(List, 0, len(items))
	for i, item := range items {
		if !isObject(item) {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidFormat, i)
		}

		record, err := NewRecord(item)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrInvalidFormat, i, err)
		}
		list = append(list, record)
	}

	return list, nil
}

// Encode writes the list as a single JSON array followed by a newline.
func Encode(w io.Writer, list List) error {
	if list == nil {
		list = List{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(list)
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func yamlToJSON(data []byte) ([]byte, error) {
	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if items == nil {
		items = []map[string]any{}
	}

	out, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return out, nil
}

package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrLoadFailure is returned when the bank cannot be read, parsed or validated.
// Without a bank no session can be started.
var ErrLoadFailure = errors.New("question bank load failure")

// Record is one question as it appears in a bank document.
type Record struct {
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
	Correct  string   `json:"correct" yaml:"correct"`
}

// Document is the top-level shape of a bank file.
type Document struct {
	Questions []Record `json:"questions" yaml:"questions"`
}

// Format identifies the encoding of a bank document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks a format from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Load reads and validates the bank at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrLoadFailure, path, err)
	}
	b, err := Parse(path, data, FormatFor(path))
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Parse decodes and validates a bank document. source is only used for
// error messages and Bank.Source.
func Parse(source string, data []byte, format Format) (*Bank, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrLoadFailure, source, err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailure, source, err)
	}

	// The document matches the schema, so a typed decode of the normalized
	// JSON cannot lose fields.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize %s: %w", ErrLoadFailure, source, err)
	}
	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrLoadFailure, source, err)
	}
	return New(source, doc.Questions), nil
}

// decodeRaw returns the document as plain JSON values (maps, slices,
// strings, float64) so it can be validated against the schema.
func decodeRaw(data []byte, format Format) (any, error) {
	var parsed any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}
		// yaml.v3 yields ints and typed maps; round-trip through JSON so the
		// validator sees the same value kinds as for JSON input.
		b, err := json.Marshal(parsed)
		if err != nil {
			return nil, err
		}
		parsed = nil
		if err := json.Unmarshal(b, &parsed); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}
	}
	return parsed, nil
}

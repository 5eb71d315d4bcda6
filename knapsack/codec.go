// Package knapsack - instance codec (JSON and YAML).
//
// Wire shape (both formats):
//
//	capacity: 5
//	weights:  [2, 3, 4]
//	values:   [3, 4, 5]
//
// The item count is implied by the vectors. Decoded documents always pass
// through New, so a decoded *Instance satisfies every invariant.
package knapsack

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects an instance encoding.
type Format int

const (
	// JSON encodes instances with encoding/json.
	JSON Format = iota

	// YAML encodes instances with gopkg.in/yaml.v3.
	YAML
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath infers the format from a file extension
// (.json, .yaml, .yml; case-insensitive).
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// document is the serialized form of an Instance.
type document struct {
	Capacity float64   `json:"capacity" yaml:"capacity"`
	Weights  []float64 `json:"weights" yaml:"weights,flow"`
	Values   []float64 `json:"values" yaml:"values,flow"`
}

// Encode writes in to w in the given format.
func Encode(w io.Writer, in *Instance, f Format) error {
	doc := document{Capacity: in.capacity, Weights: in.weights, Values: in.values}
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Decode reads one instance from r and validates it with New.
func Decode(r io.Reader, f Format) (*Instance, error) {
	var doc document
	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("knapsack: decode json: %w", err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("knapsack: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}

	return New(len(doc.Weights), doc.Capacity, doc.Weights, doc.Values)
}

// LoadFile decodes the instance stored at path; the format follows the extension.
func LoadFile(path string) (*Instance, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return Decode(fh, f)
}

// SaveFile encodes in to path (created or truncated); the format follows the extension.
func SaveFile(path string, in *Instance) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = Encode(fh, in, f); err != nil {
		_ = fh.Close()

		return err
	}

	return fh.Close()
}

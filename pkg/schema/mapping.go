package schema

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Package-specific errors
var (
	// ErrUnknownTarget is returned when a mapping renames a header to a
	// column the schema does not declare.
	ErrUnknownTarget = errors.New("mapping target is not a schema column")
)

// Mapping renames source headers to canonical schema columns. Keys are the
// headers as they appear in the sheet, values are schema column names.
type Mapping map[string]string

// LoadMapping reads a YAML header mapping, e.g.:
//
//	"Problem Name": problem id
//	"Body Text": text
//	"Answer": answer value
//
// Every target must be a column the schema declares; a typo in a target would
// otherwise silently unmap a required column and surface later as a confusing
// missing-header report.
func LoadMapping(r io.Reader, s Schema) (Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping: %w", err)
	}

	for from, to := range m {
		if !s.IsKnown(to) {
			return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownTarget, from, to)
		}
	}
	return m, nil
}

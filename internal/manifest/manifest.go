// Package manifest loads the compilation manifest emitted by the compiler
// wrapper. The manifest records, for every source unit that went into a
// compilation, the unit's package, its top-level declaration names, and
// whether the unit was produced by an annotation processor.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CompilationUnit describes one source input to the compilation.
type CompilationUnit struct {
	// Package is the unit's dot-separated package name; empty for the
	// default (unnamed) package.
	Package string `json:"package,omitempty" yaml:"package,omitempty"`

	// TopLevel lists the unit's top-level declaration names as declared,
	// in source order. Nested declarations are never listed; their compiled
	// names are attributed to the enclosing top-level name at
	// classification time.
	TopLevel []string `json:"top_level" yaml:"top_level"`

	// GeneratedByAnnotationProcessor is true when the unit's source text
	// was produced by an annotation processor rather than written by hand.
	GeneratedByAnnotationProcessor bool `json:"generated_by_annotation_processor" yaml:"generated_by_annotation_processor"`
}

// Manifest is the ordered collection of compilation units for one
// compilation. A manifest with zero units is valid.
type Manifest struct {
	CompilationUnits []CompilationUnit `json:"compilation_units" yaml:"compilation_units"`
}

// Read loads the manifest at path. Files ending in .yaml or .yml are decoded
// as YAML; everything else is decoded as JSON.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
	}
	return &m, nil
}

// Package taxonomy holds the closed mapping of XARF categories to their
// permitted types, category-specific required fields, and the fixed
// evidence-source and severity enumerations.
//
// The default taxonomy is compiled into the binary and parsed once; it is
// immutable after loading and safe for unsynchronized concurrent reads.
// Deployments tracking a newer taxonomy can load an override from a YAML
// file with LoadFile.
package taxonomy

import (
	_ "embed"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	xarferrors "github.com/xarfio/sdk/pkg/errors"
)

//go:embed taxonomy.yaml
var defaultDefinition []byte

// CategorySpec describes one category: its permitted types and the fields
// required for every report of that category.
type CategorySpec struct {
	Types    []string `yaml:"types"`
	Required []string `yaml:"required"`
}

// definition is the YAML shape of a taxonomy document.
type definition struct {
	Categories      map[string]CategorySpec `yaml:"categories"`
	EvidenceSources []string                `yaml:"evidence_sources"`
	Severities      []string                `yaml:"severities"`
}

// Taxonomy is the immutable category/type table. Construct via Default,
// Load, or LoadFile; never mutate after construction.
type Taxonomy struct {
	categories      map[string]CategorySpec
	evidenceSources map[string]bool
	severities      map[string]bool
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Default returns the built-in taxonomy, parsed once per process.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Load(defaultDefinition)
	})
	return defaultTax, defaultErr
}

// Load parses a taxonomy definition from YAML.
func Load(data []byte) (*Taxonomy, error) {
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, xarferrors.E(xarferrors.KindSchema, "taxonomy.Load", "malformed taxonomy definition", err)
	}
	if len(def.Categories) == 0 {
		return nil, xarferrors.E(xarferrors.KindSchema, "taxonomy.Load", "taxonomy defines no categories")
	}
	for name, spec := range def.Categories {
		if len(spec.Types) == 0 {
			return nil, xarferrors.E(xarferrors.KindSchema, "taxonomy.Load", "category "+name+" defines no types")
		}
	}

	t := &Taxonomy{
		categories:      def.Categories,
		evidenceSources: make(map[string]bool, len(def.EvidenceSources)),
		severities:      make(map[string]bool, len(def.Severities)),
	}
	for _, s := range def.EvidenceSources {
		t.evidenceSources[s] = true
	}
	for _, s := range def.Severities {
		t.severities[s] = true
	}
	return t, nil
}

// LoadFile parses a taxonomy definition from a YAML file.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xarferrors.E(xarferrors.KindSchema, "taxonomy.LoadFile", "cannot read taxonomy file", err)
	}
	return Load(data)
}

// Categories returns all category names, sorted.
func (t *Taxonomy) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidCategory reports whether category is part of the taxonomy.
func (t *Taxonomy) IsValidCategory(category string) bool {
	_, ok := t.categories[category]
	return ok
}

// TypesFor returns the permitted types for a category, sorted.
// Returns nil for unknown categories.
func (t *Taxonomy) TypesFor(category string) []string {
	spec, ok := t.categories[category]
	if !ok {
		return nil
	}
	types := make([]string, len(spec.Types))
	copy(types, spec.Types)
	sort.Strings(types)
	return types
}

// IsValidType reports whether typ is a permitted type for category.
func (t *Taxonomy) IsValidType(category, typ string) bool {
	spec, ok := t.categories[category]
	if !ok {
		return false
	}
	for _, candidate := range spec.Types {
		if candidate == typ {
			return true
		}
	}
	return false
}

// RequiredFields returns the category-specific required fields.
// Returns nil for unknown categories.
func (t *Taxonomy) RequiredFields(category string) []string {
	spec, ok := t.categories[category]
	if !ok {
		return nil
	}
	fields := make([]string, len(spec.Required))
	copy(fields, spec.Required)
	return fields
}

// EvidenceSources returns the fixed evidence-source enumeration, sorted.
func (t *Taxonomy) EvidenceSources() []string {
	sources := make([]string, 0, len(t.evidenceSources))
	for s := range t.evidenceSources {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}

// IsValidEvidenceSource reports whether source is a known evidence source.
func (t *Taxonomy) IsValidEvidenceSource(source string) bool {
	return t.evidenceSources[source]
}

// IsValidSeverity reports whether severity is a known severity level.
func (t *Taxonomy) IsValidSeverity(severity string) bool {
	return t.severities[severity]
}

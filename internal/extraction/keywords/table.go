// Package keywords holds the immutable keyword table that drives rule-based
// extraction: archetypes in priority order, signal tables and augmentation rules.
package keywords

import (
	"strings"

	"requirement-extractor/pkg/registry"
)

type Archetype struct {
	Name     string
	Keywords []string
	Entities []string
	Roles    []string
	Features []string
}

type Signal struct {
	Name     string
	Triggers []string
}

type Augmentation struct {
	Feature  string
	Covers   string
	Triggers []string
}

// Table is built once and shared read-only between requests. Slices returned
// by its accessors are shared and must not be modified by callers.
type Table struct {
	version        string
	archetypes     []Archetype
	byName         map[string]int
	fallback       Archetype
	entitySignals  []Signal
	roleSignals    []Signal
	featureSignals []Signal
	augmentations  map[string][]Augmentation
	source         registry.Document
}

// Default builds the table from the built-in document.
func Default() *Table {
	t, err := FromDocument(DefaultDocument())
	if err != nil {
		panic("keywords: built-in table is invalid: " + err.Error())
	}
	return t
}

// Load reads a table file, or returns the built-in table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	doc, err := registry.Load(path)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// FromDocument validates doc and compiles it. Keywords and triggers are lower-cased.
func FromDocument(doc *registry.Document) (*Table, error) {
	if err := registry.Validate(doc); err != nil {
		return nil, err
	}

	t := &Table{
		version:        doc.Version,
		archetypes:     make([]Archetype, 0, len(doc.Archetypes)),
		byName:         make(map[string]int, len(doc.Archetypes)),
		fallback:       compileArchetype(doc.Fallback),
		entitySignals:  compileSignals(doc.EntitySignals),
		roleSignals:    compileSignals(doc.RoleSignals),
		featureSignals: compileSignals(doc.FeatureSignals),
		augmentations:  make(map[string][]Augmentation),
		source:         *doc,
	}

	for i, spec := range doc.Archetypes {
		a := compileArchetype(spec)
		t.archetypes = append(t.archetypes, a)
		t.byName[strings.ToLower(a.Name)] = i
	}

	for _, aug := range doc.Augmentations {
		rule := Augmentation{
			Feature:  strings.TrimSpace(aug.Feature),
			Covers:   strings.TrimSpace(aug.Covers),
			Triggers: lowerAll(aug.Triggers),
		}
		for _, name := range aug.Archetypes {
			key := strings.ToLower(strings.TrimSpace(name))
			t.augmentations[key] = append(t.augmentations[key], rule)
		}
	}

	return t, nil
}

func (t *Table) Version() string { return t.version }

// Archetypes returns archetypes in declared priority order.
func (t *Table) Archetypes() []Archetype { return t.archetypes }

// Fallback is the archetype chosen when nothing scores.
func (t *Table) Fallback() Archetype { return t.fallback }

// Lookup finds an archetype by name, case-insensitively, including the fallback.
func (t *Table) Lookup(name string) (Archetype, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if i, ok := t.byName[key]; ok {
		return t.archetypes[i], true
	}
	if key == strings.ToLower(t.fallback.Name) {
		return t.fallback, true
	}
	return Archetype{}, false
}

func (t *Table) EntitySignals() []Signal  { return t.entitySignals }
func (t *Table) RoleSignals() []Signal    { return t.roleSignals }
func (t *Table) FeatureSignals() []Signal { return t.featureSignals }

// Augmentations returns the rules attached to the named archetype.
func (t *Table) Augmentations(archetype string) []Augmentation {
	return t.augmentations[strings.ToLower(strings.TrimSpace(archetype))]
}

// Document returns the document the table was compiled from, for export.
func (t *Table) Document() *registry.Document {
	doc := t.source
	return &doc
}

func compileArchetype(spec registry.ArchetypeSpec) Archetype {
	return Archetype{
		Name:     strings.TrimSpace(spec.Name),
		Keywords: lowerAll(spec.Keywords),
		Entities: trimAll(spec.Entities),
		Roles:    trimAll(spec.Roles),
		Features: trimAll(spec.Features),
	}
}

func compileSignals(specs []registry.Signal) []Signal {
	out := make([]Signal, 0, len(specs))
	for _, s := range specs {
		out = append(out, Signal{
			Name:     strings.TrimSpace(s.Name),
			Triggers: lowerAll(s.Triggers),
		})
	}
	return out
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDocument = errors.New("invalid keyword table")

// Load reads a keyword table from a .yaml/.yml, .json or .toml file and validates it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes data according to ext (".json", ".toml", anything else is YAML).
func Parse(data []byte, ext string) (*Document, error) {
	var doc Document
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes doc to path, choosing the encoding from the extension.
func Save(path string, doc *Document) error {
	if err := Validate(doc); err != nil {
		return err
	}
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case ".toml":
		data, err = toml.Marshal(doc)
	default:
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks structural rules: unique non-blank archetype names, at least
// one keyword per archetype, and augmentations that reference known archetypes.
func Validate(doc *Document) error {
	var problems []string

	if strings.TrimSpace(doc.Fallback.Name) == "" {
		problems = append(problems, "fallback.name is required")
	}
	if len(doc.Archetypes) == 0 {
		problems = append(problems, "at least one archetype is required")
	}

	names := make(map[string]struct{}, len(doc.Archetypes))
	for i, a := range doc.Archetypes {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			problems = append(problems, fmt.Sprintf("archetypes[%d]: name is required", i))
			continue
		}
		key := strings.ToLower(name)
		if _, dup := names[key]; dup {
			problems = append(problems, fmt.Sprintf("archetypes[%d]: duplicate name %q", i, name))
		}
		names[key] = struct{}{}
		if strings.EqualFold(name, strings.TrimSpace(doc.Fallback.Name)) {
			problems = append(problems, fmt.Sprintf("archetypes[%d]: %q collides with fallback", i, name))
		}
		if len(nonBlank(a.Keywords)) == 0 {
			problems = append(problems, fmt.Sprintf("archetypes[%d] %q: at least one keyword is required", i, name))
		}
	}

	problems = append(problems, validateSignals("entitySignals", doc.EntitySignals)...)
	problems = append(problems, validateSignals("roleSignals", doc.RoleSignals)...)
	problems = append(problems, validateSignals("featureSignals", doc.FeatureSignals)...)

	for i, aug := range doc.Augmentations {
		if strings.TrimSpace(aug.Feature) == "" || strings.TrimSpace(aug.Covers) == "" {
			problems = append(problems, fmt.Sprintf("augmentations[%d]: feature and covers are required", i))
		}
		if len(aug.Archetypes) == 0 {
			problems = append(problems, fmt.Sprintf("augmentations[%d]: no archetypes", i))
		}
		for _, name := range aug.Archetypes {
			if _, ok := names[strings.ToLower(strings.TrimSpace(name))]; !ok {
				problems = append(problems, fmt.Sprintf("augmentations[%d]: unknown archetype %q", i, name))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
	}
	return nil
}

func validateSignals(field string, signals []Signal) []string {
	var problems []string
	for i, s := range signals {
		if strings.TrimSpace(s.Name) == "" {
			problems = append(problems, fmt.Sprintf("%s[%d]: name is required", field, i))
		}
		if len(nonBlank(s.Triggers)) == 0 {
			problems = append(problems, fmt.Sprintf("%s[%d] %q: at least one trigger is required", field, i, s.Name))
		}
	}
	return problems
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

// pkg/registry/schema.go
package registry

// Document is the on-disk keyword table. Archetypes is a sequence on purpose:
// its order is the classification priority, earlier entries win ties.
type Document struct {
	Version        string          `yaml:"version" json:"version" toml:"version"`
	Fallback       ArchetypeSpec   `yaml:"fallback" json:"fallback" toml:"fallback"`
	Archetypes     []ArchetypeSpec `yaml:"archetypes" json:"archetypes" toml:"archetypes"`
	EntitySignals  []Signal        `yaml:"entitySignals" json:"entitySignals" toml:"entitySignals"`
	RoleSignals    []Signal        `yaml:"roleSignals" json:"roleSignals" toml:"roleSignals"`
	FeatureSignals []Signal        `yaml:"featureSignals" json:"featureSignals" toml:"featureSignals"`
	Augmentations  []Augmentation  `yaml:"augmentations" json:"augmentations" toml:"augmentations"`
}

type ArchetypeSpec struct {
	Name     string   `yaml:"name" json:"name" toml:"name"`
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty" toml:"keywords,omitempty"`
	Entities []string `yaml:"entities,omitempty" json:"entities,omitempty" toml:"entities,omitempty"`
	Roles    []string `yaml:"roles,omitempty" json:"roles,omitempty" toml:"roles,omitempty"`
	Features []string `yaml:"features,omitempty" json:"features,omitempty" toml:"features,omitempty"`
}

// Signal maps a canonical entry to the keywords that reveal it in free text.
type Signal struct {
	Name     string   `yaml:"name" json:"name" toml:"name"`
	Triggers []string `yaml:"triggers" json:"triggers" toml:"triggers"`
}

// Augmentation adds Feature to the listed archetypes unless an existing
// feature already contains Covers. Empty Triggers means unconditional.
type Augmentation struct {
	Archetypes []string `yaml:"archetypes" json:"archetypes" toml:"archetypes"`
	Feature    string   `yaml:"feature" json:"feature" toml:"feature"`
	Covers     string   `yaml:"covers" json:"covers" toml:"covers"`
	Triggers   []string `yaml:"triggers,omitempty" json:"triggers,omitempty" toml:"triggers,omitempty"`
}

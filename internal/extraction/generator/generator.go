// Package generator derives entities, roles and features for a classified archetype.
package generator

import (
	"strings"

	"requirement-extractor/internal/extraction"
	"requirement-extractor/internal/extraction/classifier"
	"requirement-extractor/internal/extraction/keywords"
)

type Generator struct {
	table *keywords.Table
}

func New(table *keywords.Table) *Generator {
	return &Generator{table: table}
}

func (g *Generator) Generate(archetype, text string) extraction.Attributes {
	return Generate(g.table, archetype, text)
}

// Generate builds the attribute lists in a fixed order: archetype defaults,
// then signal-table hits from text, then augmentation rules. The result is
// normalized so every list is non-empty, unique and within bounds.
func Generate(table *keywords.Table, archetype, text string) extraction.Attributes {
	lower := strings.ToLower(text)

	var attrs extraction.Attributes
	if base, ok := table.Lookup(archetype); ok {
		attrs = extraction.Attributes{
			Entities: append([]string(nil), base.Entities...),
			Roles:    append([]string(nil), base.Roles...),
			Features: append([]string(nil), base.Features...),
		}
	} else {
		attrs = extraction.GenericAttributes()
	}

	attrs.Entities = appendSignals(attrs.Entities, table.EntitySignals(), lower)
	attrs.Roles = appendSignals(attrs.Roles, table.RoleSignals(), lower)
	attrs.Features = appendSignals(attrs.Features, table.FeatureSignals(), lower)
	attrs.Features = augment(attrs.Features, table.Augmentations(archetype), lower)

	return extraction.Normalize(attrs)
}

func appendSignals(list []string, signals []keywords.Signal, lower string) []string {
	for _, s := range signals {
		if classifier.Matches(s.Triggers, lower) {
			list = append(list, s.Name)
		}
	}
	return list
}

func augment(features []string, rules []keywords.Augmentation, lower string) []string {
	for _, rule := range rules {
		if len(rule.Triggers) > 0 && !classifier.Matches(rule.Triggers, lower) {
			continue
		}
		if extraction.ContainsFold(features, rule.Covers) {
			continue
		}
		features = append(features, rule.Feature)
	}
	return features
}

// internal/models/extraction.go
package models

import "time"

const (
	ModelRemote            = "remote"
	ModelRuleBased         = "rule-based"
	ModelRuleBasedFallback = "rule-based-fallback"
)

type ExtractionResult struct {
	AppName  string             `json:"appName"`
	Entities []string           `json:"entities"`
	Roles    []string           `json:"roles"`
	Features []string           `json:"features"`
	Metadata ExtractionMetadata `json:"metadata"`
}

type ExtractionMetadata struct {
	Model            string    `json:"model"`
	Confidence       float64   `json:"confidence"`
	ExtractedAt      time.Time `json:"extractedAt"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Archetype        string    `json:"archetype,omitempty"`
	Provider         string    `json:"provider,omitempty"`
	Error            string    `json:"error,omitempty"`
}

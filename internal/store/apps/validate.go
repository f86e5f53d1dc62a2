package apps

import (
	"fmt"
	"strings"

	"requirement-extractor/internal/common/validation"
	"requirement-extractor/internal/models"
)

func stringList(maxLen int) map[string]interface{} {
	return map[string]interface{}{
		"type":     "array",
		"minItems": 1,
		"items": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": maxLen,
		},
	}
}

var saveRequestSchema = validation.MustCompile(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"appName", "entities", "roles", "features"},
	"properties": map[string]interface{}{
		"appName":     map[string]interface{}{"type": "string", "minLength": 2, "maxLength": 100},
		"description": map[string]interface{}{"type": "string", "maxLength": 5000},
		"entities":    stringList(50),
		"roles":       stringList(50),
		"features":    stringList(100),
		"status": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{models.AppStatusDraft, models.AppStatusActive, models.AppStatusArchived},
		},
		"metadata": map[string]interface{}{"type": "object"},
	},
})

// NormalizeSaveRequest trims names and list items and drops blank items so
// that whitespace-only values fail validation.
func NormalizeSaveRequest(req *models.SaveAppRequest) {
	req.AppName = strings.TrimSpace(req.AppName)
	req.Description = strings.TrimSpace(req.Description)
	req.Entities = trimItems(req.Entities)
	req.Roles = trimItems(req.Roles)
	req.Features = trimItems(req.Features)
	if req.Status == "" {
		req.Status = models.AppStatusDraft
	}
}

// ValidateSaveRequest normalizes req in place and checks it against the
// save-app schema.
func ValidateSaveRequest(req *models.SaveAppRequest) error {
	NormalizeSaveRequest(req)

	result, err := saveRequestSchema.Validate(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}
	if !result.Valid {
		return fmt.Errorf("%w: %s", ErrInvalidApp, result.Summary())
	}
	return nil
}

func trimItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

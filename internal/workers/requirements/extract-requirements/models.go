// internal/workers/requirements/extract-requirements/models.go
package extractrequirements

import "requirement-extractor/internal/models"

type Input struct {
	Description string `json:"description"`
}

// Output is published to the process as-is: appName, entities, roles,
// features and metadata become process variables.
type Output = models.ExtractionResult

package remote

import (
	"strings"
	"text/template"

	"requirement-extractor/internal/extraction"
)

const SystemInstruction = "You are a helpful assistant that extracts app requirements and returns only valid JSON."

var userPrompt = template.Must(template.New("extract").Parse(`You are an expert system analyst. Analyze the following app description and extract structured requirements.

App Description: {{printf "%q" .Description}}

Return a JSON object with exactly these fields:
{
  "appName": "A concise, descriptive name for the app",
  "entities": ["Main data entities/objects in the app"],
  "roles": ["User roles/types who will use the app"],
  "features": ["Key features/functionalities the app should have"]
}

Guidelines:
- appName: professional and descriptive (e.g. "Student Course Management System")
- entities: main objects/data types (e.g. "Student", "Course", "Grade"), max {{.MaxEntities}}
- roles: user types (e.g. "Admin", "Teacher", "Student"), max {{.MaxRoles}}
- features: key functionalities (e.g. "Create Course", "Assign Grades"), max {{.MaxFeatures}}
- Return only valid JSON, no additional text
`))

type promptData struct {
	Description string
	MaxEntities int
	MaxRoles    int
	MaxFeatures int
}

// BuildPrompt renders the user message for description.
func BuildPrompt(description string) (string, error) {
	var b strings.Builder
	err := userPrompt.Execute(&b, promptData{
		Description: description,
		MaxEntities: extraction.MaxEntities,
		MaxRoles:    extraction.MaxRoles,
		MaxFeatures: extraction.MaxFeatures,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

package remote

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"requirement-extractor/internal/extraction"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```json {\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestParse_Valid(t *testing.T) {
	raw := "```json\n" + `{
		"appName": "  Team Tasks ",
		"entities": ["Task", "task", " Project ", ""],
		"roles": ["Member"],
		"features": ["Create Tasks", "Assign Tasks"]
	}` + "\n```"

	parsed, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Team Tasks", parsed.AppName)
	assert.Equal(t, []string{"Task", "Project"}, parsed.Entities)
	assert.Equal(t, []string{"Member", "Admin"}, parsed.Roles)
	assert.Equal(t, []string{"Create Tasks", "Assign Tasks"}, parsed.Features)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "Sure! Here are the requirements you asked for."},
		{"array top level", `["Task"]`},
		{"null", `null`},
		{"string top level", `"hello"`},
		{"empty", "   "},
		{"truncated", `{"appName": "X", "entities": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, extraction.ErrMalformedResponse))
		})
	}
}

func TestParse_FieldDefaults(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantName     string
		wantEntities []string
		wantRoles    []string
		wantFeatures []string
	}{
		{
			name:         "missing everything",
			raw:          `{}`,
			wantName:     extraction.DefaultAppName,
			wantEntities: []string{"User", "Item"},
			wantRoles:    []string{"Admin", "User"},
			wantFeatures: []string{"Create Records", "View Data"},
		},
		{
			name:         "wrong types",
			raw:          `{"appName": 42, "entities": "Task", "roles": {"a": 1}, "features": null}`,
			wantName:     extraction.DefaultAppName,
			wantEntities: []string{"User", "Item"},
			wantRoles:    []string{"Admin", "User"},
			wantFeatures: []string{"Create Records", "View Data"},
		},
		{
			name:         "mixed element types replaced wholesale",
			raw:          `{"appName": "Shop", "entities": ["Product", 7], "roles": ["Seller"], "features": ["Browse", true]}`,
			wantName:     "Shop",
			wantEntities: []string{"User", "Item"},
			wantRoles:    []string{"Seller", "Admin"},
			wantFeatures: []string{"Create Records", "View Data"},
		},
		{
			name:         "blank name and empty lists",
			raw:          `{"appName": "   ", "entities": [], "roles": [" "], "features": []}`,
			wantName:     extraction.DefaultAppName,
			wantEntities: extraction.MinimumEntities(),
			wantRoles:    extraction.MinimumRoles(),
			wantFeatures: extraction.MinimumFeatures(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.raw)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, parsed.AppName)
			assert.Equal(t, tt.wantEntities, parsed.Entities)
			assert.Equal(t, tt.wantRoles, parsed.Roles)
			assert.Equal(t, tt.wantFeatures, parsed.Features)
		})
	}
}

func TestParse_Truncates(t *testing.T) {
	items := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, `"F`+strings.Repeat("x", i)+`"`)
	}
	list := "[" + strings.Join(items, ",") + "]"

	parsed, err := Parse(`{"appName":"Big","entities":` + list + `,"roles":` + list + `,"features":` + list + `}`)
	require.NoError(t, err)

	assert.Len(t, parsed.Entities, extraction.MaxEntities)
	assert.Len(t, parsed.Roles, extraction.MaxRoles)
	assert.Len(t, parsed.Features, extraction.MaxFeatures)
	assert.Equal(t, "F", parsed.Entities[0])
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(`A "quoted" library app`)
	require.NoError(t, err)

	assert.Contains(t, prompt, `App Description: "A \"quoted\" library app"`)
	assert.Contains(t, prompt, "max 8")
	assert.Contains(t, prompt, "max 6")
	assert.Contains(t, prompt, "max 10")
}

func TestIsPlaceholderKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"your_openai_api_key_here", true},
		{"YOUR-API-KEY", true},
		{"<openai-key>", true},
		{"${OPENAI_API_KEY}", true},
		{"changeme", true},
		{"sk-live-123abc", false},
		{"real-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlaceholderKey(tt.key))
		})
	}
}

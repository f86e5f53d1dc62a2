package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"requirement-extractor/internal/extraction/keywords"
	"requirement-extractor/pkg/registry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	tablePath = ""
	exportOut = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList_BuiltInTable(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	table := keywords.Default()
	assert.Contains(t, out, "version "+table.Version())
	assert.Contains(t, out, table.Archetypes()[0].Name)
	assert.Contains(t, out, "fallback: "+table.Fallback().Name)
}

func TestExportThenValidate(t *testing.T) {
	for _, name := range []string{"keywords.yaml", "keywords.json", "keywords.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			out, err := run(t, "export", "--out", path)
			require.NoError(t, err)
			assert.Contains(t, out, "wrote "+path)

			doc, err := registry.Load(path)
			require.NoError(t, err)
			assert.Equal(t, keywords.DefaultDocument().Version, doc.Version)
			assert.Len(t, doc.Archetypes, len(keywords.DefaultDocument().Archetypes))

			out, err = run(t, "validate", "--path", path)
			require.NoError(t, err)
			assert.Contains(t, out, "valid")
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	_, err := run(t, "validate")
	assert.EqualError(t, err, "--path is required")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\narchetypes: []\n"), 0o644))

	_, err = run(t, "validate", "--path", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrInvalidDocument)
}

func TestClassify(t *testing.T) {
	out, err := run(t, "classify", "I", "want", "an", "app", "to", "manage", "tasks", "and", "projects")
	require.NoError(t, err)

	var got struct {
		Archetype string `json:"archetype"`
		Score     int    `json:"score"`
		Result    struct {
			AppName  string   `json:"appName"`
			Entities []string `json:"entities"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.Archetype)
	assert.NotEmpty(t, got.Result.AppName)
	assert.NotEmpty(t, got.Result.Entities)
}

func TestClassify_RequiresText(t *testing.T) {
	_, err := run(t, "classify")
	assert.Error(t, err)
}

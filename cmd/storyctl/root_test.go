package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"story-workers/internal/story"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const note = "A secretária do FEHIDRO informou que o relatório de liberação não reembolsável " +
	"não faz mais sentido. Precisamos reformatar o relatório."

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerate_Formats(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantPrefix string
	}{
		{"markdown", "markdown", "# História de Usuário"},
		{"text", "text", "HISTÓRIA DE USUÁRIO"},
		{"json", "json", "{"},
		{"yaml", "yaml", "storyId:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, note, "generate", "--format", tt.format)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.wantPrefix), out)
		})
	}
}

func TestGenerate_JSONWithAnalysis(t *testing.T) {
	out, err := run(t, "", "generate", "-o", "json", "--analysis", note)
	require.NoError(t, err)

	var payload struct {
		StoryID  string              `json:"storyId"`
		Story    story.StoryDocument `json:"story"`
		Analysis *story.Analysis     `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, story.StoryID(note), payload.StoryID)
	assert.Equal(t, "Secretaria FEHIDRO", payload.Story.RequestedBy)
	require.NotNil(t, payload.Analysis)
	assert.Equal(t, "FEHIDRO", payload.Analysis.System)
}

func TestGenerate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notas.txt")
	require.NoError(t, os.WriteFile(path, []byte(note), 0o600))

	out, err := run(t, "", "generate", "--file", path, "--format", "yaml")
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &payload))
	assert.Equal(t, story.StoryID(note), payload["storyId"])
}

func TestGenerate_EnvOverrides(t *testing.T) {
	t.Setenv("STORYCTL_GENERATE_FORMAT", "json")
	t.Setenv("STORYCTL_GENERATE_ANALYSIS", "true")

	out, err := run(t, note, "generate")
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, story.StoryID(note), payload["storyId"])
	assert.Contains(t, payload, "analysis")
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	_, err := run(t, note, "generate", "--format", "pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, story.ErrUnsupportedFormat)
}

func TestAnalyze(t *testing.T) {
	out, err := run(t, note, "analyze")
	require.NoError(t, err)

	var analysis story.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, story.RequestImprovement, analysis.Context.RequestType)
	assert.Equal(t, "FEHIDRO", analysis.System)
	assert.Equal(t, story.ScenarioSetFehidro, analysis.ScenarioSet)
}

func TestRender_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	generated, err := run(t, note, "generate", "--format", "json")
	require.NoError(t, err)
	envelopePath := filepath.Join(dir, "story.json")
	require.NoError(t, os.WriteFile(envelopePath, []byte(generated), 0o600))

	doc := story.NewGenerator().Process(note)
	yamlData, err := yaml.Marshal(doc)
	require.NoError(t, err)
	barePath := filepath.Join(dir, "story.yaml")
	require.NoError(t, os.WriteFile(barePath, yamlData, 0o600))

	want, err := story.Render(doc, story.FormatText)
	require.NoError(t, err)

	for _, path := range []string{envelopePath, barePath} {
		out, err := run(t, "", "render", "--file", path, "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, want+"\n", out)
	}
}

func TestRender_RequiresFile(t *testing.T) {
	_, err := run(t, "", "render")
	assert.Error(t, err)
}

func TestRegistry_ListValidateUpdate(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, src, 0o600))

	out, err := run(t, "", "registry", "list", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "generate-user-story")
	assert.Contains(t, out, "render-user-story")

	out, err = run(t, "", "registry", "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 activities")

	_, err = run(t, "", "registry", "update", "--path", path, "--id", "render-user-story", "--field", "retries", "--value", "2")
	require.NoError(t, err)

	_, err = run(t, "", "registry", "update", "--path", path, "--id", "render-user-story", "--field", "retries", "--value", "many")
	assert.Error(t, err)
}

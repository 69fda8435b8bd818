// internal/workers/story/render-user-story/handler_test.go
package renderuserstory

import (
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"story-workers/internal/common/camunda/jobtest"
	"story-workers/internal/common/config"
	"story-workers/internal/common/errors"
	"story-workers/internal/common/logger"
	"story-workers/internal/story"
	"story-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestRegistry(t *testing.T) *registry.ActivityRegistry {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "configs", "activity-registry.json")
	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	return reg
}

func createTestHandler(t *testing.T, defaultFormat string) *Handler {
	appCfg := &config.Config{
		Story:    config.StoryConfig{DefaultFormat: defaultFormat},
		Registry: config.RegistryConfig{ValidateInput: true, ValidateOutput: true},
	}
	cfg, err := NewConfig(appCfg, loadTestRegistry(t))
	require.NoError(t, err)
	return NewHandler(cfg, logger.NewTestLogger(t), nil)
}

func sampleStory() story.StoryDocument {
	return story.NewGenerator().Process("Secretária pede para ajustar o relatório de pagamento")
}

func TestNewConfig_InvalidDefaultFormat(t *testing.T) {
	_, err := NewConfig(&config.Config{Story: config.StoryConfig{DefaultFormat: "pdf"}}, nil)
	assert.Error(t, err)
}

func TestNewConfig_Retries(t *testing.T) {
	reg := loadTestRegistry(t)

	cfg, err := NewConfig(&config.Config{}, reg)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxRetries)

	appCfg := &config.Config{
		Workers: map[string]config.WorkerConfig{TaskType: {Enabled: true, Timeout: 2000, MaxRetries: 5}},
	}
	cfg, err = NewConfig(appCfg, reg)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, "2s", cfg.Timeout.String())
}

func TestHandler_Execute_Formats(t *testing.T) {
	tests := []struct {
		name          string
		defaultFormat string
		format        string
		wantFormat    story.Format
		wantPrefix    string
	}{
		{"default markdown", "markdown", "", story.FormatMarkdown, "# História de Usuário"},
		{"default text", "text", "", story.FormatText, "HISTÓRIA DE USUÁRIO"},
		{"explicit text", "markdown", "text", story.FormatText, "HISTÓRIA DE USUÁRIO"},
		{"md alias", "text", "MD", story.FormatMarkdown, "# História de Usuário"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, tt.defaultFormat)

			output, err := h.Execute(context.Background(), &Input{Story: sampleStory(), Format: tt.format})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, output.Format)
			assert.True(t, strings.HasPrefix(output.Document, tt.wantPrefix), output.Document)
		})
	}
}

func TestHandler_Execute_UnsupportedFormat(t *testing.T) {
	h := createTestHandler(t, "markdown")

	_, err := h.Execute(context.Background(), &Input{Story: sampleStory(), Format: "pdf"})
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnsupportedFormat, stdErr.Code)
}

func TestHandler_Handle_Completes(t *testing.T) {
	h := createTestHandler(t, "markdown")
	client := jobtest.NewClient()

	h.Handle(client, jobtest.NewJob(1, TaskType, map[string]interface{}{
		"story":  sampleStory(),
		"format": "text",
	}))

	require.Len(t, client.Completed(), 1)

	var output Output
	require.NoError(t, json.Unmarshal([]byte(client.Completed()[0].Variables), &output))
	assert.Equal(t, story.FormatText, output.Format)
	assert.Contains(t, output.Document, "TAREFAS:")
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name      string
		variables interface{}
		wantCode  string
	}{
		{"missing story", map[string]interface{}{"format": "text"}, "SCHEMA_VALIDATION_FAILED"},
		{"unsupported format", map[string]interface{}{"story": sampleStory(), "format": "pdf"}, "UNSUPPORTED_FORMAT"},
		{"malformed variables", "[", "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, "markdown")
			client := jobtest.NewClient()

			h.Handle(client, jobtest.NewJob(2, TaskType, tt.variables))

			assert.Empty(t, client.Completed())
			require.Len(t, client.Thrown(), 1)
			assert.Equal(t, tt.wantCode, client.Thrown()[0].ErrorCode)
		})
	}
}

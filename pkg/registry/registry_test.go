package registry

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoRegistryPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs", "activity-registry.json")
}

func TestLoadRegistry_ShippedFile(t *testing.T) {
	reg, err := LoadRegistry(repoRegistryPath(t))
	require.NoError(t, err)

	for _, taskType := range []string{"generate-user-story", "render-user-story"} {
		activity, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.Equal(t, 30*time.Second, activity.TimeoutDuration())

		input, output, err := activity.Schemas()
		require.NoError(t, err)
		assert.NotNil(t, input)
		assert.NotNil(t, output)
	}

	_, ok := reg.Find("unknown-task")
	assert.False(t, ok)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad json", `{"activities": [`, "failed to parse registry"},
		{"missing task type", `{"activities": [{"id": "a"}]}`, "taskType is required"},
		{"duplicate task type", `{"activities": [{"taskType": "t"}, {"taskType": "t"}]}`, "duplicate taskType"},
		{"duplicate id", `{"activities": [{"id": "a", "taskType": "t1"}, {"id": "a", "taskType": "t2"}]}`, "duplicate activity id"},
		{"bad schema", `{"activities": [{"taskType": "t", "inputSchema": {"type": 7}}]}`, "input schema"},
		{"bad timeout", `{"activities": [{"taskType": "t", "timeout": "soon"}]}`, "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestActivity_NoSchemas(t *testing.T) {
	a := &Activity{TaskType: "t"}
	input, output, err := a.Schemas()
	require.NoError(t, err)
	assert.Nil(t, input)
	assert.Nil(t, output)
	assert.Zero(t, a.TimeoutDuration())
}

func TestActivityRegistry_Lint(t *testing.T) {
	reg, err := LoadRegistry(repoRegistryPath(t))
	require.NoError(t, err)
	assert.NoError(t, reg.Lint())

	assert.Error(t, (&ActivityRegistry{}).Lint())

	noCategory := &ActivityRegistry{Activities: []Activity{{ID: "a", DisplayName: "A", TaskType: "t"}}}
	err = noCategory.Lint()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Category")

	unknownCode := &ActivityRegistry{Activities: []Activity{{
		ID: "a", DisplayName: "A", Category: "story", TaskType: "t",
		ErrorCodes: []string{"INVALID_INPUT", "PDF_EXPORT_FAILED"},
	}}}
	err = unknownCode.Lint()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF_EXPORT_FAILED")
}

func TestActivityRegistry_UpdateAndSave(t *testing.T) {
	reg, err := LoadRegistry(repoRegistryPath(t))
	require.NoError(t, err)

	require.NoError(t, reg.Update("render-user-story", "retries", "4"))
	require.NoError(t, reg.Update("render-user-story", "timeout", "45s"))
	assert.Error(t, reg.Update("render-user-story", "timeout", "later"))
	assert.Error(t, reg.Update("render-user-story", "taskType", "x"))
	assert.Error(t, reg.Update("missing", "status", "done"))

	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	require.NoError(t, reg.Save(path))

	saved, err := LoadRegistry(path)
	require.NoError(t, err)
	activity, ok := saved.Find("render-user-story")
	require.True(t, ok)
	assert.Equal(t, 4, activity.Retries)
	assert.Equal(t, 45*time.Second, activity.TimeoutDuration())
}

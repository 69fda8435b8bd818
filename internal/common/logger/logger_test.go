package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestZapAdapter_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"taskType": "generate-user-story"}).
		WithError(errors.New("boom"))

	log.Info("job completed", map[string]interface{}{"jobKey": int64(42)})
	log.Debug("detail", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "job completed", entries[0].Message)
	assert.Equal(t, "generate-user-story", ctx["taskType"])
	assert.Equal(t, int64(42), ctx["jobKey"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNew_BuildsForBothFormats(t *testing.T) {
	assert.NotNil(t, New("debug", "json"))
	assert.NotNil(t, New("info", "console"))
	assert.NotNil(t, NewWithOutput("info", "json", "/nonexistent/dir/log.txt"))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger().With(map[string]interface{}{"a": 1})
	log.Warn("ignored", nil)
	log.Error("ignored", map[string]interface{}{"b": 2})
}

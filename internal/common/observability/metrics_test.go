package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := New("story-test",
		WithRegisterer(prometheus.NewRegistry()),
		WithSpanProcessor(recorder),
	)
	defer obs.Shutdown()

	ctx, parent := obs.StartSpan(context.Background(), "generate-user-story",
		attribute.String("task_type", "generate-user-story"))
	_, child := obs.StartSpan(ctx, "story.process")
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "story.process", spans[0].Name())
	assert.Equal(t, "generate-user-story", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].Parent().TraceID())
}

func TestStartSpan_NoTracing(t *testing.T) {
	obs := New("story-test", WithRegisterer(prometheus.NewRegistry()))
	defer obs.Shutdown()

	_, span := obs.StartSpan(context.Background(), "render-user-story")
	defer span.End()

	assert.False(t, span.SpanContext().IsValid())
}

func TestRecordMetrics_Exported(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := New("story-test", WithRegisterer(reg))
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "generate-user-story", "success")
	obs.RecordJobDuration(ctx, "generate-user-story", 12*time.Millisecond, "success")
	obs.RecordStory(ctx, "bug_fix", "fehidro")

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestZeroValue_IsSafe(t *testing.T) {
	obs := &Observability{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(ctx, "x", "success")
		obs.RecordJobDuration(ctx, "x", time.Millisecond, "success")
		obs.RecordStory(ctx, "x", "generic")
		_, span := obs.StartSpan(ctx, "x")
		span.End()
		obs.Shutdown()
	})
}

// internal/workers/story/generate-user-story/handler.go
package generateuserstory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"story-workers/internal/common/camunda"
	"story-workers/internal/common/errors"
	"story-workers/internal/common/logger"
	"story-workers/internal/common/metrics"
	"story-workers/internal/common/observability"
	"story-workers/internal/story"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const TaskType = "generate-user-story"

type Handler struct {
	config       *Config
	logger       logger.Logger
	generator    *story.Generator
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if obs == nil {
		obs = &observability.Observability{}
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       config,
		logger:       log,
		generator:    story.NewGenerator(),
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log).WithMaxRetries(config.MaxRetries),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)
	defer span.End()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	output, err := h.process(ctx, job)
	if err == nil {
		err = h.completeJob(ctx, client, job, output)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		stdErr := errors.Normalize(err)
		decision := h.errorHandler.HandleJobError(ctx, client, job, stdErr)
		d := timer.Failed(string(stdErr.Code))
		h.obs.RecordJobProcessed(ctx, TaskType, string(decision))
		h.obs.RecordJobDuration(ctx, TaskType, d, string(decision))
		return
	}

	d := timer.Completed()
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, d, "completed")

	h.logger.Info("story generated", map[string]interface{}{
		"jobKey":      job.Key,
		"storyId":     output.StoryID,
		"duration_ms": d.Milliseconds(),
	})
}

func (h *Handler) process(ctx context.Context, job entities.Job) (*Output, error) {
	input, err := h.parseInput(job)
	if err != nil {
		return nil, err
	}
	return h.Execute(ctx, input)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if h.config.InputSchema != nil {
		variables, err := job.GetVariablesAsMap()
		if err != nil {
			return nil, errors.NewInvalidInputError(fmt.Sprintf("parse variables: %v", err))
		}
		result, err := h.config.InputSchema.Validate(variables)
		if err != nil {
			return nil, errors.NewInvalidInputError(err.Error())
		}
		if !result.Valid {
			return nil, errors.NewSchemaValidationFailedError(TaskType+".input", result.Messages())
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// Execute generates the story for input. Generation itself never fails; an
// error means the output did not satisfy the output schema.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	_, span := h.obs.StartSpan(ctx, "story.generate",
		attribute.Int("notes.length", len(input.Notes)))
	defer span.End()

	doc, analysis := h.generator.Explain(input.Notes)

	output := &Output{
		StoryID: story.StoryID(input.Notes),
		Story:   doc,
	}

	includeAnalysis := h.config.IncludeAnalysis
	if input.IncludeAnalysis != nil {
		includeAnalysis = *input.IncludeAnalysis
	}
	if includeAnalysis {
		output.Analysis = &analysis
	}

	if h.config.OutputSchema != nil {
		result, err := h.config.OutputSchema.Validate(output)
		if err != nil {
			return nil, errors.NewStoryGenerationFailedError(err)
		}
		if !result.Valid {
			return nil, errors.NewStoryGenerationFailedError(result)
		}
	}

	requestType := string(analysis.Context.RequestType)
	scenarioSet := string(analysis.ScenarioSet)
	metrics.StoriesGenerated.WithLabelValues(requestType, scenarioSet).Inc()
	h.obs.RecordStory(ctx, requestType, scenarioSet)

	span.SetAttributes(
		attribute.String("story.id", output.StoryID),
		attribute.String("story.request_type", requestType),
		attribute.String("story.system", analysis.System),
	)

	h.logger.Debug("story analysis", map[string]interface{}{
		"requestType":   requestType,
		"urgency":       string(analysis.Context.Urgency),
		"complexity":    string(analysis.Context.Complexity),
		"system":        analysis.System,
		"scenarioSet":   scenarioSet,
		"tasks":         len(doc.Tasks),
		"dependencies":  len(doc.Dependencies),
		"risks":         len(doc.Risks),
		"monetaryCount": len(analysis.Context.MonetaryAmounts),
	})

	return output, nil
}

// completeRetry bounds the retries of a complete command on transient
// gateway errors.
var completeRetry = &camunda.RetryConfig{
	MaxRetries: 2,
	BaseDelay:  100 * time.Millisecond,
	MaxDelay:   time.Second,
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return errors.NewJobCompletionFailedError(err)
	}

	err = camunda.Retry(ctx, completeRetry, "complete-job", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return errors.NewJobCompletionFailedError(err)
	}
	return nil
}

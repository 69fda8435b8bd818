// internal/workers/story/render-user-story/handler.go
package renderuserstory

import (
	"context"
	"encoding/json"
	stderrors "errors"
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

const TaskType = "render-user-story"

type Handler struct {
	config       *Config
	logger       logger.Logger
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
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log).WithMaxRetries(config.MaxRetries),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.Int64("job.key", job.Key))
	defer span.End()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	input, err := h.parseInput(job)
	var output *Output
	if err == nil {
		output, err = h.Execute(ctx, input)
	}
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

// Execute renders input.Story in the requested format, falling back to the
// configured default when none is given.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	format := h.config.DefaultFormat
	if input.Format != "" {
		parsed, err := story.ParseFormat(input.Format)
		if err != nil {
			return nil, errors.NewUnsupportedFormatError(input.Format)
		}
		format = parsed
	}

	_, span := h.obs.StartSpan(ctx, "story.render", attribute.String("story.format", string(format)))
	defer span.End()

	document, err := story.Render(input.Story, format)
	if err != nil {
		if stderrors.Is(err, story.ErrUnsupportedFormat) {
			return nil, errors.NewUnsupportedFormatError(string(format))
		}
		return nil, errors.NewRenderFailedError(string(format), err)
	}

	output := &Output{Document: document, Format: format}

	if h.config.OutputSchema != nil {
		result, err := h.config.OutputSchema.Validate(output)
		if err != nil {
			return nil, errors.NewRenderFailedError(string(format), err)
		}
		if !result.Valid {
			return nil, errors.NewRenderFailedError(string(format), result)
		}
	}

	metrics.StoriesRendered.WithLabelValues(string(format)).Inc()
	span.SetAttributes(attribute.Int("document.length", len(document)))

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

// internal/workers/story/render-user-story/config.go
package renderuserstory

import (
	"fmt"
	"time"

	"story-workers/internal/common/config"
	"story-workers/internal/common/validation"
	"story-workers/internal/story"
	"story-workers/pkg/registry"
)

type Config struct {
	Timeout       time.Duration
	MaxRetries    int
	DefaultFormat story.Format

	InputSchema  *validation.Schema
	OutputSchema *validation.Schema
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		DefaultFormat: story.FormatMarkdown,
	}
}

// NewConfig builds the worker config from the app config and the registry
// entry for TaskType. reg may be nil. The registry timeout and retries apply
// unless workers.<task type> sets them.
func NewConfig(appCfg *config.Config, reg *registry.ActivityRegistry) (*Config, error) {
	cfg := LoadConfig()
	if appCfg == nil {
		return cfg, nil
	}

	if appCfg.Story.DefaultFormat != "" {
		format, err := story.ParseFormat(appCfg.Story.DefaultFormat)
		if err != nil {
			return nil, fmt.Errorf("story.default_format: %w", err)
		}
		cfg.DefaultFormat = format
	}

	var activity *registry.Activity
	if reg != nil {
		activity, _ = reg.Find(TaskType)
	}
	if activity != nil {
		if d := activity.TimeoutDuration(); d > 0 {
			cfg.Timeout = d
		}
		if activity.Retries > 0 {
			cfg.MaxRetries = activity.Retries
		}
	}
	if worker, ok := appCfg.Workers[TaskType]; ok {
		if worker.Timeout > 0 {
			cfg.Timeout = config.GetDuration(worker.Timeout)
		}
		if worker.MaxRetries > 0 {
			cfg.MaxRetries = worker.MaxRetries
		}
	}
	if activity == nil {
		return cfg, nil
	}

	input, output, err := activity.Schemas()
	if err != nil {
		return nil, fmt.Errorf("registry schemas for %s: %w", TaskType, err)
	}
	if appCfg.Registry.ValidateInput {
		cfg.InputSchema = input
	}
	if appCfg.Registry.ValidateOutput {
		cfg.OutputSchema = output
	}
	return cfg, nil
}

// internal/workers/story/generate-user-story/config.go
package generateuserstory

import (
	"fmt"
	"time"

	"story-workers/internal/common/config"
	"story-workers/internal/common/validation"
	"story-workers/pkg/registry"
)

type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	IncludeAnalysis bool

	// Nil schemas skip validation.
	InputSchema  *validation.Schema
	OutputSchema *validation.Schema
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
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

	cfg.IncludeAnalysis = appCfg.Story.IncludeAnalysis

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

// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"story-workers/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

func ParseRegistry(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks that every activity has a task type, that ids and task
// types are unique, and that all schemas compile.
func (r *ActivityRegistry) Validate() error {
	ids := make(map[string]bool, len(r.Activities))
	taskTypes := make(map[string]bool, len(r.Activities))

	for i := range r.Activities {
		a := &r.Activities[i]
		if a.TaskType == "" {
			return fmt.Errorf("activity %q: taskType is required", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		taskTypes[a.TaskType] = true

		if a.ID != "" {
			if ids[a.ID] {
				return fmt.Errorf("duplicate activity id %q", a.ID)
			}
			ids[a.ID] = true
		}

		if _, _, err := a.Schemas(); err != nil {
			return fmt.Errorf("activity %q: %w", a.TaskType, err)
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				return fmt.Errorf("activity %q: invalid timeout %q", a.TaskType, a.Timeout)
			}
		}
	}
	return nil
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Schemas compiles the input and output schemas. Missing schemas compile to
// nil, which accepts any document.
func (a *Activity) Schemas() (input, output *validation.Schema, err error) {
	input, err = validation.Compile(a.InputSchema)
	if err != nil {
		return nil, nil, fmt.Errorf("input schema: %w", err)
	}
	output, err = validation.Compile(a.OutputSchema)
	if err != nil {
		return nil, nil, fmt.Errorf("output schema: %w", err)
	}
	return input, output, nil
}

// TimeoutDuration parses Timeout, returning 0 when unset.
func (a *Activity) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(a.Timeout)
	return d
}

// internal/common/camunda/worker.go
package camunda

import (
	"sync"

	"story-workers/internal/common/config"
	"story-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every story worker. Handlers complete, fail or
// throw the job themselves.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType. The worker name defaults to the
// task type.
func NewWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		Name(taskType).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	w := &CamundaWorker{
		worker:   jobWorker,
		logger:   log.WithFields(map[string]interface{}{"taskType": taskType}),
		taskType: taskType,
	}
	w.logger.Info("worker started", map[string]interface{}{
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return w
}

func (w *CamundaWorker) TaskType() string { return w.taskType }

// Stop closes the worker and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

// Pool tracks the open workers of a process.
type Pool struct {
	mu      sync.Mutex
	workers []*CamundaWorker
}

// Start opens a worker unless the config disables it. It reports whether a
// worker was opened.
func (p *Pool) Start(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) bool {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	w := NewWorker(client, taskType, wcfg, handler, log)

	p.mu.Lock()
	p.workers = append(p.workers, w)
	p.mu.Unlock()
	return true
}

// TaskTypes lists the task types with an open worker.
func (p *Pool) TaskTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.workers))
	for _, w := range p.workers {
		out = append(out, w.taskType)
	}
	return out
}

// StopAll stops every worker concurrently.
func (p *Pool) StopAll() {
	p.mu.Lock()
	workers := p.workers
	p.workers = nil
	p.mu.Unlock()

	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func(w *CamundaWorker) {
			defer wg.Done()
			w.Stop()
		}(w)
	}
	wg.Wait()
}

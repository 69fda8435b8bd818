// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "story_worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	StoriesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_generated_total",
			Help: "User stories generated, by request type and scenario set",
		},
		[]string{"request_type", "scenario_set"},
	)

	StoriesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_rendered_total",
			Help: "User stories rendered, by output format",
		},
		[]string{"format"},
	)
)

// JobTimer tracks one job from activation to completion or failure.
type JobTimer struct {
	taskType string
	start    time.Time
}

// StartJob marks a job of taskType as active.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

// Completed records a successful job and returns its duration.
func (t *JobTimer) Completed() time.Duration {
	WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
	return t.finish()
}

// Failed records a failed job under errorCode and returns its duration.
func (t *JobTimer) Failed(errorCode string) time.Duration {
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
	return t.finish()
}

func (t *JobTimer) finish() time.Duration {
	d := time.Since(t.start)
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(d.Seconds())
	return d
}

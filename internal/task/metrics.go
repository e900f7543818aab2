package task

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskRunCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_task_runs_total",
		Help: "The number of scheduled task runs by result",
	}, []string{"task", "result"})

	taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crm_task_duration_seconds",
		Help:    "Scheduled task run duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
)

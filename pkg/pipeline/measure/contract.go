package measure

import (
	"time"

	"github.com/askiada/go-compose/pkg/pipeline/model"
)

// Measure collects one metric per step alias.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric aggregates the durations of the operations run by a step.
type Metric interface {
	AddDuration(op model.Operation, elapsed time.Duration)
	AVGDuration(op model.Operation) time.Duration
	TotalDuration(op model.Operation) time.Duration
	Count(op model.Operation) int64
	AllOperations() map[model.Operation]OperationInfo
}

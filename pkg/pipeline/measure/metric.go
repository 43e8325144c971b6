package measure

import (
	"sync"
	"time"

	"github.com/askiada/go-compose/pkg/pipeline/model"
)

// OperationInfo sums the calls of one operation.
type OperationInfo struct {
	Elapsed time.Duration
	Total   int64
}

type DefaultMetric struct {
	mu  *sync.Mutex
	ops map[model.Operation]*OperationInfo
}

func newDefaultMetric() *DefaultMetric {
	return &DefaultMetric{
		mu:  &sync.Mutex{},
		ops: make(map[model.Operation]*OperationInfo),
	}
}

func (mt *DefaultMetric) AddDuration(op model.Operation, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.ops[op] == nil {
		mt.ops[op] = &OperationInfo{}
	}
	info := mt.ops[op]
	info.Elapsed += elapsed
	info.Total++
}

func (mt *DefaultMetric) AVGDuration(op model.Operation) time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	info := mt.ops[op]
	if info == nil || info.Total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(info.Elapsed) / float64(info.Total)))
}

func (mt *DefaultMetric) TotalDuration(op model.Operation) time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if info := mt.ops[op]; info != nil {
		return info.Elapsed
	}

	return 0
}

func (mt *DefaultMetric) Count(op model.Operation) int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if info := mt.ops[op]; info != nil {
		return info.Total
	}

	return 0
}

// AllOperations returns a snapshot of every recorded operation.
func (mt *DefaultMetric) AllOperations() map[model.Operation]OperationInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	res := make(map[model.Operation]OperationInfo, len(mt.ops))
	for op, info := range mt.ops {
		res[op] = *info
	}

	return res
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)

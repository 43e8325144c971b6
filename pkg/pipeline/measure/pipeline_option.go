package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/pipeline/model"
)

var ErrUnknownStep = errors.New("no metric registered for step")

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Alias)

	return nil
}

func (pm *pipelineMeasure) OnStepOperation(step *model.StepInfo, op model.Operation, duration time.Duration) error {
	mt := pm.GetMetric(step.Alias)
	if mt == nil {
		return errors.Wrapf(ErrUnknownStep, "%q", step.Alias)
	}
	mt.AddDuration(op, duration)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure returns a pipeline option recording step operation durations in measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}

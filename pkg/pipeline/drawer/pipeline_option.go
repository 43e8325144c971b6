package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/pipeline/measure"
	"github.com/askiada/go-compose/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
}

func (pd *pipelineDrawer) New() error {
	pd.startTime = time.Now()
	err := pd.AddStep(model.StartStep.Alias, "")
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = pd.AddStep(model.EndStep.Alias, "")
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	err := pd.AddStep(step.Alias, step.TypeName)
	if err != nil {
		return err
	}
	err = pd.AddLink(parentStep.Alias, step.Alias)
	if err != nil {
		return err
	}
	if step.Terminal {
		err = pd.AddLink(step.Alias, model.EndStep.Alias)
		if err != nil {
			return err
		}
	}

	return nil
}

func (pd *pipelineDrawer) OnStepOperation(*model.StepInfo, model.Operation, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		err := pd.SetTotalTime(model.EndStep.Alias, pd.startTime)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	return pd.Draw()
}

// PipelineDrawer returns a pipeline option drawing the chain with drawer when the pipeline finishes.
// When msr is not nil, its metrics annotate the drawing; it should be the measure attached to the same pipeline.
func PipelineDrawer(drawer Drawer, msr measure.Measure) model.PipelineOption {
	return &pipelineDrawer{
		Drawer: drawer,
		m:      msr,
	}
}

package drawer

import (
	"io"
	"time"

	"github.com/askiada/go-compose/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName, label string) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentStepName, childrenStepName string) error
	// Draw writes the pipeline graph to the drawer destination.
	Draw() error
	// Render writes the pipeline graph to wrt.
	Render(wrt io.Writer) error
	// SetTotalTime sets the time elapsed since startTime on the step.
	SetTotalTime(stepName string, startTime time.Time) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(measure measure.Measure) error
}

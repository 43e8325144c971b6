package pipeline

import (
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Step is the contract every pipeline element satisfies.
type Step interface {
	// Fit learns the step state from X and, when the step needs it, y.
	Fit(X mat.Matrix, y []float64) error
	// GetParams returns the current value of every step parameter.
	GetParams() Params
	// SetParams replaces the given parameters.
	SetParams(params Params) error
}

// Transformer is implemented by steps that can feed the next step.
type Transformer interface {
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// Predictor is implemented by steps producing one value per sample.
type Predictor interface {
	Predict(X mat.Matrix) ([]float64, error)
}

// ProbaPredictor is implemented by steps producing class probabilities, one row per sample.
type ProbaPredictor interface {
	PredictProba(X mat.Matrix) (*mat.Dense, error)
}

// Capability is a set of operations a step type supports.
type Capability uint8

const (
	CapFit Capability = 1 << iota
	CapTransform
	CapPredict
	CapPredictProba
)

// Has reports whether all the capabilities in other are set.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	names := []string{}
	for _, entry := range []struct {
		c    Capability
		name string
	}{
		{CapFit, "fit"},
		{CapTransform, "transform"},
		{CapPredict, "predict"},
		{CapPredictProba, "predict_proba"},
	} {
		if c.Has(entry.c) {
			names = append(names, entry.name)
		}
	}

	return strings.Join(names, "|")
}

// capabilitiesOf returns the capabilities of a step value based on its method set.
func capabilitiesOf(v any) Capability {
	var caps Capability
	if _, ok := v.(Step); ok {
		caps |= CapFit
	}
	if _, ok := v.(Transformer); ok {
		caps |= CapTransform
	}
	if _, ok := v.(Predictor); ok {
		caps |= CapPredict
	}
	if _, ok := v.(ProbaPredictor); ok {
		caps |= CapPredictProba
	}

	return caps
}

// StepType is a named factory of steps with a fixed set of capabilities.
type StepType struct {
	name    string
	caps    Capability
	factory func(params Params) (Step, error)
}

// NewStepType declares a step type whose capabilities are those of S.
//
// S should be a concrete type, usually a pointer to a struct: the method set of its zero value is inspected once here
// so that composition never has to build a step to know what it can do.
func NewStepType[S Step](name string, factory func(params Params) (S, error)) StepType {
	var zero S
	return StepType{
		name: name,
		caps: capabilitiesOf(zero),
		factory: func(params Params) (Step, error) {
			step, err := factory(params)
			if err != nil {
				return nil, err
			}

			return step, nil
		},
	}
}

// DeclareStepType declares a step type with an explicit capability set.
func DeclareStepType(name string, caps Capability, factory func(params Params) (Step, error)) StepType {
	return StepType{name: name, caps: caps, factory: factory}
}

// Name returns the step type name.
func (t StepType) Name() string {
	return t.name
}

// Capabilities returns the declared capabilities.
func (t StepType) Capabilities() Capability {
	if t.factory == nil {
		return 0
	}

	return t.caps
}

// CheckPosition verifies that t can be used at a terminal or non-terminal position of a chain.
func CheckPosition(t StepType, terminal bool) error {
	caps := t.Capabilities()
	if !caps.Has(CapFit) {
		return errors.Wrapf(ErrMissingCapability, "%s must implement fit", t.name)
	}
	if !terminal {
		if !caps.Has(CapTransform) {
			return errors.Wrapf(ErrMissingCapability, "%s must implement transform", t.name)
		}

		return nil
	}
	if !caps.Has(CapPredict) && !caps.Has(CapPredictProba) {
		return errors.Wrapf(ErrMissingCapability, "%s must implement predict or predict_proba", t.name)
	}

	return nil
}

// build creates a step and checks it honours the declared capabilities.
func (t StepType) build(params Params) (Step, error) {
	if params == nil {
		params = Params{}
	}
	step, err := t.factory(params)
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, errors.Wrapf(ErrMissingCapability, "%s factory returned no step", t.name)
	}
	if got := capabilitiesOf(step); !got.Has(t.caps) {
		return nil, errors.Wrapf(ErrMissingCapability, "%s declares %s but implements %s", t.name, t.caps, got)
	}

	return step, nil
}

package pipeline

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const defaultClassName = "Pipeline"

// Descriptor pairs a step alias with the type of the step.
type Descriptor struct {
	Alias string
	Type  StepType
}

// DescriptorFrom builds a descriptor from an untyped alias, as found in decoded declarations.
func DescriptorFrom(alias any, stepType StepType) (Descriptor, error) {
	name, ok := alias.(string)
	if !ok {
		return Descriptor{}, errors.Wrapf(ErrInvalidAliasType, "%v (%T)", alias, alias)
	}

	return Descriptor{Alias: name, Type: stepType}, nil
}

// Class is a validated chain of step types. It is immutable and can build any number of pipelines.
type Class struct {
	name        string
	steps       []Descriptor
	isValidName func(alias string) bool
	logger      *slog.Logger
}

// Compose validates steps and returns the class of pipelines chaining them in order.
//
// Every step but the last must be able to fit and transform. The last step must be able to fit and either predict
// or predict probabilities. Aliases must be valid names and must not repeat.
//
// Repeated aliases are reported first. Then each step is checked in order, its alias before its capabilities.
func Compose(steps []Descriptor, opts ...Option) (*Class, error) {
	class := &Class{
		name:        defaultClassName,
		isValidName: IsValidName,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(class)
	}

	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	err := checkDuplicates(steps)
	if err != nil {
		return nil, err
	}
	for i, desc := range steps {
		if !class.isValidName(desc.Alias) {
			return nil, errors.Wrapf(ErrInvalidAliasName, "%q", desc.Alias)
		}
		err := CheckPosition(desc.Type, i == len(steps)-1)
		if err != nil {
			return nil, stepError(err, desc.Alias)
		}
	}

	class.steps = make([]Descriptor, len(steps))
	copy(class.steps, steps)

	class.logger.Debug("pipeline class composed", "class", class.name, "steps", class.Aliases())

	return class, nil
}

// checkDuplicates rejects repeated aliases. It runs before any other check of the steps sharing them.
func checkDuplicates(steps []Descriptor) error {
	seen := make(map[string]struct{}, len(steps))
	duplicated := []string{}
	for _, desc := range steps {
		if _, ok := seen[desc.Alias]; ok {
			duplicated = append(duplicated, desc.Alias)
		}
		seen[desc.Alias] = struct{}{}
	}
	if len(duplicated) > 0 {
		return errors.Wrapf(ErrDuplicateAlias, "%q", duplicated)
	}

	return nil
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Steps returns a copy of the class descriptors in chain order.
func (c *Class) Steps() []Descriptor {
	res := make([]Descriptor, len(c.steps))
	copy(res, c.steps)

	return res
}

// Aliases returns the step aliases in chain order.
func (c *Class) Aliases() []string {
	res := make([]string, len(c.steps))
	for i, desc := range c.steps {
		res[i] = desc.Alias
	}

	return res
}

func (c *Class) terminal() Descriptor {
	return c.steps[len(c.steps)-1]
}

// CanTransform reports whether pipelines of the class support Transform.
func (c *Class) CanTransform() bool {
	return c.terminal().Type.Capabilities().Has(CapTransform)
}

// CanPredict reports whether pipelines of the class support Predict.
func (c *Class) CanPredict() bool {
	return c.terminal().Type.Capabilities().Has(CapPredict)
}

// CanPredictProba reports whether pipelines of the class support PredictProba.
func (c *Class) CanPredictProba() bool {
	return c.terminal().Type.Capabilities().Has(CapPredictProba)
}

// StepType exposes the class as a step type, so that it can be nested in another class.
func (c *Class) StepType(name string) StepType {
	caps := CapFit | c.terminal().Type.Capabilities()&(CapTransform|CapPredict|CapPredictProba)

	return DeclareStepType(name, caps, func(params Params) (Step, error) {
		pipe, err := c.New(params)
		if err != nil {
			return nil, err
		}

		return &nestedStep{pipe: pipe}, nil
	})
}

// nestedStep adapts a pipeline to the step contract.
type nestedStep struct {
	pipe *Pipeline
}

func (s *nestedStep) Fit(X mat.Matrix, y []float64) error {
	_, err := s.pipe.Fit(X, y)
	return err
}

func (s *nestedStep) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.pipe.Transform(X)
}

func (s *nestedStep) Predict(X mat.Matrix) ([]float64, error) {
	return s.pipe.Predict(X)
}

func (s *nestedStep) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	return s.pipe.PredictProba(X)
}

func (s *nestedStep) GetParams() Params {
	return s.pipe.GetParams()
}

func (s *nestedStep) SetParams(params Params) error {
	return s.pipe.SetParams(params)
}

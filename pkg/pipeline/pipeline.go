package pipeline

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-compose/pkg/pipeline/model"
)

// NamedStep is a step instance together with its alias.
type NamedStep struct {
	Alias string
	Step  Step
}

// Pipeline is an instance of a class. It owns one step per class descriptor.
//
// A pipeline is not safe for concurrent use: callers must serialise Fit and SetParams calls.
type Pipeline struct {
	class  *Class
	steps  []NamedStep
	infos  []*model.StepInfo
	opts   []model.PipelineOption
	logger *slog.Logger
	fitted bool
}

// New builds a pipeline from flat parameters.
//
// Keys are split on the first separator: "impute__strategy" sets the "strategy" parameter of the "impute" step.
// Steps without parameters use their defaults. A key that does not start with a known alias fails with
// ErrUnknownParameter.
func (c *Class) New(flat Params, opts ...model.PipelineOption) (*Pipeline, error) {
	parts, err := partition(flat, c.Aliases())
	if err != nil {
		return nil, err
	}

	pipe := &Pipeline{
		class:  c,
		steps:  make([]NamedStep, len(c.steps)),
		infos:  make([]*model.StepInfo, len(c.steps)),
		opts:   opts,
		logger: c.logger.With("class", c.name),
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	parent := model.StartStep
	for i, desc := range c.steps {
		step, err := desc.Type.build(parts[desc.Alias])
		if err != nil {
			return nil, stepError(err, desc.Alias)
		}
		pipe.steps[i] = NamedStep{Alias: desc.Alias, Step: step}
		pipe.infos[i] = &model.StepInfo{
			Alias:    desc.Alias,
			TypeName: desc.Type.Name(),
			Position: i,
			Terminal: i == len(c.steps)-1,
		}

		for _, opt := range opts {
			err := opt.PrepareStep(parent, pipe.infos[i])
			if err != nil {
				return nil, errors.Wrap(err, "unable to run prepare step function")
			}
		}
		parent = pipe.infos[i]
	}

	return pipe, nil
}

// MustNew is like New but panics on error. It suits classes built with default parameters.
func (c *Class) MustNew(flat Params, opts ...model.PipelineOption) *Pipeline {
	pipe, err := c.New(flat, opts...)
	if err != nil {
		panic(err)
	}

	return pipe
}

// Class returns the class the pipeline was built from.
func (p *Pipeline) Class() *Class {
	return p.class
}

// Steps returns the steps in chain order.
func (p *Pipeline) Steps() []NamedStep {
	res := make([]NamedStep, len(p.steps))
	copy(res, p.steps)

	return res
}

// IsFitted reports whether the last Fit succeeded and no parameter changed since.
func (p *Pipeline) IsFitted() bool {
	return p.fitted
}

func (p *Pipeline) observe(idx int, op model.Operation, start time.Time) error {
	elapsed := time.Since(start)
	for _, opt := range p.opts {
		err := opt.OnStepOperation(p.infos[idx], op, elapsed)
		if err != nil {
			return errors.Wrapf(err, "unable to run %s hook of step %q", op, p.infos[idx].Alias)
		}
	}

	return nil
}

func (p *Pipeline) transformer(idx int) Transformer {
	//nolint:forcetypeassert // capabilities are checked when the step is built
	return p.steps[idx].Step.(Transformer)
}

// transformStep applies the transform of step idx to X.
func (p *Pipeline) transformStep(X mat.Matrix, idx int) (mat.Matrix, error) {
	start := time.Now()
	out, err := p.transformer(idx).Transform(X)
	if err != nil {
		return nil, err
	}
	err = p.observe(idx, model.TransformOperation, start)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// transformUntil applies the transform of the steps before end to X.
func (p *Pipeline) transformUntil(X mat.Matrix, end int) (mat.Matrix, error) {
	for i := 0; i < end; i++ {
		var err error
		X, err = p.transformStep(X, i)
		if err != nil {
			return nil, err
		}
	}

	return X, nil
}

func (p *Pipeline) checkFitted(op model.Operation) {
	if !p.fitted {
		p.logger.Warn("pipeline is not fitted, steps may hold missing or stale state", "operation", string(op))
	}
}

// Fit fits every step in order. Each step but the last transforms the data seen by the next one.
//
// It returns the pipeline itself so that calls can be chained. On error the steps keep whatever state they reached.
func (p *Pipeline) Fit(X mat.Matrix, y []float64) (*Pipeline, error) {
	p.fitted = false
	last := len(p.steps) - 1
	for i := 0; i <= last; i++ {
		start := time.Now()
		err := p.steps[i].Step.Fit(X, y)
		if err != nil {
			return p, err
		}
		err = p.observe(i, model.FitOperation, start)
		if err != nil {
			return p, err
		}
		p.logger.Debug("step fitted", "step", p.steps[i].Alias, "elapsed", time.Since(start))

		if i == last {
			break
		}
		X, err = p.transformStep(X, i)
		if err != nil {
			return p, err
		}
	}
	p.fitted = true

	return p, nil
}

// Transform applies every step transform in order. The terminal step must support transform.
func (p *Pipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.class.CanTransform() {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "transform on %q", p.steps[len(p.steps)-1].Alias)
	}
	p.checkFitted(model.TransformOperation)

	return p.transformUntil(X, len(p.steps))
}

// Predict transforms X through every step but the last, then predicts with the last one.
func (p *Pipeline) Predict(X mat.Matrix) ([]float64, error) {
	last := len(p.steps) - 1
	predictor, ok := p.steps[last].Step.(Predictor)
	if !ok || !p.class.CanPredict() {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "predict on %q", p.steps[last].Alias)
	}
	p.checkFitted(model.PredictOperation)

	Xt, err := p.transformUntil(X, last)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := predictor.Predict(Xt)
	if err != nil {
		return nil, err
	}
	err = p.observe(last, model.PredictOperation, start)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// PredictProba transforms X through every step but the last, then predicts class probabilities with the last one.
func (p *Pipeline) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	last := len(p.steps) - 1
	predictor, ok := p.steps[last].Step.(ProbaPredictor)
	if !ok || !p.class.CanPredictProba() {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "predict_proba on %q", p.steps[last].Alias)
	}
	p.checkFitted(model.PredictProbaOperation)

	Xt, err := p.transformUntil(X, last)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := predictor.PredictProba(Xt)
	if err != nil {
		return nil, err
	}
	err = p.observe(last, model.PredictProbaOperation, start)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// FitTransform fits the pipeline and transforms X with it.
func (p *Pipeline) FitTransform(X mat.Matrix, y []float64) (mat.Matrix, error) {
	if !p.class.CanTransform() {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "transform on %q", p.steps[len(p.steps)-1].Alias)
	}
	_, err := p.Fit(X, y)
	if err != nil {
		return nil, err
	}

	return p.Transform(X)
}

// FitPredict fits the pipeline and predicts X with it.
func (p *Pipeline) FitPredict(X mat.Matrix, y []float64) ([]float64, error) {
	if !p.class.CanPredict() {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "predict on %q", p.steps[len(p.steps)-1].Alias)
	}
	_, err := p.Fit(X, y)
	if err != nil {
		return nil, err
	}

	return p.Predict(X)
}

// GetParams returns the flat parameters of every step.
func (p *Pipeline) GetParams() Params {
	res := Params{}
	for _, named := range p.steps {
		for name, value := range named.Step.GetParams() {
			res[Join(named.Alias, name)] = value
		}
	}

	return res
}

// ParamNames returns the flat parameter names in step order, then in the name order of each step.
func (p *Pipeline) ParamNames() []string {
	res := []string{}
	for _, named := range p.steps {
		for _, name := range named.Step.GetParams().Names() {
			res = append(res, Join(named.Alias, name))
		}
	}

	return res
}

// SetParams routes flat parameters to the existing steps, in step order.
//
// Unknown keys are rejected before any step is touched. A step error stops the routing and leaves the previous steps
// updated. Steps are not refitted: once parameters change, IsFitted reports false and the fitted state held by the
// steps is stale until the next Fit.
func (p *Pipeline) SetParams(flat Params) error {
	parts, err := partition(flat, p.class.Aliases())
	if err != nil {
		return err
	}
	if len(flat) == 0 {
		return nil
	}

	p.fitted = false
	for _, named := range p.steps {
		sub := parts[named.Alias]
		if len(sub) == 0 {
			continue
		}
		err := named.Step.SetParams(sub)
		if err != nil {
			return stepError(err, named.Alias)
		}
	}

	return nil
}

// Finish runs the finish hook of every pipeline option.
func (p *Pipeline) Finish() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

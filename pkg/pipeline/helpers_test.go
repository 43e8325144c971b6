package pipeline_test

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-compose/pkg/pipeline"
)

var (
	errStepFailure = errors.New("step failure")
	errNotFitted   = errors.New("not fitted")
	errBadParam    = errors.New("bad parameter")
)

type trace struct {
	calls []string
}

func (t *trace) add(call string) {
	if t != nil {
		t.calls = append(t.calls, call)
	}
}

// scaler multiplies every value by its factor. It predicts the first column of its input.
type scaler struct {
	name   string
	trace  *trace
	Factor float64
	Fail   bool
	fitted bool
}

func (s *scaler) GetParams() pipeline.Params {
	return pipeline.Params{"factor": s.Factor, "fail": s.Fail}
}

func (s *scaler) SetParams(params pipeline.Params) error {
	for name, value := range params {
		switch name {
		case "factor":
			v, ok := value.(float64)
			if !ok {
				return errors.Wrap(errBadParam, name)
			}
			s.Factor = v
		case "fail":
			v, ok := value.(bool)
			if !ok {
				return errors.Wrap(errBadParam, name)
			}
			s.Fail = v
		default:
			return errors.Wrap(errBadParam, name)
		}
	}

	return nil
}

func (s *scaler) Fit(_ mat.Matrix, _ []float64) error {
	s.trace.add(s.name + ".fit")
	if s.Fail {
		return errStepFailure
	}
	s.fitted = true

	return nil
}

func (s *scaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	s.trace.add(s.name + ".transform")
	if !s.fitted {
		return nil, errNotFitted
	}
	out := mat.DenseCopyOf(X)
	out.Scale(s.Factor, out)

	return out, nil
}

func (s *scaler) Predict(X mat.Matrix) ([]float64, error) {
	s.trace.add(s.name + ".predict")
	if !s.fitted {
		return nil, errNotFitted
	}

	return mat.Col(nil, 0, X), nil
}

func scalerType(name string, tr *trace) pipeline.StepType {
	return pipeline.NewStepType(name, func(params pipeline.Params) (*scaler, error) {
		s := &scaler{name: name, trace: tr, Factor: 1}
		err := s.SetParams(params)
		if err != nil {
			return nil, err
		}

		return s, nil
	})
}

// summer predicts the sum of every row plus its bias.
type summer struct {
	name   string
	trace  *trace
	Bias   float64
	fitSum float64
	fitted bool
}

func (s *summer) GetParams() pipeline.Params {
	return pipeline.Params{"bias": s.Bias}
}

func (s *summer) SetParams(params pipeline.Params) error {
	for name, value := range params {
		v, ok := value.(float64)
		if name != "bias" || !ok {
			return errors.Wrap(errBadParam, name)
		}
		s.Bias = v
	}

	return nil
}

func (s *summer) Fit(X mat.Matrix, _ []float64) error {
	s.trace.add(s.name + ".fit")
	s.fitSum = mat.Sum(X)
	s.fitted = true

	return nil
}

func (s *summer) Predict(X mat.Matrix) ([]float64, error) {
	s.trace.add(s.name + ".predict")
	if !s.fitted {
		return nil, errNotFitted
	}
	rows, _ := X.Dims()
	res := make([]float64, rows)
	for i := range res {
		res[i] = floats.Sum(mat.Row(nil, i, X)) + s.Bias
	}

	return res, nil
}

func (s *summer) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	s.trace.add(s.name + ".predict_proba")
	if !s.fitted {
		return nil, errNotFitted
	}
	rows, _ := X.Dims()
	res := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		res.SetRow(i, []float64{0.25, 0.75})
	}

	return res, nil
}

func summerType(name string, tr *trace) pipeline.StepType {
	return pipeline.NewStepType(name, func(params pipeline.Params) (*summer, error) {
		s := &summer{name: name, trace: tr}
		err := s.SetParams(params)
		if err != nil {
			return nil, err
		}

		return s, nil
	})
}

// Steps with a single capability on top of fit.

type fitOnly struct{}

func (*fitOnly) Fit(mat.Matrix, []float64) error { return nil }

func (*fitOnly) GetParams() pipeline.Params { return pipeline.Params{} }

func (*fitOnly) SetParams(pipeline.Params) error { return nil }

type transformOnly struct{ fitOnly }

func (*transformOnly) Transform(X mat.Matrix) (mat.Matrix, error) { return X, nil }

type predictOnly struct{ fitOnly }

func (*predictOnly) Predict(X mat.Matrix) ([]float64, error) {
	rows, _ := X.Dims()
	return make([]float64, rows), nil
}

type probaOnly struct{ fitOnly }

func (*probaOnly) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	rows, _ := X.Dims()
	return mat.NewDense(rows, 1, nil), nil
}

func fitOnlyType() pipeline.StepType {
	return pipeline.NewStepType("fit_only", func(pipeline.Params) (*fitOnly, error) { return &fitOnly{}, nil })
}

func transformOnlyType() pipeline.StepType {
	return pipeline.NewStepType("transform_only", func(pipeline.Params) (*transformOnly, error) {
		return &transformOnly{}, nil
	})
}

func predictOnlyType() pipeline.StepType {
	return pipeline.NewStepType("predict_only", func(pipeline.Params) (*predictOnly, error) {
		return &predictOnly{}, nil
	})
}

func probaOnlyType() pipeline.StepType {
	return pipeline.NewStepType("proba_only", func(pipeline.Params) (*probaOnly, error) {
		return &probaOnly{}, nil
	})
}

func sample() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})
}

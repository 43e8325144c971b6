package steps

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-compose/pkg/pipeline"
)

// StandardScaler centres columns on their mean and scales them to unit variance. NaN values are ignored during fit
// and kept during transform.
type StandardScaler struct {
	WithMean bool
	WithStd  bool

	mean  []float64
	scale []float64
}

func NewStandardScaler(params pipeline.Params) (*StandardScaler, error) {
	sc := &StandardScaler{WithMean: true, WithStd: true}
	err := sc.SetParams(params)
	if err != nil {
		return nil, err
	}

	return sc, nil
}

func (s *StandardScaler) GetParams() pipeline.Params {
	return pipeline.Params{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// SetParams applies every parameter or none of them.
func (s *StandardScaler) SetParams(params pipeline.Params) error {
	withMean, withStd := s.WithMean, s.WithStd
	for name, value := range params {
		var target *bool
		switch name {
		case "with_mean":
			target = &withMean
		case "with_std":
			target = &withStd
		default:
			return errors.Wrapf(ErrUnknownParam, "standard scaler: %q", name)
		}
		v, err := asBool(name, value)
		if err != nil {
			return err
		}
		*target = v
	}
	s.WithMean, s.WithStd = withMean, withStd

	return nil
}

func (s *StandardScaler) Fit(X mat.Matrix, _ []float64) error {
	err := checkNotEmpty(X)
	if err != nil {
		return err
	}
	_, cols := X.Dims()
	mean := make([]float64, cols)
	scale := make([]float64, cols)
	for j := 0; j < cols; j++ {
		scale[j] = 1
		values := columnValues(X, j)
		if len(values) == 0 {
			continue
		}
		m, variance := stat.PopMeanVariance(values, nil)
		if s.WithMean {
			mean[j] = m
		}
		if s.WithStd && variance > 0 {
			scale[j] = math.Sqrt(variance)
		}
	}
	s.mean = mean
	s.scale = scale

	return nil
}

func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if s.mean == nil {
		return nil, errors.Wrap(ErrNotFitted, "standard scaler")
	}
	err := checkNotEmpty(X)
	if err != nil {
		return nil, err
	}
	rows, err := checkFeatures(X, len(s.mean))
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(rows, len(s.mean), nil)
	out.Apply(func(i, j int, _ float64) float64 {
		return (X.At(i, j) - s.mean[j]) / s.scale[j]
	}, out)

	return out, nil
}

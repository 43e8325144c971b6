package steps

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-compose/pkg/pipeline"
)

const (
	StrategyMean         = "mean"
	StrategyMedian       = "median"
	StrategyMostFrequent = "most_frequent"
	StrategyConstant     = "constant"
)

// SimpleImputer replaces NaN values with a per column statistic learnt during fit.
// Columns without any value seen during fit are filled with FillValue.
type SimpleImputer struct {
	Strategy  string
	FillValue float64

	statistics []float64
}

// NewSimpleImputer creates an imputer using the mean strategy by default.
func NewSimpleImputer(params pipeline.Params) (*SimpleImputer, error) {
	imp := &SimpleImputer{Strategy: StrategyMean}
	err := imp.SetParams(params)
	if err != nil {
		return nil, err
	}

	return imp, nil
}

func (s *SimpleImputer) GetParams() pipeline.Params {
	return pipeline.Params{
		"strategy":   s.Strategy,
		"fill_value": s.FillValue,
	}
}

// SetParams applies every parameter or none of them.
func (s *SimpleImputer) SetParams(params pipeline.Params) error {
	strategy, fillValue := s.Strategy, s.FillValue
	for name, value := range params {
		var err error
		switch name {
		case "strategy":
			strategy, err = asString(name, value, StrategyMean, StrategyMedian, StrategyMostFrequent, StrategyConstant)
		case "fill_value":
			fillValue, err = asFloat(name, value)
		default:
			err = errors.Wrapf(ErrUnknownParam, "simple imputer: %q", name)
		}
		if err != nil {
			return err
		}
	}
	s.Strategy, s.FillValue = strategy, fillValue

	return nil
}

func (s *SimpleImputer) Fit(X mat.Matrix, _ []float64) error {
	err := checkNotEmpty(X)
	if err != nil {
		return err
	}
	_, cols := X.Dims()
	statistics := make([]float64, cols)
	for j := 0; j < cols; j++ {
		values := columnValues(X, j)
		if len(values) == 0 || s.Strategy == StrategyConstant {
			statistics[j] = s.FillValue

			continue
		}
		switch s.Strategy {
		case StrategyMean:
			statistics[j] = stat.Mean(values, nil)
		case StrategyMedian:
			sort.Float64s(values)
			statistics[j] = median(values)
		case StrategyMostFrequent:
			statistics[j] = mostFrequent(values)
		}
	}
	s.statistics = statistics

	return nil
}

func (s *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if s.statistics == nil {
		return nil, errors.Wrap(ErrNotFitted, "simple imputer")
	}
	err := checkNotEmpty(X)
	if err != nil {
		return nil, err
	}
	rows, err := checkFeatures(X, len(s.statistics))
	if err != nil {
		return nil, err
	}

	out := mat.DenseCopyOf(X)
	for i := 0; i < rows; i++ {
		for j, fill := range s.statistics {
			if math.IsNaN(out.At(i, j)) {
				out.Set(i, j, fill)
			}
		}
	}

	return out, nil
}

// Statistics returns the fill value of every column.
func (s *SimpleImputer) Statistics() []float64 {
	return append([]float64{}, s.statistics...)
}

// median expects sorted values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mostFrequent returns the most frequent value, the smallest one on ties.
func mostFrequent(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := math.Inf(1), 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best, bestCount = v, count
		}
	}

	return best
}

package steps

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-compose/pkg/pipeline"
)

const defaultVarSmoothing = 1e-9

// GaussianNB is a Gaussian naive Bayes classifier. Class labels are the distinct values of y.
type GaussianNB struct {
	// Priors of the classes, in ascending label order. Nil means the class frequencies of y.
	Priors       []float64
	VarSmoothing float64

	classes    []float64
	classPrior []float64
	theta      *mat.Dense
	variance   *mat.Dense
}

func NewGaussianNB(params pipeline.Params) (*GaussianNB, error) {
	nb := &GaussianNB{VarSmoothing: defaultVarSmoothing}
	err := nb.SetParams(params)
	if err != nil {
		return nil, err
	}

	return nb, nil
}

func (nb *GaussianNB) GetParams() pipeline.Params {
	var priors []float64
	if nb.Priors != nil {
		priors = append([]float64{}, nb.Priors...)
	}

	return pipeline.Params{
		"priors":        priors,
		"var_smoothing": nb.VarSmoothing,
	}
}

// SetParams applies every parameter or none of them.
func (nb *GaussianNB) SetParams(params pipeline.Params) error {
	priors, varSmoothing := nb.Priors, nb.VarSmoothing
	for name, value := range params {
		var err error
		switch name {
		case "priors":
			priors, err = asFloats(name, value)
		case "var_smoothing":
			varSmoothing, err = asFloat(name, value)
			if err == nil && varSmoothing < 0 {
				err = errors.Wrapf(ErrInvalidParam, "%s: %v is negative", name, varSmoothing)
			}
		default:
			err = errors.Wrapf(ErrUnknownParam, "gaussian naive bayes: %q", name)
		}
		if err != nil {
			return err
		}
	}
	nb.Priors, nb.VarSmoothing = priors, varSmoothing

	return nil
}

func (nb *GaussianNB) Fit(X mat.Matrix, y []float64) error {
	err := checkNotEmpty(X)
	if err != nil {
		return err
	}
	err = checkFinite(X)
	if err != nil {
		return err
	}
	rows, cols := X.Dims()
	if len(y) != rows {
		return errors.Wrapf(ErrShape, "y has %d values, X has %d samples", len(y), rows)
	}
	err = checkTarget(y)
	if err != nil {
		return err
	}

	classes := uniqueSorted(y)
	index := make(map[float64]int, len(classes))
	for k, c := range classes {
		index[c] = k
	}

	priors, err := nb.priors(classes, y)
	if err != nil {
		return err
	}

	epsilon := nb.VarSmoothing * maxColumnVariance(X)
	if epsilon == 0 {
		epsilon = nb.VarSmoothing
	}

	theta := mat.NewDense(len(classes), cols, nil)
	variance := mat.NewDense(len(classes), cols, nil)
	byClass := make([][]int, len(classes))
	for i, label := range y {
		byClass[index[label]] = append(byClass[index[label]], i)
	}
	for k, samples := range byClass {
		values := make([]float64, len(samples))
		for j := 0; j < cols; j++ {
			for n, i := range samples {
				values[n] = X.At(i, j)
			}
			m, v := stat.PopMeanVariance(values, nil)
			theta.Set(k, j, m)
			variance.Set(k, j, v+epsilon)
		}
	}

	nb.classes = classes
	nb.classPrior = priors
	nb.theta = theta
	nb.variance = variance

	return nil
}

func (nb *GaussianNB) priors(classes, y []float64) ([]float64, error) {
	if nb.Priors != nil {
		if len(nb.Priors) != len(classes) {
			return nil, errors.Wrapf(ErrInvalidParam, "priors: %d values for %d classes", len(nb.Priors), len(classes))
		}
		for _, p := range nb.Priors {
			if p < 0 {
				return nil, errors.Wrapf(ErrInvalidParam, "priors: %v is negative", p)
			}
		}
		if sum := floats.Sum(nb.Priors); math.Abs(sum-1) > 1e-6 {
			return nil, errors.Wrapf(ErrInvalidParam, "priors: sum is %v", sum)
		}

		return append([]float64{}, nb.Priors...), nil
	}

	counts := make(map[float64]float64, len(classes))
	for _, label := range y {
		counts[label]++
	}
	res := make([]float64, len(classes))
	for k, c := range classes {
		res[k] = counts[c] / float64(len(y))
	}

	return res, nil
}

func maxColumnVariance(X mat.Matrix) float64 {
	rows, cols := X.Dims()
	values := make([]float64, rows)
	best := 0.0
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			values[i] = X.At(i, j)
		}
		_, v := stat.PopMeanVariance(values, nil)
		best = math.Max(best, v)
	}

	return best
}

// jointLogLikelihood returns log P(c) + log P(x|c) for every sample and class.
func (nb *GaussianNB) jointLogLikelihood(X mat.Matrix) (*mat.Dense, error) {
	if nb.theta == nil {
		return nil, errors.Wrap(ErrNotFitted, "gaussian naive bayes")
	}
	err := checkNotEmpty(X)
	if err != nil {
		return nil, err
	}
	_, cols := nb.theta.Dims()
	rows, err := checkFeatures(X, cols)
	if err != nil {
		return nil, err
	}
	err = checkFinite(X)
	if err != nil {
		return nil, err
	}

	res := mat.NewDense(rows, len(nb.classes), nil)
	for k := range nb.classes {
		base := math.Log(nb.classPrior[k])
		for j := 0; j < cols; j++ {
			base -= 0.5 * math.Log(2*math.Pi*nb.variance.At(k, j))
		}
		for i := 0; i < rows; i++ {
			ll := base
			for j := 0; j < cols; j++ {
				diff := X.At(i, j) - nb.theta.At(k, j)
				ll -= 0.5 * diff * diff / nb.variance.At(k, j)
			}
			res.Set(i, k, ll)
		}
	}

	return res, nil
}

func (nb *GaussianNB) Predict(X mat.Matrix) ([]float64, error) {
	jll, err := nb.jointLogLikelihood(X)
	if err != nil {
		return nil, err
	}
	rows, _ := jll.Dims()
	res := make([]float64, rows)
	for i := 0; i < rows; i++ {
		res[i] = nb.classes[floats.MaxIdx(jll.RawRowView(i))]
	}

	return res, nil
}

// PredictProba returns one column per class, in the order of Classes.
func (nb *GaussianNB) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	jll, err := nb.jointLogLikelihood(X)
	if err != nil {
		return nil, err
	}
	rows, _ := jll.Dims()
	for i := 0; i < rows; i++ {
		row := jll.RawRowView(i)
		norm := floats.LogSumExp(row)
		for k := range row {
			row[k] = math.Exp(row[k] - norm)
		}
	}

	return jll, nil
}

// Classes returns the class labels seen during fit, in ascending order.
func (nb *GaussianNB) Classes() []float64 {
	return append([]float64{}, nb.classes...)
}

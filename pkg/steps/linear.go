package steps

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-compose/pkg/pipeline"
)

// rcond is the relative singular value threshold under which a direction is dropped from the least squares
// solution.
const rcond = 1e-12

// LinearRegression is an ordinary least squares regressor.
// Rank deficient inputs, such as one hot encoded columns next to an intercept, get the minimum norm solution.
type LinearRegression struct {
	FitIntercept bool

	coef      []float64
	intercept float64
}

func NewLinearRegression(params pipeline.Params) (*LinearRegression, error) {
	lr := &LinearRegression{FitIntercept: true}
	err := lr.SetParams(params)
	if err != nil {
		return nil, err
	}

	return lr, nil
}

func (lr *LinearRegression) GetParams() pipeline.Params {
	return pipeline.Params{
		"fit_intercept": lr.FitIntercept,
	}
}

func (lr *LinearRegression) SetParams(params pipeline.Params) error {
	fitIntercept := lr.FitIntercept
	for name, value := range params {
		if name != "fit_intercept" {
			return errors.Wrapf(ErrUnknownParam, "linear regression: %q", name)
		}
		v, err := asBool(name, value)
		if err != nil {
			return err
		}
		fitIntercept = v
	}
	lr.FitIntercept = fitIntercept

	return nil
}

func (lr *LinearRegression) Fit(X mat.Matrix, y []float64) error {
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

	a := mat.DenseCopyOf(X)
	b := mat.NewVecDense(rows, append([]float64{}, y...))
	xMean := make([]float64, cols)
	yMean := 0.0
	if lr.FitIntercept {
		for j := 0; j < cols; j++ {
			xMean[j] = stat.Mean(mat.Col(nil, j, a), nil)
		}
		a.Apply(func(_, j int, v float64) float64 {
			return v - xMean[j]
		}, a)
		yMean = stat.Mean(y, nil)
		b.AddScaledVec(b, -1, mat.NewVecDense(rows, constant(rows, yMean)))
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return errors.Wrap(ErrInvalidInput, "linear regression: SVD factorisation failed")
	}
	coef := make([]float64, cols)
	if rank := svd.Rank(rcond); rank > 0 {
		var sol mat.VecDense
		svd.SolveVecTo(&sol, b, rank)
		copy(coef, sol.RawVector().Data)
	}

	lr.coef = coef
	lr.intercept = yMean - floats.Dot(xMean, coef)

	return nil
}

func (lr *LinearRegression) Predict(X mat.Matrix) ([]float64, error) {
	if lr.coef == nil {
		return nil, errors.Wrap(ErrNotFitted, "linear regression")
	}
	err := checkNotEmpty(X)
	if err != nil {
		return nil, err
	}
	rows, err := checkFeatures(X, len(lr.coef))
	if err != nil {
		return nil, err
	}
	err = checkFinite(X)
	if err != nil {
		return nil, err
	}

	var out mat.VecDense
	out.MulVec(X, mat.NewVecDense(len(lr.coef), lr.coef))
	res := make([]float64, rows)
	for i := range res {
		res[i] = out.AtVec(i) + lr.intercept
	}

	return res, nil
}

// Coef returns the fitted coefficients and intercept.
func (lr *LinearRegression) Coef() (coef []float64, intercept float64) {
	return append([]float64{}, lr.coef...), lr.intercept
}

func constant(n int, v float64) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = v
	}

	return res
}

package steps

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func asFloat(name string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}

	return 0, errors.Wrapf(ErrInvalidParam, "%s: %v (%T) is not a number", name, value, value)
}

func asBool(name string, value any) (bool, error) {
	v, ok := value.(bool)
	if !ok {
		return false, errors.Wrapf(ErrInvalidParam, "%s: %v (%T) is not a boolean", name, value, value)
	}

	return v, nil
}

func asString(name string, value any, allowed ...string) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidParam, "%s: %v (%T) is not a string", name, value, value)
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}

	return "", errors.Wrapf(ErrInvalidParam, "%s: %q is not one of %q", name, v, allowed)
}

// asFloats accepts nil, a float slice or a slice of numbers as decoded from YAML.
// Empty slices, typed or not, mean unset and are returned as nil.
func asFloats(name string, value any) ([]float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []float64:
		if len(v) == 0 {
			return nil, nil
		}
		res := make([]float64, len(v))
		copy(res, v)

		return res, nil
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		res := make([]float64, len(v))
		for i, item := range v {
			f, err := asFloat(name, item)
			if err != nil {
				return nil, err
			}
			res[i] = f
		}

		return res, nil
	}

	return nil, errors.Wrapf(ErrInvalidParam, "%s: %v (%T) is not a list of numbers", name, value, value)
}

// asInts accepts nil, an int slice or a slice of whole numbers as decoded from YAML.
// Empty slices, typed or not, mean unset and are returned as nil.
func asInts(name string, value any) ([]int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []int:
		if len(v) == 0 {
			return nil, nil
		}
		res := make([]int, len(v))
		copy(res, v)

		return res, nil
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		res := make([]int, len(v))
		for i, item := range v {
			f, err := asFloat(name, item)
			if err != nil {
				return nil, err
			}
			if f != math.Trunc(f) {
				return nil, errors.Wrapf(ErrInvalidParam, "%s: %v is not an integer", name, item)
			}
			res[i] = int(f)
		}

		return res, nil
	}

	return nil, errors.Wrapf(ErrInvalidParam, "%s: %v (%T) is not a list of integers", name, value, value)
}

// checkFeatures fails when X does not have the number of columns seen during fit.
func checkFeatures(X mat.Matrix, want int) (rows int, err error) {
	rows, cols := X.Dims()
	if cols != want {
		return 0, errors.Wrapf(ErrShape, "X has %d features, expected %d", cols, want)
	}

	return rows, nil
}

// checkFinite fails when X holds a NaN or an infinite value.
func checkFinite(X mat.Matrix) error {
	rows, cols := X.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Wrapf(ErrInvalidInput, "X[%d][%d] is %v", i, j, v)
			}
		}
	}

	return nil
}

// columnValues returns the non NaN values of column j.
func columnValues(X mat.Matrix, j int) []float64 {
	rows, _ := X.Dims()
	res := make([]float64, 0, rows)
	for i := 0; i < rows; i++ {
		if v := X.At(i, j); !math.IsNaN(v) {
			res = append(res, v)
		}
	}

	return res
}

// checkNotEmpty fails when X has no sample or no feature.
func checkNotEmpty(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrapf(ErrShape, "X is %dx%d", rows, cols)
	}

	return nil
}

// checkTarget fails when y holds a NaN or an infinite value.
func checkTarget(y []float64) error {
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidInput, "y[%d] is %v", i, v)
		}
	}

	return nil
}

package steps

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-compose/pkg/pipeline"
)

const (
	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
)

// OneHotEncoder replaces categorical columns with one indicator column per category seen during fit.
//
// Encoded columns are expanded in place, other columns are copied as is. A NaN value is kept as NaN in every
// indicator column of its feature, so that an imputer can fill it later.
type OneHotEncoder struct {
	HandleUnknown string
	Columns       []int

	nFeatures  int
	encoded    map[int]bool
	categories map[int][]float64
}

// NewOneHotEncoder creates an encoder. By default every column is encoded and unknown categories are an error.
func NewOneHotEncoder(params pipeline.Params) (*OneHotEncoder, error) {
	enc := &OneHotEncoder{HandleUnknown: HandleUnknownError}
	err := enc.SetParams(params)
	if err != nil {
		return nil, err
	}

	return enc, nil
}

func (e *OneHotEncoder) GetParams() pipeline.Params {
	var columns []int
	if e.Columns != nil {
		columns = append([]int{}, e.Columns...)
	}

	return pipeline.Params{
		"handle_unknown": e.HandleUnknown,
		"columns":        columns,
	}
}

// SetParams applies every parameter or none of them.
func (e *OneHotEncoder) SetParams(params pipeline.Params) error {
	handleUnknown, columns := e.HandleUnknown, e.Columns
	for name, value := range params {
		var err error
		switch name {
		case "handle_unknown":
			handleUnknown, err = asString(name, value, HandleUnknownError, HandleUnknownIgnore)
		case "columns":
			columns, err = asInts(name, value)
		default:
			err = errors.Wrapf(ErrUnknownParam, "one hot encoder: %q", name)
		}
		if err != nil {
			return err
		}
	}
	e.HandleUnknown, e.Columns = handleUnknown, columns

	return nil
}

func (e *OneHotEncoder) Fit(X mat.Matrix, _ []float64) error {
	err := checkNotEmpty(X)
	if err != nil {
		return err
	}
	_, cols := X.Dims()
	encoded := make(map[int]bool, cols)
	if e.Columns == nil {
		for j := 0; j < cols; j++ {
			encoded[j] = true
		}
	}
	for _, j := range e.Columns {
		if j < 0 || j >= cols {
			return errors.Wrapf(ErrShape, "column %d out of range [0, %d)", j, cols)
		}
		encoded[j] = true
	}

	categories := make(map[int][]float64, len(encoded))
	for j := range encoded {
		categories[j] = uniqueSorted(columnValues(X, j))
	}

	e.nFeatures = cols
	e.encoded = encoded
	e.categories = categories

	return nil
}

func (e *OneHotEncoder) outputColumns() int {
	total := 0
	for j := 0; j < e.nFeatures; j++ {
		if e.encoded[j] {
			total += len(e.categories[j])
		} else {
			total++
		}
	}

	return total
}

func (e *OneHotEncoder) Transform(X mat.Matrix) (mat.Matrix, error) {
	if e.categories == nil {
		return nil, errors.Wrap(ErrNotFitted, "one hot encoder")
	}
	err := checkNotEmpty(X)
	if err != nil {
		return nil, err
	}
	rows, err := checkFeatures(X, e.nFeatures)
	if err != nil {
		return nil, err
	}
	outCols := e.outputColumns()
	if outCols == 0 {
		return nil, errors.Wrap(ErrShape, "no category was seen during fit")
	}

	out := mat.NewDense(rows, outCols, nil)
	for i := 0; i < rows; i++ {
		offset := 0
		for j := 0; j < e.nFeatures; j++ {
			v := X.At(i, j)
			if !e.encoded[j] {
				out.Set(i, offset, v)
				offset++

				continue
			}
			cats := e.categories[j]
			switch idx := sort.SearchFloat64s(cats, v); {
			case math.IsNaN(v):
				for k := range cats {
					out.Set(i, offset+k, math.NaN())
				}
			case idx < len(cats) && cats[idx] == v:
				out.Set(i, offset+idx, 1)
			case e.HandleUnknown == HandleUnknownError:
				return nil, errors.Wrapf(ErrUnknownCategory, "value %v in column %d", v, j)
			}
			offset += len(cats)
		}
	}

	return out, nil
}

func uniqueSorted(values []float64) []float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	res := []float64{}
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			res = append(res, v)
		}
	}

	return res
}

// Package dataset reads tabular training data into matrices.
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmpty          = errors.New("dataset has no sample")
	ErrTargetNotFound = errors.New("target column not found")
	ErrInvalidValue   = errors.New("value is not a number")
)

// Dataset holds the features and the target of a CSV file.
type Dataset struct {
	Features []string
	Target   string
	X        *mat.Dense
	Y        []float64
}

// Rows returns the number of samples.
func (d *Dataset) Rows() int {
	return len(d.Y)
}

func isMissing(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "na", "nan", "null":
		return true
	}

	return false
}

// Read parses a CSV with a header line. The target column is the last one when target is empty.
// Empty, "NA", "NaN" and "null" feature cells become NaN. Target cells must be numbers.
func Read(r io.Reader, target string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read csv")
	}
	if len(records) < 2 {
		return nil, ErrEmpty
	}

	header := records[0]
	targetIdx := len(header) - 1
	if target != "" {
		targetIdx = -1
		for i, name := range header {
			if strings.TrimSpace(name) == target {
				targetIdx = i
			}
		}
		if targetIdx < 0 {
			return nil, errors.Wrapf(ErrTargetNotFound, "%q", target)
		}
	}
	if len(header) < 2 {
		return nil, errors.Wrap(ErrEmpty, "at least one feature and a target are needed")
	}

	ds := &Dataset{Target: strings.TrimSpace(header[targetIdx])}
	for i, name := range header {
		if i != targetIdx {
			ds.Features = append(ds.Features, strings.TrimSpace(name))
		}
	}

	rows := records[1:]
	ds.X = mat.NewDense(len(rows), len(ds.Features), nil)
	ds.Y = make([]float64, len(rows))
	for i, record := range rows {
		col := 0
		for j, cell := range record {
			if j == targetIdx {
				v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
				if err != nil {
					return nil, errors.Wrapf(ErrInvalidValue, "line %d, target %q", i+2, cell)
				}
				ds.Y[i] = v

				continue
			}
			v := math.NaN()
			if !isMissing(cell) {
				v, err = strconv.ParseFloat(strings.TrimSpace(cell), 64)
				if err != nil {
					return nil, errors.Wrapf(ErrInvalidValue, "line %d, column %q: %q", i+2, header[j], cell)
				}
			}
			ds.X.Set(i, col, v)
			col++
		}
	}

	return ds, nil
}

// Load reads the CSV file at path.
func Load(path, target string) (*Dataset, error) {
	file, err := os.Open(path) //nolint:gosec // user provided dataset path
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	return Read(file, target)
}

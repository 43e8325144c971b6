package steps

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/pipeline"
)

var (
	OneHot      = pipeline.NewStepType("onehot", NewOneHotEncoder)
	Imputer     = pipeline.NewStepType("imputer", NewSimpleImputer)
	Scaler      = pipeline.NewStepType("scaler", NewStandardScaler)
	NaiveBayes  = pipeline.NewStepType("gaussiannb", NewGaussianNB)
	LinearModel = pipeline.NewStepType("linear", NewLinearRegression)
)

var registry = map[string]pipeline.StepType{
	OneHot.Name():      OneHot,
	Imputer.Name():     Imputer,
	Scaler.Name():      Scaler,
	NaiveBayes.Name():  NaiveBayes,
	LinearModel.Name(): LinearModel,
}

// Lookup returns the step type registered under name.
func Lookup(name string) (pipeline.StepType, error) {
	stepType, ok := registry[name]
	if !ok {
		return pipeline.StepType{}, errors.Wrapf(ErrUnknownStepType, "%q, available: %q", name, Names())
	}

	return stepType, nil
}

// Names returns the registered step type names in ascending order.
func Names() []string {
	res := make([]string, 0, len(registry))
	for name := range registry {
		res = append(res, name)
	}
	sort.Strings(res)

	return res
}

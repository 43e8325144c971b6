// Package baseline provides ready made pipeline classes to compare tuned pipelines against.
package baseline

import (
	"github.com/askiada/go-compose/pkg/pipeline"
	"github.com/askiada/go-compose/pkg/steps"
)

func initialSteps() []pipeline.Descriptor {
	return []pipeline.Descriptor{
		{Alias: "ohe", Type: steps.OneHot},
		{Alias: "impute", Type: steps.Imputer},
	}
}

func mustCompose(name string, terminal pipeline.Descriptor, opts ...pipeline.Option) *pipeline.Class {
	class, err := pipeline.Compose(append(initialSteps(), terminal), append([]pipeline.Option{pipeline.WithName(name)}, opts...)...)
	if err != nil {
		panic(err)
	}

	return class
}

// NaiveBayes returns the class one hot encoding, imputing and classifying with Gaussian naive Bayes.
func NaiveBayes(opts ...pipeline.Option) *pipeline.Class {
	return mustCompose("NaiveBayesBaseliner", pipeline.Descriptor{Alias: "naive", Type: steps.NaiveBayes}, opts...)
}

// LinearRegression returns the class one hot encoding, imputing and fitting a linear regression.
func LinearRegression(opts ...pipeline.Option) *pipeline.Class {
	return mustCompose("LinearRegressionBaseliner", pipeline.Descriptor{Alias: "linear", Type: steps.LinearModel}, opts...)
}

// NewNaiveBayes builds a naive Bayes baseline pipeline with default parameters.
func NewNaiveBayes(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return NaiveBayes(opts...).New(nil)
}

// NewLinearRegression builds a linear regression baseline pipeline with default parameters.
func NewLinearRegression(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return LinearRegression(opts...).New(nil)
}

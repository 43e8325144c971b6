// Package steps provides reference step types for composed pipelines.
//
// The steps work on gonum matrices where missing values are NaN. They follow the parameter names of their
// scikit-learn counterparts so that flat parameter keys read the same ("impute__strategy", "naive__var_smoothing").
package steps

// Package pipeline composes fit/transform steps into reusable pipeline classes.
//
// A class is declared once from an ordered list of (alias, step type) pairs. Every step but the last must be able
// to transform data, and the last one must be able to predict values or class probabilities. Capabilities are
// checked when the class is composed, so an invalid chain never produces a class.
//
// Instances are built from a single flat parameter mapping whose keys are the step alias and the parameter name
// joined by a double underscore, for example "impute__strategy". The mapping is split by alias and each part is
// handed to the matching step type, which lets hyperparameter search tools create many variants of the same chain
// without walking nested parameter trees.
//
// Instances delegate Fit, Transform, Predict and PredictProba across their steps in declaration order. Errors
// returned by a step are surfaced unchanged and stop the chain on the spot; nothing is rolled back.
package pipeline

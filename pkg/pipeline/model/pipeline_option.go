package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// PrepareStep runs once per step when the pipeline is built, in step order.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOperation runs every time a step operation returns without error.
	OnStepOperation(step *StepInfo, op Operation, duration time.Duration) error
	// Finish runs when the caller is done with the pipeline.
	Finish() error
}

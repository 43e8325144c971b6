package steps

import "github.com/pkg/errors"

var (
	ErrNotFitted       = errors.New("step is not fitted")
	ErrUnknownParam    = errors.New("unknown parameter")
	ErrInvalidParam    = errors.New("invalid parameter value")
	ErrShape           = errors.New("unexpected input shape")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStepType = errors.New("unknown step type")
)

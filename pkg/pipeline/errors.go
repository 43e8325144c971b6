package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrNoSteps              = errors.New("at least one step must be set")
	ErrInvalidAliasType     = errors.New("alias must be a string")
	ErrInvalidAliasName     = errors.New("alias is not allowed")
	ErrMissingCapability    = errors.New("step type is missing a required capability")
	ErrDuplicateAlias       = errors.New("repeated aliases are not allowed")
	ErrUnknownParameter     = errors.New("parameter does not match any step alias")
	ErrUnsupportedOperation = errors.New("operation is not supported by the terminal step")
)

// stepError decorates an error raised while building a step with its alias.
func stepError(err error, alias string) error {
	return errors.Wrapf(err, "step %q", alias)
}

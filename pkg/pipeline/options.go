package pipeline

import (
	"log/slog"
)

// Option configures a class at composition time.
type Option func(c *Class)

// WithName sets the class name used in logs and drawings.
func WithName(name string) Option {
	return func(c *Class) {
		c.name = name
	}
}

// WithNamePredicate replaces IsValidName as the alias validity check.
func WithNamePredicate(isValidName func(alias string) bool) Option {
	return func(c *Class) {
		if isValidName != nil {
			c.isValidName = isValidName
		}
	}
}

// WithLogger sets the logger of the class and of every pipeline built from it.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Class) {
		if logger != nil {
			c.logger = logger
		}
	}
}

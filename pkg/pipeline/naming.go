package pipeline

import (
	"regexp"
	"strings"
)

// Separator joins a step alias and a parameter name in flat parameter keys.
const Separator = "__"

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidName reports whether name can be used as a step alias.
// A valid name is an identifier that does not contain the separator.
func IsValidName(name string) bool {
	return namePattern.MatchString(name) && !strings.Contains(name, Separator)
}

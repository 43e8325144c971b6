package pipeline

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Params maps parameter names to values.
//
// The same type holds the parameters of a single step ("strategy") and the flat parameters of a whole pipeline
// ("impute__strategy").
type Params map[string]any

// Names returns the parameter names in ascending order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	res := make(Params, len(p))
	for name, value := range p {
		res[name] = value
	}

	return res
}

// Join builds the flat key of a step parameter.
func Join(alias, param string) string {
	return alias + Separator + param
}

// Split splits a flat key on the first separator.
func Split(key string) (alias, param string, ok bool) {
	return strings.Cut(key, Separator)
}

// partition routes flat parameters to their step, keyed by alias.
// Every alias gets an entry, empty when no parameter targets it.
func partition(flat Params, aliases []string) (map[string]Params, error) {
	res := make(map[string]Params, len(aliases))
	for _, alias := range aliases {
		res[alias] = Params{}
	}

	for _, key := range flat.Names() {
		alias, param, ok := Split(key)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownParameter, "%q has no step prefix", key)
		}
		sub, known := res[alias]
		if !known {
			return nil, errors.Wrapf(ErrUnknownParameter, "%q", key)
		}
		sub[param] = flat[key]
	}

	return res, nil
}

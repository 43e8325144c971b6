package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-compose/pkg/pipeline"
)

const (
	// AppName names the configuration directory.
	AppName = "gocompose"
	// DefaultFileName is the declaration read when no path is given.
	DefaultFileName = "pipeline.yaml"
)

var ErrStepTypeMissing = errors.New("step type must be set")

// DefaultPath returns the declaration path used when none is given, under the XDG config directory
// (~/.config/gocompose/pipeline.yaml on Linux).
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, DefaultFileName)
}

// Declaration is a pipeline class as written in a YAML file.
type Declaration struct {
	Name   string          `yaml:"name"`
	Steps  []StepEntry     `yaml:"steps"`
	Params pipeline.Params `yaml:"params"`
}

// StepEntry is a declared step. The alias is kept as a raw node so that non string aliases can be reported.
type StepEntry struct {
	Alias yaml.Node `yaml:"alias"`
	Type  string    `yaml:"type"`
}

// Parse decodes a declaration.
func Parse(data []byte) (*Declaration, error) {
	var decl Declaration
	err := yaml.Unmarshal(data, &decl)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode declaration")
	}
	if decl.Params == nil {
		decl.Params = pipeline.Params{}
	}

	return &decl, nil
}

// Load reads and decodes the declaration stored at path.
func Load(path string) (*Declaration, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user provided declaration path
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	decl, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return decl, nil
}

// alias returns the alias value: a string for string scalars, the decoded value otherwise.
// A missing alias is nil.
func (e StepEntry) alias() any {
	if e.Alias.Kind == 0 {
		return nil
	}
	if e.Alias.Kind == yaml.ScalarNode && e.Alias.ShortTag() == "!!str" {
		return e.Alias.Value
	}
	var value any
	if err := e.Alias.Decode(&value); err != nil {
		return nil
	}

	return value
}

// Descriptors resolves the declared steps with lookup, usually steps.Lookup.
func (d *Declaration) Descriptors(lookup func(name string) (pipeline.StepType, error)) ([]pipeline.Descriptor, error) {
	res := make([]pipeline.Descriptor, 0, len(d.Steps))
	for i, entry := range d.Steps {
		if entry.Type == "" {
			return nil, errors.Wrapf(ErrStepTypeMissing, "step %d", i)
		}
		stepType, err := lookup(entry.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		desc, err := pipeline.DescriptorFrom(entry.alias(), stepType)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		res = append(res, desc)
	}

	return res, nil
}

// Compose resolves and composes the declared class.
func (d *Declaration) Compose(lookup func(name string) (pipeline.StepType, error), opts ...pipeline.Option) (*pipeline.Class, error) {
	descs, err := d.Descriptors(lookup)
	if err != nil {
		return nil, err
	}
	if d.Name != "" {
		opts = append([]pipeline.Option{pipeline.WithName(d.Name)}, opts...)
	}

	return pipeline.Compose(descs, opts...)
}

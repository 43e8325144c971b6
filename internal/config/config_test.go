package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/pkg/pipeline"
	"github.com/askiada/go-compose/pkg/steps"
)

const declaration = `
name: Classifier
steps:
  - alias: ohe
    type: onehot
  - alias: impute
    type: imputer
  - alias: clf
    type: gaussiannb
params:
  impute__strategy: median
  clf__priors: [0.25, 0.75]
`

func TestCompose(t *testing.T) {
	t.Parallel()

	decl, err := config.Parse([]byte(declaration))
	require.NoError(t, err)
	assert.Equal(t, "Classifier", decl.Name)

	class, err := decl.Compose(steps.Lookup)
	require.NoError(t, err)
	assert.Equal(t, "Classifier", class.Name())
	assert.Equal(t, []string{"ohe", "impute", "clf"}, class.Aliases())

	pipe, err := class.New(decl.Params)
	require.NoError(t, err)
	params := pipe.GetParams()
	assert.Equal(t, "median", params["impute__strategy"])
	assert.Equal(t, []float64{0.25, 0.75}, params["clf__priors"])
}

func TestComposeErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		yaml string
		err  error
	}{
		"integer alias": {
			yaml: "steps:\n  - alias: 5\n    type: gaussiannb\n",
			err:  pipeline.ErrInvalidAliasType,
		},
		"null alias": {
			yaml: "steps:\n  - alias: null\n    type: gaussiannb\n",
			err:  pipeline.ErrInvalidAliasType,
		},
		"list alias": {
			yaml: "steps:\n  - alias: [a]\n    type: gaussiannb\n",
			err:  pipeline.ErrInvalidAliasType,
		},
		"missing alias": {
			yaml: "steps:\n  - type: gaussiannb\n",
			err:  pipeline.ErrInvalidAliasType,
		},
		"quoted number alias": {
			yaml: "steps:\n  - alias: \"5\"\n    type: gaussiannb\n",
			err:  pipeline.ErrInvalidAliasName,
		},
		"missing type": {
			yaml: "steps:\n  - alias: clf\n",
			err:  config.ErrStepTypeMissing,
		},
		"unknown type": {
			yaml: "steps:\n  - alias: clf\n    type: forest\n",
			err:  steps.ErrUnknownStepType,
		},
		"no steps": {
			yaml: "name: Empty\n",
			err:  pipeline.ErrNoSteps,
		},
		"repeated alias": {
			yaml: "steps:\n  - alias: a\n    type: imputer\n  - alias: a\n    type: gaussiannb\n",
			err:  pipeline.ErrDuplicateAlias,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			decl, err := config.Parse([]byte(tc.yaml))
			require.NoError(t, err)
			_, err = decl.Compose(steps.Lookup)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(declaration), 0o600))

	decl, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, decl.Steps, 3)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	decl, err = config.Parse([]byte("steps: []\n"))
	require.NoError(t, err)
	assert.NotNil(t, decl.Params)

	_, err = config.Parse([]byte("steps: {"))
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path := config.DefaultPath()
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, config.DefaultFileName, filepath.Base(path))
	assert.Equal(t, config.AppName, filepath.Base(filepath.Dir(path)))
}

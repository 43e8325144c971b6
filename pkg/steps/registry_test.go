package steps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/pkg/pipeline"
	"github.com/askiada/go-compose/pkg/steps"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"gaussiannb", "imputer", "linear", "onehot", "scaler"}, steps.Names())

	tcs := map[string]pipeline.Capability{
		"onehot":     pipeline.CapFit | pipeline.CapTransform,
		"imputer":    pipeline.CapFit | pipeline.CapTransform,
		"scaler":     pipeline.CapFit | pipeline.CapTransform,
		"gaussiannb": pipeline.CapFit | pipeline.CapPredict | pipeline.CapPredictProba,
		"linear":     pipeline.CapFit | pipeline.CapPredict,
	}
	for name, caps := range tcs {
		stepType, err := steps.Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, stepType.Name())
		assert.Equal(t, caps, stepType.Capabilities(), name)
	}

	_, err := steps.Lookup("svm")
	assert.ErrorIs(t, err, steps.ErrUnknownStepType)
}

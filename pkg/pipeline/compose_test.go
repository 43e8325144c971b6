package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/pkg/pipeline"
)

func TestComposeNoSteps(t *testing.T) {
	t.Parallel()

	_, err := pipeline.Compose(nil)
	assert.ErrorIs(t, err, pipeline.ErrNoSteps)
}

func TestComposeDuplicateAlias(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		steps []pipeline.Descriptor
	}{
		"valid types": {steps: []pipeline.Descriptor{
			{Alias: "a", Type: scalerType("s", nil)},
			{Alias: "a", Type: summerType("e", nil)},
		}},
		"invalid types": {steps: []pipeline.Descriptor{
			{Alias: "a", Type: fitOnlyType()},
			{Alias: "a", Type: fitOnlyType()},
		}},
		"not adjacent": {steps: []pipeline.Descriptor{
			{Alias: "a", Type: scalerType("s", nil)},
			{Alias: "b", Type: scalerType("s", nil)},
			{Alias: "a", Type: summerType("e", nil)},
		}},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := pipeline.Compose(tc.steps)
			assert.ErrorIs(t, err, pipeline.ErrDuplicateAlias)
		})
	}
}

func TestComposeAliasName(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		alias   string
		invalid bool
	}{
		"starts with digit":  {alias: "1bad", invalid: true},
		"contains separator": {alias: "x__y", invalid: true},
		"empty":              {alias: "", invalid: true},
		"dash":               {alias: "a-b", invalid: true},
		"snake case":         {alias: "valid_name"},
		"leading underscore": {alias: "_private"},
		"digits after":       {alias: "step2"},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := pipeline.Compose([]pipeline.Descriptor{{Alias: tc.alias, Type: summerType("e", nil)}})
			if tc.invalid {
				assert.ErrorIs(t, err, pipeline.ErrInvalidAliasName)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestComposeNamePredicate(t *testing.T) {
	t.Parallel()

	allowAll := func(string) bool { return true }
	class, err := pipeline.Compose(
		[]pipeline.Descriptor{{Alias: "1bad", Type: summerType("e", nil)}},
		pipeline.WithNamePredicate(allowAll),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"1bad"}, class.Aliases())
}

func TestComposeCapabilities(t *testing.T) {
	t.Parallel()

	noFit := pipeline.DeclareStepType("no_fit", pipeline.CapTransform|pipeline.CapPredict, nil)

	tcs := map[string]struct {
		steps []pipeline.Descriptor
		err   error
	}{
		"intermediate without transform": {steps: []pipeline.Descriptor{
			{Alias: "t", Type: predictOnlyType()},
			{Alias: "e", Type: summerType("e", nil)},
		}, err: pipeline.ErrMissingCapability},
		"terminal without predict nor proba": {steps: []pipeline.Descriptor{
			{Alias: "e", Type: transformOnlyType()},
		}, err: pipeline.ErrMissingCapability},
		"fit only terminal": {steps: []pipeline.Descriptor{
			{Alias: "e", Type: fitOnlyType()},
		}, err: pipeline.ErrMissingCapability},
		"zero step type": {steps: []pipeline.Descriptor{
			{Alias: "e", Type: pipeline.StepType{}},
		}, err: pipeline.ErrMissingCapability},
		"declared without fit": {steps: []pipeline.Descriptor{
			{Alias: "e", Type: noFit},
		}, err: pipeline.ErrMissingCapability},
		"terminal with predict only": {steps: []pipeline.Descriptor{
			{Alias: "t", Type: transformOnlyType()},
			{Alias: "e", Type: predictOnlyType()},
		}},
		"terminal with proba only": {steps: []pipeline.Descriptor{
			{Alias: "t", Type: transformOnlyType()},
			{Alias: "e", Type: probaOnlyType()},
		}},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := pipeline.Compose(tc.steps)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestComposeIsRepeatable(t *testing.T) {
	t.Parallel()

	steps := []pipeline.Descriptor{
		{Alias: "scale", Type: scalerType("s", nil)},
		{Alias: "sum", Type: summerType("e", nil)},
	}
	first, err := pipeline.Compose(steps)
	require.NoError(t, err)
	second, err := pipeline.Compose(steps)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Aliases(), second.Aliases())

	steps[0].Alias = "changed"
	assert.Equal(t, []string{"scale", "sum"}, first.Aliases())

	got := first.Steps()
	got[1].Alias = "changed"
	assert.Equal(t, []string{"scale", "sum"}, first.Aliases())
}

func TestClassCapabilities(t *testing.T) {
	t.Parallel()

	sum, err := pipeline.Compose([]pipeline.Descriptor{{Alias: "e", Type: summerType("e", nil)}})
	require.NoError(t, err)
	assert.False(t, sum.CanTransform())
	assert.True(t, sum.CanPredict())
	assert.True(t, sum.CanPredictProba())

	scale, err := pipeline.Compose([]pipeline.Descriptor{{Alias: "s", Type: scalerType("s", nil)}})
	require.NoError(t, err)
	assert.True(t, scale.CanTransform())
	assert.True(t, scale.CanPredict())
	assert.False(t, scale.CanPredictProba())
}

func TestComposeName(t *testing.T) {
	t.Parallel()

	steps := []pipeline.Descriptor{{Alias: "e", Type: summerType("e", nil)}}
	class, err := pipeline.Compose(steps)
	require.NoError(t, err)
	assert.Equal(t, "Pipeline", class.Name())

	class, err = pipeline.Compose(steps, pipeline.WithName("Summer"))
	require.NoError(t, err)
	assert.Equal(t, "Summer", class.Name())
}

func TestDescriptorFrom(t *testing.T) {
	t.Parallel()

	_, err := pipeline.DescriptorFrom(5, summerType("e", nil))
	assert.ErrorIs(t, err, pipeline.ErrInvalidAliasType)

	_, err = pipeline.DescriptorFrom(nil, summerType("e", nil))
	assert.ErrorIs(t, err, pipeline.ErrInvalidAliasType)

	desc, err := pipeline.DescriptorFrom("sum", summerType("e", nil))
	require.NoError(t, err)
	assert.Equal(t, "sum", desc.Alias)
	assert.Equal(t, "e", desc.Type.Name())
}

func TestStepTypeCapabilities(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pipeline.CapFit|pipeline.CapTransform|pipeline.CapPredict, scalerType("s", nil).Capabilities())
	assert.Equal(t, pipeline.CapFit|pipeline.CapPredict|pipeline.CapPredictProba, summerType("e", nil).Capabilities())
	assert.Equal(t, pipeline.CapFit, fitOnlyType().Capabilities())
	assert.Equal(t, "fit|predict_proba", (pipeline.CapFit | pipeline.CapPredictProba).String())
}

func TestCheckPosition(t *testing.T) {
	t.Parallel()

	assert.NoError(t, pipeline.CheckPosition(transformOnlyType(), false))
	assert.ErrorIs(t, pipeline.CheckPosition(transformOnlyType(), true), pipeline.ErrMissingCapability)
	assert.ErrorIs(t, pipeline.CheckPosition(predictOnlyType(), false), pipeline.ErrMissingCapability)
	assert.NoError(t, pipeline.CheckPosition(predictOnlyType(), true))
}

func TestComposeCheckOrder(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		steps []pipeline.Descriptor
		err   error
	}{
		"capability of an earlier step first": {steps: []pipeline.Descriptor{
			{Alias: "a", Type: predictOnlyType()},
			{Alias: "1b", Type: summerType("e", nil)},
		}, err: pipeline.ErrMissingCapability},
		"name of an earlier step first": {steps: []pipeline.Descriptor{
			{Alias: "1a", Type: scalerType("s", nil)},
			{Alias: "b", Type: transformOnlyType()},
		}, err: pipeline.ErrInvalidAliasName},
		"name before capability of the same step": {steps: []pipeline.Descriptor{
			{Alias: "x__y", Type: fitOnlyType()},
		}, err: pipeline.ErrInvalidAliasName},
		"repetition before any step check": {steps: []pipeline.Descriptor{
			{Alias: "1a", Type: fitOnlyType()},
			{Alias: "1a", Type: fitOnlyType()},
		}, err: pipeline.ErrDuplicateAlias},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := pipeline.Compose(tc.steps)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

package drawer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-compose/pkg/pipeline"
	"github.com/askiada/go-compose/pkg/pipeline/drawer"
	"github.com/askiada/go-compose/pkg/pipeline/measure"
	"github.com/askiada/go-compose/pkg/steps"
)

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	class, err := pipeline.Compose([]pipeline.Descriptor{
		{Alias: "impute", Type: steps.Imputer},
		{Alias: "scale", Type: steps.Scaler},
		{Alias: "reg", Type: steps.LinearModel},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	msr := measure.NewDefaultMeasure()
	pipe, err := class.New(nil, measure.PipelineMeasure(msr), drawer.PipelineDrawer(drawer.NewDOTDrawer(path), msr))
	require.NoError(t, err)

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	_, err = pipe.FitPredict(X, []float64{2, 4, 6})
	require.NoError(t, err)
	require.NoError(t, pipe.Finish())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	dot := string(content)

	assert.Contains(t, dot, "strict digraph")
	assert.Contains(t, dot, `rankdir="LR"`)
	assert.Contains(t, dot, "<I>imputer</I>")
	assert.Contains(t, dot, "fit: ")
	assert.Contains(t, dot, "total: ")

	links := []string{`"__start" -> "impute"`, `"impute" -> "scale"`, `"scale" -> "reg"`, `"reg" -> "__end"`}
	last := -1
	for _, link := range links {
		idx := strings.Index(dot, link)
		require.GreaterOrEqual(t, idx, 0, link)
		assert.Greater(t, idx, last, link)
		last = idx
	}
}

func TestDOTDrawerRender(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer("")
	require.NoError(t, d.AddStep("start", ""))
	require.NoError(t, d.AddStep("ohe", "onehot"))
	require.NoError(t, d.AddLink("start", "ohe"))

	assert.Error(t, d.AddStep("ohe", "onehot"))
	assert.Error(t, d.AddLink("ohe", "missing"))

	first := &bytes.Buffer{}
	require.NoError(t, d.Render(first))
	second := &bytes.Buffer{}
	require.NoError(t, d.Render(second))
	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), `"start" -> "ohe"`)
	assert.Contains(t, first.String(), "ohe <BR /> <I>onehot</I>")

	assert.Error(t, d.SetTotalTime("missing", time.Now()))
}

func TestDOTDrawerWithoutMeasure(t *testing.T) {
	t.Parallel()

	class, err := pipeline.Compose([]pipeline.Descriptor{{Alias: "clf", Type: steps.NaiveBayes}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	pipe, err := class.New(nil, drawer.PipelineDrawer(drawer.NewDOTDrawer(path), nil))
	require.NoError(t, err)
	require.NoError(t, pipe.Finish())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"clf" -> "__end"`)
	assert.NotContains(t, string(content), "total: ")
}

func TestPipelineDrawerMarkerLikeAliases(t *testing.T) {
	t.Parallel()

	class, err := pipeline.Compose([]pipeline.Descriptor{
		{Alias: "start", Type: steps.Scaler},
		{Alias: "end", Type: steps.LinearModel},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	msr := measure.NewDefaultMeasure()
	pipe, err := class.New(nil, measure.PipelineMeasure(msr), drawer.PipelineDrawer(drawer.NewDOTDrawer(path), msr))
	require.NoError(t, err)

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	_, err = pipe.FitPredict(X, []float64{2, 4, 6})
	require.NoError(t, err)
	require.NoError(t, pipe.Finish())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	dot := string(content)
	for _, link := range []string{`"__start" -> "start"`, `"start" -> "end"`, `"end" -> "__end"`} {
		assert.Contains(t, dot, link)
	}
}

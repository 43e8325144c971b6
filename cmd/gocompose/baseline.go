package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-compose/internal/dataset"
	"github.com/askiada/go-compose/pkg/baseline"
	"github.com/askiada/go-compose/pkg/pipeline"
)

var ErrUnknownTask = errors.New("unknown task")

type baselineResult struct {
	name        string
	steps       []string
	elapsed     time.Duration
	predictions []float64
}

func (r baselineResult) preview(n int) []float64 {
	if n >= 0 && len(r.predictions) > n {
		return r.predictions[:n]
	}

	return r.predictions
}

func writeResults(wrt io.Writer, results []baselineResult, preview int) {
	for _, res := range results {
		fmt.Fprintf(wrt, "%s\t%s\t%d predictions\t%v\n", res.name, res.elapsed, len(res.predictions), res.preview(preview))
	}
}

// writeMarkdown writes the results as a Markdown table.
func writeMarkdown(wrt io.Writer, results []baselineResult, preview int) error {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			res.name,
			strings.Join(res.steps, " -> "),
			res.elapsed.String(),
			strconv.Itoa(len(res.predictions)),
			fmt.Sprintf("%v", res.preview(preview)),
		})
	}

	md := markdown.NewMarkdown(wrt)
	md.H2("Baselines")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Baseline", "Steps", "Elapsed", "Predictions", "Preview"},
		Rows:   rows,
	})

	return md.Build()
}

// baselineClasses returns the baseline classes matching task.
func baselineClasses(task string, opts ...pipeline.Option) ([]*pipeline.Class, error) {
	switch task {
	case "classification":
		return []*pipeline.Class{baseline.NaiveBayes(opts...)}, nil
	case "regression":
		return []*pipeline.Class{baseline.LinearRegression(opts...)}, nil
	case "all":
		return []*pipeline.Class{baseline.NaiveBayes(opts...), baseline.LinearRegression(opts...)}, nil
	}

	return nil, errors.Wrapf(ErrUnknownTask, "%q", task)
}

// fitBaselines fits one pipeline per class concurrently. Every goroutine owns its pipeline; the data is only read.
func fitBaselines(ctx context.Context, classes []*pipeline.Class, data *dataset.Dataset) ([]baselineResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]baselineResult, len(classes))
	errGrp, grpCtx := errgroup.WithContext(ctx)
	for i, class := range classes {
		localI, localClass := i, class
		errGrp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			start := time.Now()
			pipe, err := localClass.New(nil)
			if err != nil {
				return errors.Wrap(err, localClass.Name())
			}
			predictions, err := pipe.FitPredict(data.X, data.Y)
			if err != nil {
				return errors.Wrap(err, localClass.Name())
			}
			results[localI] = baselineResult{
				name:        localClass.Name(),
				steps:       localClass.Aliases(),
				elapsed:     time.Since(start),
				predictions: predictions,
			}

			return nil
		})
	}
	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

// NewBaselineCmd creates the baseline command.
func NewBaselineCmd() *cobra.Command {
	var (
		dataPath   string
		target     string
		task       string
		preview    int
		asMarkdown bool
	)
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Fit the baseline pipelines on a CSV file",
		Long: `Fit the baseline pipelines (one hot encoding, mean imputation, then naive Bayes
or linear regression) on a CSV file, concurrently, and print a preview of their
predictions on the same samples.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := dataset.Load(dataPath, target)
			if err != nil {
				return err
			}
			classes, err := baselineClasses(task, pipeline.WithLogger(newLogger(cmd)))
			if err != nil {
				return err
			}
			results, err := fitBaselines(cmd.Context(), classes, data)
			if err != nil {
				return err
			}
			if asMarkdown {
				return writeMarkdown(cmd.OutOrStdout(), results, preview)
			}
			writeResults(cmd.OutOrStdout(), results, preview)

			return nil
		},
	}
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Training data (CSV with a header line)")
	cmd.Flags().StringVar(&target, "target", "", "Target column (default: last column)")
	cmd.Flags().StringVar(&task, "task", "all", "Baselines to fit: classification, regression or all")
	cmd.Flags().IntVar(&preview, "preview", 5, "Number of predictions to print per baseline, -1 for all")
	cmd.Flags().BoolVarP(&asMarkdown, "markdown", "m", false, "Print the results as a Markdown table")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/internal/dataset"
	"github.com/askiada/go-compose/pkg/pipeline/drawer"
	"github.com/askiada/go-compose/pkg/pipeline/measure"
	"github.com/askiada/go-compose/pkg/pipeline/model"
)

// NewFitCmd creates the fit command.
func NewFitCmd() *cobra.Command {
	var (
		declPath    string
		dataPath    string
		target      string
		assignments []string
		proba       bool
		dotPath     string
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a declared pipeline on a CSV file and print its predictions",
		Long: `Fit a declared pipeline on a CSV file and print the predictions made on the same
samples, one per line. With --proba, print the class probabilities instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := dataset.Load(dataPath, target)
			if err != nil {
				return err
			}

			msr := measure.NewDefaultMeasure()
			opts := []model.PipelineOption{measure.PipelineMeasure(msr)}
			if dotPath != "" {
				opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(dotPath), msr))
			}
			pipe, err := buildPipeline(cmd, declPath, assignments, opts...)
			if err != nil {
				return err
			}

			if _, err := pipe.Fit(data.X, data.Y); err != nil {
				return err
			}
			if proba {
				probas, err := pipe.PredictProba(data.X)
				if err != nil {
					return err
				}
				writeProba(cmd.OutOrStdout(), probas)
			} else {
				predictions, err := pipe.Predict(data.X)
				if err != nil {
					return err
				}
				for _, p := range predictions {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}

			logMeasure(cmd, msr)

			return pipe.Finish()
		},
	}
	cmd.Flags().StringVarP(&declPath, "config", "c", config.DefaultPath(), "Pipeline declaration file (YAML)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Training data (CSV with a header line)")
	cmd.Flags().StringVar(&target, "target", "", "Target column (default: last column)")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "Override a parameter (alias__param=value), repeatable")
	cmd.Flags().BoolVar(&proba, "proba", false, "Print class probabilities instead of predictions")
	cmd.Flags().StringVar(&dotPath, "dot", "", "Write the pipeline graph with timings to this Graphviz file")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func writeProba(wrt io.Writer, probas *mat.Dense) {
	rows, cols := probas.Dims()
	for i := 0; i < rows; i++ {
		cells := make([]string, cols)
		for j := 0; j < cols; j++ {
			cells[j] = fmt.Sprintf("%.6f", probas.At(i, j))
		}
		fmt.Fprintln(wrt, strings.Join(cells, ","))
	}
}

func logMeasure(cmd *cobra.Command, msr measure.Measure) {
	logger := newLogger(cmd)
	metrics := msr.AllMetrics()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mt := metrics[name]
		logger.Debug("step timings",
			"step", name,
			"fit", mt.AVGDuration(model.FitOperation),
			"transform", mt.AVGDuration(model.TransformOperation),
			"predict", mt.AVGDuration(model.PredictOperation),
			"predict_proba", mt.AVGDuration(model.PredictProbaOperation),
		)
	}
}

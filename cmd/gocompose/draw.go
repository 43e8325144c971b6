package main

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/pkg/pipeline/drawer"
)

// NewDrawCmd creates the draw command.
func NewDrawCmd() *cobra.Command {
	var (
		declPath string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Write the step chain of a declared pipeline as a Graphviz DOT file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pipe, err := buildPipeline(cmd, declPath, nil, drawer.PipelineDrawer(drawer.NewDOTDrawer(output), nil))
			if err != nil {
				return err
			}

			return pipe.Finish()
		},
	}
	cmd.Flags().StringVarP(&declPath, "config", "c", config.DefaultPath(), "Pipeline declaration file (YAML)")
	cmd.Flags().StringVarP(&output, "output", "o", "pipeline.dot", "Destination DOT file")

	return cmd
}

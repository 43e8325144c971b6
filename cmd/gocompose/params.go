package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/pkg/pipeline"
	"github.com/askiada/go-compose/pkg/pipeline/model"
	"github.com/askiada/go-compose/pkg/steps"
)

var ErrInvalidAssignment = errors.New("parameter assignment must look like alias__param=value")

// parseAssignments turns alias__param=value flags into flat parameters. Values are decoded as YAML scalars or
// lists, so "3" is an int, "null" is nil and "[0.2, 0.8]" is a list.
func parseAssignments(assignments []string) (pipeline.Params, error) {
	res := pipeline.Params{}
	for _, assignment := range assignments {
		key, raw, ok := strings.Cut(assignment, "=")
		if !ok || key == "" {
			return nil, errors.Wrapf(ErrInvalidAssignment, "%q", assignment)
		}
		var value any
		err := yaml.Unmarshal([]byte(raw), &value)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to decode value of %s", key)
		}
		res[key] = value
	}

	return res, nil
}

// buildPipeline composes the declaration at path and builds an instance with its parameters overridden by
// assignments.
func buildPipeline(cmd *cobra.Command, path string, assignments []string, opts ...model.PipelineOption) (*pipeline.Pipeline, error) {
	decl, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	class, err := decl.Compose(steps.Lookup, pipeline.WithLogger(newLogger(cmd)))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to compose %s", path)
	}

	overrides, err := parseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	flat := decl.Params.Clone()
	for key, value := range overrides {
		flat[key] = value
	}

	return class.New(flat, opts...)
}

// NewParamsCmd creates the params command.
func NewParamsCmd() *cobra.Command {
	var (
		declPath    string
		assignments []string
	)
	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the flat parameters of a declared pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pipe, err := buildPipeline(cmd, declPath, assignments)
			if err != nil {
				return err
			}
			params := pipe.GetParams()
			for _, name := range pipe.ParamNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", name, params[name])
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&declPath, "config", "c", config.DefaultPath(), "Pipeline declaration file (YAML)")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "Override a parameter (alias__param=value), repeatable")

	return cmd
}

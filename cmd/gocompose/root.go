package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gocompose",
		Short: "Compose and fit fit/transform/predict pipelines",
		Long: `gocompose builds pipeline classes from YAML declarations.

Each pipeline instance is configured with flat parameters named after the step
alias and the parameter, separated by a double underscore (impute__strategy).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewParamsCmd())
	cmd.AddCommand(NewFitCmd())
	cmd.AddCommand(NewBaselineCmd())
	cmd.AddCommand(NewDrawCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// newLogger builds the command logger, writing text records to stderr.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

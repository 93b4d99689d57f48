package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-ranker/internal/config"
	"github.com/jonathan/persona-ranker/internal/observability"
	"github.com/jonathan/persona-ranker/internal/pipeline"
)

// loadBaseConfig reads the optional config file, validates it and returns it
// without defaults applied.
func loadBaseConfig(path string, verbose bool, out io.Writer) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	if verbose {
		_, _ = fmt.Fprintf(out, "Loaded config from: %s\n", path)
	}
	return *loaded, nil
}

// newLogger writes log lines to the command's error stream.
func newLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
}

// buildPipeline constructs a pipeline from cfg. In verbose mode progress
// events are printed to the command's output.
func buildPipeline(cmd *cobra.Command, cfg config.Config, logger *log.Logger) (*pipeline.Pipeline, error) {
	opts := cfg.PipelineOptions()
	opts.Logger = logger
	if cfg.Verbose {
		opts.OnProgress = observability.NewPrinter(cmd.OutOrStdout()).Progress
	}
	p, err := pipeline.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	return p, nil
}

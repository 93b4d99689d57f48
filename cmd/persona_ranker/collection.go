package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-ranker/internal/collection"
	"github.com/jonathan/persona-ranker/internal/config"
	"github.com/jonathan/persona-ranker/internal/output"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Process challenge-style collection directories",
	Long: `Processes a collection directory containing ` + collection.InputFileName + ` and a ` + collection.DefaultDocumentsDir + `/ folder,
or with --all every "Collection" directory under --base. Each collection's result is written as
<collection>_output.json into --output (default: the collection directory itself).`,
	RunE: runCollection,
}

var (
	collectionConfigPath string
	collectionDir        string
	collectionAll        bool
	collectionBase       string
	collectionOutput     string
	collectionDocsDir    string
	collectionVerbose    bool
)

func init() {
	collectionCmd.Flags().StringVar(&collectionConfigPath, "config", "", "Path to a JSON or YAML config file")
	collectionCmd.Flags().StringVarP(&collectionDir, "collection", "c", "", "Collection directory to process")
	collectionCmd.Flags().BoolVar(&collectionAll, "all", false, "Process every collection under --base")
	collectionCmd.Flags().StringVar(&collectionBase, "base", ".", "Base directory searched by --all")
	collectionCmd.Flags().StringVarP(&collectionOutput, "output", "o", "", "Output directory (default: the collection directory)")
	collectionCmd.Flags().StringVar(&collectionDocsDir, "documents-dir", collection.DefaultDocumentsDir, "Documents sub-directory name inside each collection")
	collectionCmd.Flags().BoolVarP(&collectionVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(collectionCmd)
}

func runCollection(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if collectionDir == "" && !collectionAll {
		return fmt.Errorf("either --collection or --all must be provided")
	}
	if collectionDir != "" && collectionAll {
		return fmt.Errorf("--collection and --all are mutually exclusive; provide only one")
	}

	cfg, err := loadBaseConfig(collectionConfigPath, collectionVerbose, out)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = collectionVerbose
	}
	cfg = cfg.MergeWithDefaults(config.Default())

	logger := newLogger(cmd)
	p, err := buildPipeline(cmd, cfg, logger)
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(cfg.TopN, logger)
	if err != nil {
		return err
	}
	loader := cfg.Loader()
	loader.Logger = logger

	processor := collection.NewProcessor(p, loader, formatter, collectionDocsDir, logger)
	ctx := context.Background()

	if collectionDir != "" {
		res, err := processor.Process(ctx, collectionDir, collectionOutput)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Results saved to: %s\n", res.OutputPath)
		return nil
	}

	results, failures, err := processor.ProcessAll(ctx, collectionBase, collectionOutput)
	if err != nil {
		return err
	}
	for _, res := range results {
		_, _ = fmt.Fprintf(out, "%s: %s\n", res.Collection, res.OutputPath)
	}
	for _, f := range failures {
		_, _ = fmt.Fprintf(out, "%s: FAILED: %v\n", f.Collection, f.Err)
	}
	_, _ = fmt.Fprintf(out, "Processed %d collections, %d failed\n", len(results), len(failures))

	if len(results) == 0 && len(failures) > 0 {
		return fmt.Errorf("all %d collections failed", len(failures))
	}
	return nil
}

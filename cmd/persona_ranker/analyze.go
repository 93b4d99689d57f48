package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-ranker/internal/config"
	"github.com/jonathan/persona-ranker/internal/ingestion"
	"github.com/jonathan/persona-ranker/internal/observability"
	"github.com/jonathan/persona-ranker/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [documents...]",
	Short: "Rank and summarize document sections for a persona and task",
	Long: `Loads the given documents (or every supported file in --docs-dir), ranks their sections against
the persona and job-to-be-done, summarizes the top sections and writes the result JSON.

Configuration can be loaded from a JSON or YAML file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzePersona    string
	analyzeJob        string
	analyzeDocsDir    string
	analyzeOutput     string
	analyzeTopN       int
	analyzeWorkers    int
	analyzeLanguage   string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzePersona, "persona", "p", "", "Persona description")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Job-to-be-done description")
	analyzeCmd.Flags().StringVar(&analyzeDocsDir, "docs-dir", "", "Directory of documents (mutually exclusive with positional documents)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output JSON path (default output.json)")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top-n", 0, "Number of ranked sections to keep and summarize")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Documents processed in parallel")
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "Stop-word language")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadBaseConfig(analyzeConfigPath, analyzeVerbose, out)
	if err != nil {
		return err
	}

	// CLI overrides (only flags that were explicitly set)
	// Documents from the command line replace any from the config file.
	if len(args) > 0 {
		cfg.Documents = args
		cfg.DocsDir = ""
	}
	if cmd.Flags().Changed("persona") {
		cfg.Persona = analyzePersona
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = analyzeJob
	}
	if cmd.Flags().Changed("docs-dir") {
		cfg.DocsDir = analyzeDocsDir
		if len(args) == 0 {
			cfg.Documents = nil
		}
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = analyzeOutput
	}
	if cmd.Flags().Changed("top-n") {
		cfg.TopN = analyzeTopN
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = analyzeWorkers
	}
	if cmd.Flags().Changed("language") {
		cfg.Language = analyzeLanguage
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Default())

	if len(cfg.Documents) == 0 && cfg.DocsDir == "" {
		return fmt.Errorf("either document paths or --docs-dir must be provided (via arguments or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths := cfg.Documents
	if cfg.DocsDir != "" {
		paths, err = ingestion.ListDocuments(cfg.DocsDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no supported documents in %s", cfg.DocsDir)
		}
	}

	logger := newLogger(cmd)
	p, err := buildPipeline(cmd, cfg, logger)
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(cfg.TopN, logger)
	if err != nil {
		return err
	}

	started := time.Now()
	loader := cfg.Loader()
	loader.Logger = logger
	loaded := loader.Load(paths)
	docs := loaded.Documents

	analysis, err := p.RankAndSummarize(context.Background(), docs, cfg.Persona, cfg.Job)
	if err != nil {
		return err
	}
	analysis.Failures = append(loaded.Failures, analysis.Failures...)

	result := formatter.Format(analysis, output.RunInfo{
		InputDocuments: paths,
		Persona:        cfg.Persona,
		JobToBeDone:    cfg.Job,
		Started:        started,
		Finished:       time.Now(),
	})
	if err := formatter.Write(cfg.Output, result); err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(out)
		for _, meta := range loaded.Metadata {
			printer.PrintLoadMetadata(meta)
		}
		printer.PrintKeywords(analysis.Keywords)
		printer.PrintRankedSections(analysis.RankedSections)
		printer.PrintSummaries(analysis.Summaries)
		printer.PrintFailures(analysis.Failures)
	}

	_, _ = fmt.Fprintf(out, "Ranked %d sections from %d documents\n", len(analysis.RankedSections), len(docs))
	_, _ = fmt.Fprintf(out, "Results saved to: %s\n", cfg.Output)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-ranker/internal/config"
	"github.com/jonathan/persona-ranker/internal/observability"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show the keyword model built from a persona and task",
	RunE:  runKeywords,
}

var (
	keywordsPersona  string
	keywordsJob      string
	keywordsLanguage string
	keywordsLimit    int
	keywordsJSON     bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsPersona, "persona", "p", "", "Persona description")
	keywordsCmd.Flags().StringVarP(&keywordsJob, "job", "j", "", "Job-to-be-done description")
	keywordsCmd.Flags().StringVar(&keywordsLanguage, "language", "", "Stop-word language")
	keywordsCmd.Flags().IntVar(&keywordsLimit, "limit", 0, "Maximum combined keywords")
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "Print the keyword model as JSON")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{Language: keywordsLanguage, KeywordLimit: keywordsLimit}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Default())

	p, err := buildPipeline(cmd, cfg, newLogger(cmd))
	if err != nil {
		return err
	}
	kw := p.Keywords(keywordsPersona, keywordsJob)

	if keywordsJSON {
		data, err := json.MarshalIndent(kw, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal keywords: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(kw)
	return nil
}

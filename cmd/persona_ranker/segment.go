package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-ranker/internal/config"
	"github.com/jonathan/persona-ranker/internal/observability"
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Show how a document's pages split into sections",
	RunE:  runSegment,
}

var (
	segmentFile string
	segmentPage int
)

func init() {
	segmentCmd.Flags().StringVarP(&segmentFile, "file", "f", "", "Document to segment")
	segmentCmd.Flags().IntVar(&segmentPage, "page", 0, "1-based page to segment (0 for all pages)")
	_ = segmentCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, _ []string) error {
	if segmentPage < 0 {
		return fmt.Errorf("--page must not be negative, got %d", segmentPage)
	}

	cfg := config.Default()
	logger := newLogger(cmd)
	p, err := buildPipeline(cmd, cfg, logger)
	if err != nil {
		return err
	}
	loader := cfg.Loader()
	loader.Logger = logger

	doc, _, err := loader.LoadFile(segmentFile)
	if err != nil {
		return err
	}
	if segmentPage > len(doc.Pages) {
		return fmt.Errorf("%s has %d pages, requested page %d", doc.ID, len(doc.Pages), segmentPage)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for i, page := range doc.Pages {
		if segmentPage != 0 && i+1 != segmentPage {
			continue
		}
		printer.PrintSegments(doc.ID, i+1, p.Segment(page))
	}
	return nil
}

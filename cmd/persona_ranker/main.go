// Package main provides the persona_ranker command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona_ranker",
	Short: "Persona-driven document section ranking",
	Long: `persona_ranker ranks the sections of a document set by relevance to a persona and a job-to-be-done,
then produces extractive summaries of the most relevant sections.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

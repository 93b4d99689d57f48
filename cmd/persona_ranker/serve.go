package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-ranker/internal/config"
	"github.com/jonathan/persona-ranker/internal/output"
	"github.com/jonathan/persona-ranker/internal/server"
	"github.com/jonathan/persona-ranker/internal/server/ratelimit"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing POST /analyze, POST /keywords and GET /health.

PORT, SERVER_MAX_BODY_BYTES, SERVER_SHUTDOWN_TIMEOUT and RATE_LIMIT_* environment variables configure the server.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON or YAML config file for pipeline settings")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	serverCfg, err := config.NewServerConfig()
	if err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	if cmd.Flags().Changed("port") {
		if servePort < 1 || servePort > 65535 {
			return fmt.Errorf("--port must be between 1 and 65535, got: %d", servePort)
		}
		serverCfg.Port = servePort
	}

	cfg, err := loadBaseConfig(serveConfigPath, false, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Default())
	cfg.Verbose = false

	logger := newLogger(cmd)
	p, err := buildPipeline(cmd, cfg, logger)
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(cfg.TopN, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(serverCfg, p, formatter, ratelimit.NewLimiter(ratelimit.LoadConfig()))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

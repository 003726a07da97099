package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing POST /analyze, POST /match, POST /sections and GET /health.

Requests are rate limited per client IP; see the RATE_LIMIT_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or PORT, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, closeAnalyzer, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAnalyzer()

	srv := server.New(server.Config{
		Port:      cfg.Port,
		RateLimit: ratelimit.LoadConfig(),
	}, analyzer, newFetcher(cfg, logger), logger)

	return srv.Start(ctx)
}

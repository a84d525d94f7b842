//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/server"
	"github.com/pgEdge/pgedge-salesreport/internal/source"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP",
	Long: `Load a snapshot of retail_sales once and serve every report as JSON
until interrupted. The snapshot is not refreshed while serving.

Endpoints:
  GET /ping
  GET /reports
  GET /reports/<name>?top=&date=&category=&min_quantity=&month=&threshold=&format=

Example:
  pgedge-salesreport serve --listen :8080 --connection "postgres://..."`,
	RunE: runServe,
}

func init() {
	addSnapshotFlags(serveCmd.Flags())
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"address to listen on (default: :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	applySnapshotFlags(cmd, cfg)
	if serveListen != "" {
		cfg.Serve.Listen = serveListen
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	opts, err := cfg.ReportOptions()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	loader, err := source.New(cfg.SourceConfig())
	if err != nil {
		return err
	}
	records, err := source.Snapshot(ctx, loader)
	if err != nil {
		return err
	}

	return server.New(records, opts).Run(ctx, cfg.Serve.Listen)
}

//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete retail_sales rows with missing required values",
	Long: `Delete every retail_sales row that has a NULL in a required column
(sale_date, sale_time, gender, category, quantity, cogs or total_sale).
customer_id, age and price_per_unit may stay NULL.

Reports exclude such rows on their own, so cleaning is optional; it makes
the table itself match what the reports see.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	before, err := db.CountSales(ctx, pool)
	if err != nil {
		return err
	}

	purged, err := db.PurgeIncomplete(ctx, pool)
	if err != nil {
		return err
	}

	if err := db.SaveCleanMetadata(ctx, pool, purged); err != nil {
		logging.Warn().Err(err).Msg("Failed to record clean metadata")
	}

	logging.Info().
		Int64("before", before).
		Int64("deleted", purged).
		Int64("remaining", before-purged).
		Msg("Clean complete")

	return nil
}

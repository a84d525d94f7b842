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
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen"
	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
)

var (
	initRows         int
	initSize         string
	initNullRate     float64
	initSeed         uint64
	initCustomers    int
	initDropExisting bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create retail_sales and fill it with synthetic transactions",
	Long: `Create the retail_sales table and populate it with synthetic
transactions. A small fraction of rows get a NULL column so that the
'clean' step has something to remove.

Example:
  pgedge-salesreport init --rows 2000 --seed 42 --connection "postgres://..."`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initRows, "rows", 0,
		"number of transactions to generate (default: 2000)")
	initCmd.Flags().StringVar(&initSize, "size", "",
		"target table size (e.g., 50MB); overrides --rows")
	initCmd.Flags().Float64Var(&initNullRate, "null-rate", -1,
		"probability that a row has one NULL column (default: 0.01)")
	initCmd.Flags().Uint64Var(&initSeed, "seed", 0,
		"random seed for reproducible data (default: random)")
	initCmd.Flags().IntVar(&initCustomers, "customers", 0,
		"number of distinct customers (default: 155)")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing tables before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initRows > 0 {
		cfg.Init.Rows = initRows
	}
	if initSize != "" {
		cfg.Init.Size = initSize
	}
	if cmd.Flags().Changed("null-rate") {
		cfg.Init.NullRate = initNullRate
	}
	if initSeed != 0 {
		cfg.Init.Seed = initSeed
	}
	if initCustomers > 0 {
		cfg.Init.Customers = initCustomers
	}
	if initDropExisting {
		cfg.Init.DropExisting = true
	}

	if err := cfg.ValidateInit(); err != nil {
		return err
	}
	genCfg, err := cfg.SalesConfig()
	if err != nil {
		return err
	}

	seed := cfg.Init.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	logging.Info().
		Int("rows", genCfg.Rows).
		Str("estimated_size", datagen.FormatSize(datagen.EstimatedSize(genCfg.Rows))).
		Uint64("seed", seed).
		Msg("Initializing database")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	exists, err := db.TableExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check for %s: %w", db.SalesTable, err)
	}
	if exists && !cfg.Init.DropExisting {
		return fmt.Errorf("%s already exists; use --drop-existing to reinitialize", db.SalesTable)
	}

	gen, err := datagen.NewSalesGenerator(datagen.NewFakerWithSeed(seed), genCfg)
	if err != nil {
		return err
	}
	records := gen.Generate()

	// The whole load runs in one transaction so a failure leaves nothing
	// half-written.
	var written int64
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if cfg.Init.DropExisting {
			logging.Info().Msg("Dropping existing tables")
			if err := db.DropSchema(ctx, tx); err != nil {
				return err
			}
		}

		logging.Info().Msg("Creating schema")
		if err := db.CreateSchema(ctx, tx); err != nil {
			return err
		}

		n, err := db.InsertSales(ctx, tx, records, datagen.DefaultBatchConfig())
		if err != nil {
			return err
		}
		written = n

		return db.SaveInitMetadata(ctx, tx, db.InitInfo{
			Rows:     written,
			Seed:     seed,
			NullRate: genCfg.NullRate,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Int64("rows", written).
		Uint64("seed", seed).
		Msg("Database initialization complete")

	return nil
}

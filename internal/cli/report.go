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

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pgEdge/pgedge-salesreport/internal/config"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/internal/source"
)

// Flags shared by report and serve.
var (
	srcKind      string
	srcCSV       string
	optTop       int
	optDate      string
	optCategory  string
	optMinQty    int
	optMonth     string
	optThreshold string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report [name...]",
	Short: "Run reports against a snapshot and print them",
	Long: `Load a snapshot of retail_sales and run the named reports, or every
report when none is named. Use 'reports' to list the names.

Examples:
  pgedge-salesreport report --connection "postgres://..."
  pgedge-salesreport report top-customers --top 10 --format json
  pgedge-salesreport report category-month --source csv --csv sales.csv \
      --category Clothing --month 2022-11 --min-quantity 4`,
	RunE: runReport,
}

func init() {
	addSnapshotFlags(reportCmd.Flags())
	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"output format: text, csv, json (default: text)")
}

// addSnapshotFlags registers the source and report option flags.
func addSnapshotFlags(fs *pflag.FlagSet) {
	fs.StringVar(&srcKind, "source", "",
		"snapshot source: postgres, csv (default: postgres)")
	fs.StringVar(&srcCSV, "csv", "",
		"CSV export to read when --source is csv")
	fs.IntVar(&optTop, "top", 0,
		"number of customers in top-customers (default: 5)")
	fs.StringVar(&optDate, "date", "",
		"day for sales-on-date, YYYY-MM-DD (default: 2022-11-05)")
	fs.StringVar(&optCategory, "category", "",
		"category for category-month and average-age (default: Clothing)")
	fs.IntVar(&optMinQty, "min-quantity", -1,
		"minimum quantity for category-month (default: 4)")
	fs.StringVar(&optMonth, "month", "",
		"month for category-month, YYYY-MM (default: 2022-11)")
	fs.StringVar(&optThreshold, "threshold", "",
		"total_sale floor for high-value (default: 1000)")
}

// applySnapshotFlags copies flags that were set onto c.
func applySnapshotFlags(cmd *cobra.Command, c *config.Config) {
	if srcKind != "" {
		c.Source.Kind = srcKind
	}
	if srcCSV != "" {
		c.Source.CSVPath = srcCSV
		if srcKind == "" {
			c.Source.Kind = source.CSV
		}
	}
	if cmd.Flags().Changed("top") {
		c.Report.Top = optTop
	}
	if optDate != "" {
		c.Report.Date = optDate
	}
	if optCategory != "" {
		c.Report.Category = optCategory
	}
	if cmd.Flags().Changed("min-quantity") {
		c.Report.MinQuantity = optMinQty
	}
	if optMonth != "" {
		c.Report.Month = optMonth
	}
	if optThreshold != "" {
		c.Report.Threshold = optThreshold
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	applySnapshotFlags(cmd, cfg)
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}

	if err := cfg.ValidateReport(); err != nil {
		return err
	}
	opts, err := cfg.ReportOptions()
	if err != nil {
		return err
	}

	// Resolve names before loading so a typo fails fast.
	for _, name := range args {
		if _, err := report.Get(name); err != nil {
			return err
		}
	}

	loader, err := source.New(cfg.SourceConfig())
	if err != nil {
		return err
	}
	records, err := source.Snapshot(context.Background(), loader)
	if err != nil {
		return err
	}

	tables, err := report.Run(records, args, opts)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), cfg.Report.Format, tables)
}

//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-salesreport.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
	"github.com/pgEdge/pgedge-salesreport/internal/source"
)

// Config holds all configuration for pgedge-salesreport.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Source selects where report and serve read the snapshot from.
	Source SourceConfig `mapstructure:"source"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Report holds report options shared by report and serve.
	Report ReportConfig `mapstructure:"report"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`
}

// SourceConfig selects the snapshot source.
type SourceConfig struct {
	// Kind is "postgres" or "csv".
	Kind string `mapstructure:"kind"`

	// CSVPath is the export file read when Kind is "csv".
	CSVPath string `mapstructure:"csv_path"`
}

// InitConfig holds configuration for dataset generation.
type InitConfig struct {
	// Rows is the number of transactions to generate.
	Rows int `mapstructure:"rows"`

	// Size is an optional target table size (e.g., "50MB"). When set it
	// overrides Rows.
	Size string `mapstructure:"size"`

	// NullRate is the probability that a generated row has a NULL column.
	NullRate float64 `mapstructure:"null_rate"`

	// Seed makes generation reproducible. 0 picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	// Customers is the size of the customer pool.
	Customers int `mapstructure:"customers"`

	// StartDate and EndDate bound sale_date (YYYY-MM-DD, inclusive).
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// DropExisting drops existing tables before initialization.
	DropExisting bool `mapstructure:"drop_existing"`
}

// ReportConfig holds report output and parameters.
type ReportConfig struct {
	// Format is text, csv or json.
	Format string `mapstructure:"format"`

	// Top is the number of customers in top-customers.
	Top int `mapstructure:"top"`

	// Date is the day for sales-on-date (YYYY-MM-DD).
	Date string `mapstructure:"date"`

	// Category filters category-month and average-age.
	Category string `mapstructure:"category"`

	// MinQuantity is the quantity floor for category-month.
	MinQuantity int `mapstructure:"min_quantity"`

	// Month is the month for category-month (YYYY-MM).
	Month string `mapstructure:"month"`

	// Threshold is the total_sale floor for high-value.
	Threshold string `mapstructure:"threshold"`
}

// ServeConfig holds configuration for the HTTP server.
type ServeConfig struct {
	// Listen is the address to listen on.
	Listen string `mapstructure:"listen"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	gen := datagen.DefaultSalesConfig()
	opts := report.DefaultOptions()

	return &Config{
		LogLevel: "info",
		Source: SourceConfig{
			Kind: source.Postgres,
		},
		Init: InitConfig{
			Rows:         gen.Rows,
			NullRate:     gen.NullRate,
			Customers:    gen.Customers,
			StartDate:    gen.Start.Format(sales.DateLayout),
			EndDate:      gen.End.Format(sales.DateLayout),
			DropExisting: false,
		},
		Report: ReportConfig{
			Format:      report.FormatText,
			Top:         opts.TopN,
			Date:        opts.Date.Format(sales.DateLayout),
			Category:    opts.Category,
			MinQuantity: opts.MinQuantity,
			Month:       fmt.Sprintf("%04d-%02d", opts.Year, int(opts.Month)),
			Threshold:   opts.Threshold.String(),
		},
		Serve: ServeConfig{
			Listen: ":8080",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-salesreport.yaml
// 3. ~/.config/pgedge-salesreport/pgedge-salesreport.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-salesreport")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-salesreport"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that a connection string is present. Commands that write
// to PostgreSQL build on it.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateInit checks configuration required for init command.
func (c *Config) ValidateInit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Init.Size != "" {
		if _, err := datagen.ParseSize(c.Init.Size); err != nil {
			return err
		}
	} else if c.Init.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	_, err := c.SalesConfig()
	return err
}

// ValidateSource checks the snapshot source settings.
func (c *Config) ValidateSource() error {
	switch c.Source.Kind {
	case source.Postgres:
		return c.Validate()
	case source.CSV:
		if c.Source.CSVPath == "" {
			return fmt.Errorf("csv path is required when source is csv")
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", source.ErrUnknownSource, c.Source.Kind)
	}
}

// ValidateReport checks configuration required for report command.
func (c *Config) ValidateReport() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if !slices.Contains(report.Formats, c.Report.Format) {
		return fmt.Errorf("%w: %q (valid: %s)", report.ErrUnknownFormat, c.Report.Format,
			strings.Join(report.Formats, ", "))
	}
	_, err := c.ReportOptions()
	return err
}

// ValidateServe checks configuration required for serve command.
func (c *Config) ValidateServe() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if c.Serve.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	_, err := c.ReportOptions()
	return err
}

// SourceConfig returns the loader configuration.
func (c *Config) SourceConfig() source.Config {
	return source.Config{
		Kind:       c.Source.Kind,
		ConnString: c.Connection,
		CSVPath:    c.Source.CSVPath,
	}
}

// ReportOptions parses the report settings into validated options.
func (c *Config) ReportOptions() (report.Options, error) {
	opts := report.Options{
		TopN:        c.Report.Top,
		Category:    c.Report.Category,
		MinQuantity: c.Report.MinQuantity,
	}

	var err error
	if opts.Date, err = report.ParseDate(c.Report.Date); err != nil {
		return opts, err
	}
	if opts.Year, opts.Month, err = report.ParseMonth(c.Report.Month); err != nil {
		return opts, err
	}
	if opts.Threshold, err = report.ParseThreshold(c.Report.Threshold); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// SalesConfig returns the generator configuration. Row count comes from
// Size when it is set.
func (c *Config) SalesConfig() (datagen.SalesConfig, error) {
	gen := datagen.DefaultSalesConfig()
	gen.Rows = c.Init.Rows
	gen.NullRate = c.Init.NullRate
	gen.Customers = c.Init.Customers

	if c.Init.Size != "" {
		size, err := datagen.ParseSize(c.Init.Size)
		if err != nil {
			return gen, err
		}
		gen.Rows = datagen.RowsForSize(size)
	}

	var err error
	if gen.Start, err = report.ParseDate(c.Init.StartDate); err != nil {
		return gen, fmt.Errorf("start_date: %w", err)
	}
	if gen.End, err = report.ParseDate(c.Init.EndDate); err != nil {
		return gen, fmt.Errorf("end_date: %w", err)
	}

	return gen, gen.Validate()
}

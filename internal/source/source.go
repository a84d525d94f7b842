//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source loads a snapshot of retail_sales records from PostgreSQL
// or a CSV export.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// Source kinds.
const (
	Postgres = "postgres"
	CSV      = "csv"
)

// ErrUnknownSource is returned by New for an unrecognised source kind.
var ErrUnknownSource = errors.New("unknown source")

// Loader produces a snapshot of every record, valid or not.
type Loader interface {
	Load(ctx context.Context) ([]sales.Record, error)
}

// Config selects and configures a Loader.
type Config struct {
	// Kind is Postgres or CSV.
	Kind string

	// ConnString is used by the Postgres loader.
	ConnString string

	// CSVPath is used by the CSV loader.
	CSVPath string
}

// New returns the loader for cfg.Kind.
func New(cfg Config) (Loader, error) {
	switch cfg.Kind {
	case Postgres, "":
		return &PostgresLoader{ConnString: cfg.ConnString}, nil
	case CSV:
		if cfg.CSVPath == "" {
			return nil, fmt.Errorf("csv source requires a file path")
		}
		return &CSVLoader{Path: cfg.CSVPath}, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownSource, cfg.Kind, Postgres, CSV)
	}
}

// PostgresLoader reads retail_sales from a PostgreSQL database.
type PostgresLoader struct {
	ConnString string
}

// Load connects, reads the whole table and disconnects.
func (l *PostgresLoader) Load(ctx context.Context) ([]sales.Record, error) {
	pool, err := db.Connect(ctx, l.ConnString)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	return db.LoadSales(ctx, pool)
}

// Snapshot loads records through l and logs how many take part in
// analysis.
func Snapshot(ctx context.Context, l Loader) ([]sales.Record, error) {
	records, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	valid := len(sales.Valid(records))
	logging.Info().
		Int("records", len(records)).
		Int("valid", valid).
		Int("excluded", len(records)-valid).
		Msg("Loaded snapshot")

	return records, nil
}

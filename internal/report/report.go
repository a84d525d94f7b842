//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report turns analytics results into named, printable tables.
package report

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// ErrUnknownReport is returned when a report name is not registered.
var ErrUnknownReport = errors.New("unknown report")

// Table is the tabular result of one report.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Report is a named computation over a sales snapshot.
type Report interface {
	// Name returns the identifier used on the command line and in URLs.
	Name() string

	// Description returns a one-line human-readable description.
	Description() string

	// Run computes the report. records is the full snapshot; invalid
	// records are excluded by the analytics layer.
	Run(records []sales.Record, opts Options) (Table, error)
}

var (
	registry = make(map[string]Report)
	order    []string
	mu       sync.RWMutex
)

// Register adds a report to the registry. Registering a name twice
// replaces the earlier report but keeps its position.
func Register(r Report) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[r.Name()]; !ok {
		order = append(order, r.Name())
	}
	registry[r.Name()] = r
}

// Get retrieves a report by name.
func Get(name string) (Report, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	return r, nil
}

// List returns all registered report names in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// All returns all registered reports in registration order.
func All() []Report {
	mu.RLock()
	defer mu.RUnlock()

	reports := make([]Report, 0, len(order))
	for _, name := range order {
		reports = append(reports, registry[name])
	}
	return reports
}

// Run executes the named reports against records, or every report when
// names is empty. Unknown names are reported before anything runs.
func Run(records []sales.Record, names []string, opts Options) ([]Table, error) {
	if len(names) == 0 {
		names = List()
	}

	reports := make([]Report, 0, len(names))
	for _, name := range names {
		r, err := Get(name)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	tables := make([]Table, 0, len(reports))
	for _, r := range reports {
		t, err := r.Run(records, opts)
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", r.Name(), err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// definition adapts a function to the Report interface.
type definition struct {
	name        string
	description string
	run         func(records []sales.Record, opts Options) (Table, error)
}

func (d definition) Name() string        { return d.name }
func (d definition) Description() string { return d.description }

func (d definition) Run(records []sales.Record, opts Options) (Table, error) {
	return d.run(records, opts)
}

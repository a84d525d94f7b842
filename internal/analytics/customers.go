//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// TopCustomers returns up to n customers ordered by total spend, highest
// first, with ties going to the lower customer ID. Records without a
// customer ID are ignored. n must be positive.
func TopCustomers(records []sales.Record, n int) ([]CustomerSpend, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top customers: n must be positive, got %d: %w", n, ErrInvalidArgument)
	}

	spend := make(map[int64]decimal.Decimal)
	for _, r := range sales.Valid(records) {
		if r.CustomerID == nil {
			continue
		}
		spend[*r.CustomerID] = spend[*r.CustomerID].Add(r.Total())
	}

	ranked := make([]CustomerSpend, 0, len(spend))
	for id, total := range spend {
		ranked = append(ranked, CustomerSpend{CustomerID: id, TotalSpend: total})
	}
	slices.SortFunc(ranked, func(a, b CustomerSpend) int {
		if c := b.TotalSpend.Cmp(a.TotalSpend); c != 0 {
			return c
		}
		return cmp.Compare(a.CustomerID, b.CustomerID)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

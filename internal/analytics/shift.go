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
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

var (
	noon        = sales.NewTimeOfDay(12, 0, 0).Seconds()
	afternoonTo = sales.NewTimeOfDay(17, 0, 0).Seconds()
)

// ClassifyShift buckets a time of day: before 12:00 is Morning, 12:00
// through 17:00 inclusive is Afternoon, anything later is Evening.
func ClassifyShift(t sales.TimeOfDay) sales.Shift {
	s := t.Seconds()
	switch {
	case s < noon:
		return sales.Morning
	case s <= afternoonTo:
		return sales.Afternoon
	default:
		return sales.Evening
	}
}

// ShiftCounts counts valid records per shift. All three shifts are present
// in the result, with zero counts where nothing was sold.
func ShiftCounts(records []sales.Record) map[sales.Shift]int {
	counts := make(map[sales.Shift]int, len(sales.Shifts))
	for _, s := range sales.Shifts {
		counts[s] = 0
	}
	for _, r := range sales.Valid(records) {
		counts[ClassifyShift(*r.SaleTime)]++
	}
	return counts
}

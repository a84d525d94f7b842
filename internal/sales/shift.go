//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

// Shift is a coarse time-of-day bucket for a sale.
type Shift string

// Shifts of the trading day.
const (
	Morning   Shift = "Morning"
	Afternoon Shift = "Afternoon"
	Evening   Shift = "Evening"
)

// Shifts lists every shift in chronological order.
var Shifts = []Shift{Morning, Afternoon, Evening}

func (s Shift) String() string {
	return string(s)
}

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
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// Summarize describes the snapshot: how many records are valid, how many
// distinct customers and categories they cover, and how many records were
// excluded.
func Summarize(records []sales.Record) Summary {
	valid := sales.Valid(records)

	customers := make(map[int64]struct{})
	categories := make(map[string]struct{})
	net := decimal.Zero
	for _, r := range valid {
		if r.CustomerID != nil {
			customers[*r.CustomerID] = struct{}{}
		}
		categories[r.CategoryName()] = struct{}{}
		net = net.Add(r.Total())
	}

	return Summary{
		Transactions:    len(valid),
		UniqueCustomers: len(customers),
		Categories:      SortedCategories(categories),
		NetSale:         net,
		Excluded:        len(records) - len(valid),
	}
}

// SalesOnDate returns the valid records sold on the calendar date of day.
func SalesOnDate(records []sales.Record, day time.Time) []sales.Record {
	return filter(records, func(r sales.Record) bool {
		return sameDay(*r.SaleDate, day)
	})
}

// CategoryMonthQuantity returns the valid records of category sold in the
// given month with a quantity of at least minQuantity.
func CategoryMonthQuantity(records []sales.Record, category string, minQuantity int, year int, month time.Month) []sales.Record {
	return filter(records, func(r sales.Record) bool {
		return r.CategoryName() == category &&
			*r.Quantity >= minQuantity &&
			r.SaleDate.Year() == year &&
			r.SaleDate.Month() == month
	})
}

// HighValueSales returns the valid records whose total_sale exceeds
// threshold.
func HighValueSales(records []sales.Record, threshold decimal.Decimal) []sales.Record {
	return filter(records, func(r sales.Record) bool {
		return r.Total().GreaterThan(threshold)
	})
}

// AverageAge returns the mean customer age, rounded to two decimal places,
// over valid records of category that carry an age. ok is false when no
// such record exists.
func AverageAge(records []sales.Record, category string) (avg decimal.Decimal, ok bool) {
	var sum, n int64
	for _, r := range sales.Valid(records) {
		if r.CategoryName() != category || r.Age == nil {
			continue
		}
		sum += int64(*r.Age)
		n++
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(n)).Round(2), true
}

func filter(records []sales.Record, keep func(sales.Record) bool) []sales.Record {
	return slices.DeleteFunc(sales.Valid(records), func(r sales.Record) bool {
		return !keep(r)
	})
}

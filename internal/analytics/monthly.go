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
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

type yearMonth struct {
	year  int
	month time.Month
}

// MonthlyAverages returns the mean total_sale of every (year, month) with at
// least one valid record, in chronological order.
func MonthlyAverages(records []sales.Record) []MonthlyAverage {
	type bucket struct {
		sum    decimal.Decimal
		orders int
	}
	buckets := make(map[yearMonth]*bucket)
	for _, r := range sales.Valid(records) {
		k := yearMonth{r.SaleDate.Year(), r.SaleDate.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		b.sum = b.sum.Add(r.Total())
		b.orders++
	}

	out := make([]MonthlyAverage, 0, len(buckets))
	for k, b := range buckets {
		out = append(out, MonthlyAverage{
			Year:    k.year,
			Month:   k.month,
			AvgSale: b.sum.Div(decimal.NewFromInt(int64(b.orders))),
			Orders:  b.orders,
		})
	}
	slices.SortFunc(out, func(a, b MonthlyAverage) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// BestMonthPerYear returns, for every year with valid records, the month
// with the highest average sale. Ties go to the earlier month. Rows are
// ordered by year.
func BestMonthPerYear(records []sales.Record) []MonthlyAverage {
	var best []MonthlyAverage
	for _, m := range MonthlyAverages(records) {
		n := len(best)
		switch {
		case n == 0 || best[n-1].Year != m.Year:
			best = append(best, m)
		case m.AvgSale.GreaterThan(best[n-1].AvgSale):
			// months arrive in ascending order, so only a strictly larger
			// average may replace the current leader
			best[n-1] = m
		}
	}
	if best == nil {
		return []MonthlyAverage{}
	}
	return best
}

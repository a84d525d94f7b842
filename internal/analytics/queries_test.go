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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

func TestSummarize(t *testing.T) {
	invalid := sale(8, "Toys", "10", nov5, morning)
	invalid.Gender = nil

	got := Summarize([]sales.Record{
		sale(1, "Clothing", "100", nov5, morning),
		sale(2, "Beauty", "50.50", nov5, morning),
		sale(1, "Beauty", "10", nov5, morning),
		invalid,
	})

	assert.Equal(t, 3, got.Transactions)
	assert.Equal(t, 2, got.UniqueCustomers)
	assert.Equal(t, []string{"Beauty", "Clothing"}, got.Categories)
	assert.True(t, got.NetSale.Equal(dec("160.50")))
	assert.Equal(t, 1, got.Excluded)
}

func TestSalesOnDate(t *testing.T) {
	lateNov5 := time.Date(2022, time.November, 5, 23, 0, 0, 0, time.UTC)
	records := []sales.Record{
		sale(1, "Clothing", "100", nov5, morning),
		sale(2, "Clothing", "100", sales.Date(2022, time.November, 6), morning),
		sale(3, "Beauty", "100", nov5, morning),
	}

	got := SalesOnDate(records, lateNov5)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), *got[0].CustomerID)
	assert.Equal(t, int64(3), *got[1].CustomerID)
	assert.Len(t, records, 3, "input must not shrink")
}

func TestCategoryMonthQuantity(t *testing.T) {
	withQty := func(r sales.Record, q int) sales.Record {
		r.Quantity = sales.Ptr(q)
		return r
	}
	records := []sales.Record{
		withQty(sale(1, "Clothing", "100", sales.Date(2022, time.November, 1), morning), 4),
		withQty(sale(2, "Clothing", "100", sales.Date(2022, time.November, 30), morning), 3),
		withQty(sale(3, "Clothing", "100", sales.Date(2022, time.December, 1), morning), 4),
		withQty(sale(4, "Beauty", "100", sales.Date(2022, time.November, 2), morning), 4),
		withQty(sale(5, "Clothing", "100", sales.Date(2022, time.November, 15), morning), 10),
	}

	got := CategoryMonthQuantity(records, "Clothing", 4, 2022, time.November)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), *got[0].CustomerID)
	assert.Equal(t, int64(5), *got[1].CustomerID)
}

func TestHighValueSales(t *testing.T) {
	records := []sales.Record{
		sale(1, "Electronics", "1000", nov5, morning),
		sale(2, "Electronics", "1000.01", nov5, morning),
		sale(3, "Electronics", "2000", nov5, morning),
	}

	got := HighValueSales(records, dec("1000"))

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), *got[0].CustomerID)
}

func TestAverageAge(t *testing.T) {
	withAge := func(r sales.Record, age *int) sales.Record {
		r.Age = age
		return r
	}
	records := []sales.Record{
		withAge(sale(1, "Beauty", "10", nov5, morning), sales.Ptr(20)),
		withAge(sale(2, "Beauty", "10", nov5, morning), sales.Ptr(21)),
		withAge(sale(3, "Beauty", "10", nov5, morning), sales.Ptr(21)),
		withAge(sale(4, "Beauty", "10", nov5, morning), nil),
		withAge(sale(5, "Clothing", "10", nov5, morning), sales.Ptr(64)),
	}

	avg, ok := AverageAge(records, "Beauty")
	require.True(t, ok)
	assert.Equal(t, "20.67", avg.StringFixed(2))

	_, ok = AverageAge(records, "Electronics")
	assert.False(t, ok)
}

func TestTransactionsByGender(t *testing.T) {
	male := func(r sales.Record) sales.Record {
		r.Gender = sales.Ptr("Male")
		return r
	}
	got := TransactionsByGender([]sales.Record{
		sale(1, "Clothing", "10", nov5, morning),
		male(sale(2, "Clothing", "10", nov5, morning)),
		male(sale(3, "Clothing", "10", nov5, morning)),
		sale(4, "Beauty", "10", nov5, morning),
	})

	assert.Equal(t, []GenderCategoryCount{
		{Category: "Beauty", Gender: "Female", Orders: 1},
		{Category: "Clothing", Gender: "Female", Orders: 1},
		{Category: "Clothing", Gender: "Male", Orders: 2},
	}, got)
}

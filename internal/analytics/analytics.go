//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package analytics computes descriptive aggregates over a snapshot of
// retail_sales records.
//
// Every function is a pure computation: it filters the input through
// sales.Valid, never modifies it, performs no I/O and returns an empty
// result for empty input. A snapshot may be shared between goroutines as
// long as nobody mutates it.
package analytics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidArgument is returned when a caller-supplied parameter is out of
// range.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultTopN is the number of customers TopCustomers callers ask for when
// they have no preference.
const DefaultTopN = 5

// CategoryTotal is the net sale and order count of one category.
type CategoryTotal struct {
	NetSale    decimal.Decimal `json:"net_sale"`
	OrderCount int             `json:"order_count"`
}

// MonthlyAverage is the mean total_sale of one calendar month.
type MonthlyAverage struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	AvgSale decimal.Decimal `json:"avg_sale"`
	Orders  int             `json:"orders"`
}

// CustomerSpend is the total spend of one customer.
type CustomerSpend struct {
	CustomerID int64           `json:"customer_id"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// GenderCategoryCount is the number of transactions for one gender within
// one category.
type GenderCategoryCount struct {
	Category string `json:"category"`
	Gender   string `json:"gender"`
	Orders   int    `json:"orders"`
}

// Summary describes a snapshot as a whole.
type Summary struct {
	Transactions    int             `json:"transactions"`
	UniqueCustomers int             `json:"unique_customers"`
	Categories      []string        `json:"categories"`
	NetSale         decimal.Decimal `json:"net_sale"`
	Excluded        int             `json:"excluded"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sales defines the retail_sales record model and the policy that
// decides which records take part in analysis.
package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of the sale_date column in exports and reports.
const DateLayout = "2006-01-02"

// Record is one row of retail_sales. Every column is nullable in the source
// table, so absent values are represented by nil pointers or invalid
// NullDecimals. Records are never modified once loaded.
type Record struct {
	TransactionID *int64              `json:"transaction_id"`
	SaleDate      *time.Time          `json:"sale_date"`
	SaleTime      *TimeOfDay          `json:"sale_time"`
	CustomerID    *int64              `json:"customer_id"`
	Gender        *string             `json:"gender"`
	Age           *int                `json:"age"`
	Category      *string             `json:"category"`
	Quantity      *int                `json:"quantity"`
	PricePerUnit  decimal.NullDecimal `json:"price_per_unit"`
	COGS          decimal.NullDecimal `json:"cogs"`
	TotalSale     decimal.NullDecimal `json:"total_sale"`
}

// Column names of retail_sales, in table order.
const (
	ColTransactionID = "transaction_id"
	ColSaleDate      = "sale_date"
	ColSaleTime      = "sale_time"
	ColCustomerID    = "customer_id"
	ColGender        = "gender"
	ColAge           = "age"
	ColCategory      = "category"
	ColQuantity      = "quantity"
	ColPricePerUnit  = "price_per_unit"
	ColCOGS          = "cogs"
	ColTotalSale     = "total_sale"
)

// Columns lists every retail_sales column in table order.
var Columns = []string{
	ColTransactionID, ColSaleDate, ColSaleTime, ColCustomerID, ColGender, ColAge,
	ColCategory, ColQuantity, ColPricePerUnit, ColCOGS, ColTotalSale,
}

// RequiredColumns are the columns whose absence excludes a record from
// analysis. price_per_unit, customer_id and age are allowed to be null.
var RequiredColumns = []string{
	ColTransactionID, ColSaleDate, ColSaleTime, ColGender,
	ColCategory, ColQuantity, ColCOGS, ColTotalSale,
}

// Missing returns the columns that make r invalid: required columns that are
// absent or malformed, plus a negative price_per_unit. An empty result means
// the record is valid.
func (r Record) Missing() []string {
	var missing []string
	if r.TransactionID == nil {
		missing = append(missing, ColTransactionID)
	}
	if r.SaleDate == nil || r.SaleDate.IsZero() {
		missing = append(missing, ColSaleDate)
	}
	if r.SaleTime == nil || !r.SaleTime.Valid() {
		missing = append(missing, ColSaleTime)
	}
	if blank(r.Gender) {
		missing = append(missing, ColGender)
	}
	if blank(r.Category) {
		missing = append(missing, ColCategory)
	}
	if r.Quantity == nil || *r.Quantity < 0 {
		missing = append(missing, ColQuantity)
	}
	if !nonNegative(r.COGS) {
		missing = append(missing, ColCOGS)
	}
	if !nonNegative(r.TotalSale) {
		missing = append(missing, ColTotalSale)
	}
	if r.PricePerUnit.Valid && r.PricePerUnit.Decimal.IsNegative() {
		missing = append(missing, ColPricePerUnit)
	}
	return missing
}

// Valid reports whether r takes part in analysis.
func (r Record) Valid() bool {
	return len(r.Missing()) == 0
}

// Valid returns the valid records of records, preserving order. The input
// slice is not modified.
func Valid(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// CategoryName returns the trimmed category, or "" when absent.
func (r Record) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return strings.TrimSpace(*r.Category)
}

// GenderName returns the trimmed gender, or "" when absent.
func (r Record) GenderName() string {
	if r.Gender == nil {
		return ""
	}
	return strings.TrimSpace(*r.Gender)
}

// Total returns total_sale, or zero when absent.
func (r Record) Total() decimal.Decimal {
	if !r.TotalSale.Valid {
		return decimal.Zero
	}
	return r.TotalSale.Decimal
}

// Ptr returns a pointer to v. It keeps record literals short.
func Ptr[T any](v T) *T {
	return &v
}

// Money returns a present NullDecimal for a string amount such as "150.00".
// It panics on malformed input and is meant for literals.
func Money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// Date returns the calendar date y-m-d at UTC midnight.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func nonNegative(d decimal.NullDecimal) bool {
	return d.Valid && !d.Decimal.IsNegative()
}

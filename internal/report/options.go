//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/analytics"
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// MonthLayout is the layout accepted for the month option.
const MonthLayout = "2006-01"

// Options parameterise the reports that take arguments. Reports ignore
// options they do not use.
type Options struct {
	// TopN is the number of customers in top-customers.
	TopN int

	// Date is the calendar day for sales-on-date.
	Date time.Time

	// Category filters category-month and average-age.
	Category string

	// MinQuantity is the smallest quantity category-month keeps.
	MinQuantity int

	// Year and Month select the month for category-month.
	Year  int
	Month time.Month

	// Threshold is the exclusive lower bound for high-value.
	Threshold decimal.Decimal
}

// DefaultOptions returns the parameters of the classic retail_sales
// walkthrough: sales on 2022-11-05, Clothing orders of 4 or more in
// November 2022, the average age of Beauty buyers and sales above 1000.
func DefaultOptions() Options {
	return Options{
		TopN:        analytics.DefaultTopN,
		Date:        sales.Date(2022, time.November, 5),
		Category:    "Clothing",
		MinQuantity: 4,
		Year:        2022,
		Month:       time.November,
		Threshold:   decimal.NewFromInt(1000),
	}
}

// Validate checks option ranges. Errors wrap analytics.ErrInvalidArgument.
func (o Options) Validate() error {
	if o.TopN <= 0 {
		return fmt.Errorf("%w: top must be positive, got %d", analytics.ErrInvalidArgument, o.TopN)
	}
	if o.MinQuantity < 0 {
		return fmt.Errorf("%w: min-quantity must be non-negative, got %d", analytics.ErrInvalidArgument, o.MinQuantity)
	}
	if o.Month < time.January || o.Month > time.December {
		return fmt.Errorf("%w: month must be 1-12, got %d", analytics.ErrInvalidArgument, o.Month)
	}
	return nil
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month must be YYYY-MM, got %q", analytics.ErrInvalidArgument, s)
	}
	return t.Year(), t.Month(), nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(sales.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", analytics.ErrInvalidArgument, s)
	}
	return t, nil
}

// ParseThreshold parses a decimal amount.
func ParseThreshold(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: threshold must be a number, got %q", analytics.ErrInvalidArgument, s)
	}
	return d, nil
}

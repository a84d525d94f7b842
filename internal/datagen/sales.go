//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// Reference data matching the retail_sales tutorial dataset.
var (
	categories = []string{"Clothing", "Beauty", "Electronics"}
	unitPrices = []int64{25, 30, 50, 300, 500}
)

// hourWeights is the relative likelihood of a sale in each hour of the day:
// quiet overnight, a morning build-up, a lunchtime bump and an evening peak.
var hourWeights = []int{
	2, 1, 1, 1, 1, 2, // 00-05
	4, 6, 8, 9, 10, 11, // 06-11
	13, 11, 10, 10, 11, 12, // 12-17
	15, 16, 15, 12, 7, 4, // 18-23
}

// SalesConfig controls synthetic retail_sales generation.
type SalesConfig struct {
	// Rows is the number of transactions to generate.
	Rows int

	// FirstID is the transaction_id of the first generated row.
	FirstID int64

	// Customers is the size of the customer pool.
	Customers int

	// Start and End bound sale_date (inclusive).
	Start time.Time
	End   time.Time

	// NullRate is the probability that a row has one column nulled out,
	// reproducing the gaps the clean step exists to remove.
	NullRate float64
}

// DefaultSalesConfig returns the configuration used by init when nothing
// else is specified.
func DefaultSalesConfig() SalesConfig {
	return SalesConfig{
		Rows:      2000,
		FirstID:   1,
		Customers: 155,
		Start:     sales.Date(2022, time.January, 1),
		End:       sales.Date(2023, time.December, 31),
		NullRate:  0.01,
	}
}

// Validate checks the configuration.
func (c SalesConfig) Validate() error {
	if c.Rows < 0 {
		return fmt.Errorf("rows must be non-negative")
	}
	if c.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.End.Before(c.Start) {
		return fmt.Errorf("end date must not be before start date")
	}
	if c.NullRate < 0 || c.NullRate > 1 {
		return fmt.Errorf("null rate must be between 0 and 1")
	}
	return nil
}

// SalesGenerator produces synthetic retail_sales records.
type SalesGenerator struct {
	faker *Faker
	cfg   SalesConfig
	hours []int
}

// NewSalesGenerator creates a generator drawing from faker.
func NewSalesGenerator(faker *Faker, cfg SalesConfig) (*SalesGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hours := make([]int, len(hourWeights))
	for i := range hours {
		hours[i] = i
	}
	return &SalesGenerator{faker: faker, cfg: cfg, hours: hours}, nil
}

// Generate returns cfg.Rows records with consecutive transaction IDs.
func (g *SalesGenerator) Generate() []sales.Record {
	records := make([]sales.Record, 0, g.cfg.Rows)
	for i := 0; i < g.cfg.Rows; i++ {
		records = append(records, g.Next(g.cfg.FirstID+int64(i)))
	}
	return records
}

// Next generates one record with the given transaction ID.
func (g *SalesGenerator) Next(id int64) sales.Record {
	f := g.faker

	day := f.DateRange(g.cfg.Start, g.cfg.End.Add(24*time.Hour-time.Nanosecond))
	date := sales.Date(day.Year(), day.Month(), day.Day())
	at := sales.NewTimeOfDay(ChooseWeighted(f, g.hours, hourWeights), f.Int(0, 59), f.Int(0, 59))

	quantity := f.Int(1, 4)
	price := decimal.NewFromInt(Choose(f, unitPrices))
	// cost of goods runs between 10% and 50% of the unit price
	cogs := price.Mul(decimal.NewFromFloat(f.Float64(0.1, 0.5))).Round(2)
	total := price.Mul(decimal.NewFromInt(int64(quantity)))

	r := sales.Record{
		TransactionID: sales.Ptr(id),
		SaleDate:      &date,
		SaleTime:      &at,
		CustomerID:    sales.Ptr(int64(f.Int(1, g.cfg.Customers))),
		Gender:        sales.Ptr(f.Gender()),
		Age:           sales.Ptr(f.Int(18, 64)),
		Category:      sales.Ptr(Choose(f, categories)),
		Quantity:      &quantity,
		PricePerUnit:  decimal.NewNullDecimal(price),
		COGS:          decimal.NewNullDecimal(cogs),
		TotalSale:     decimal.NewNullDecimal(total),
	}

	if f.Probability(g.cfg.NullRate) {
		nullColumn(&r, Choose(f, sales.Columns[1:]))
	}
	return r
}

// nullColumn clears one column. transaction_id is the primary key and is
// never cleared.
func nullColumn(r *sales.Record, column string) {
	switch column {
	case sales.ColSaleDate:
		r.SaleDate = nil
	case sales.ColSaleTime:
		r.SaleTime = nil
	case sales.ColCustomerID:
		r.CustomerID = nil
	case sales.ColGender:
		r.Gender = nil
	case sales.ColAge:
		r.Age = nil
	case sales.ColCategory:
		r.Category = nil
	case sales.ColQuantity:
		r.Quantity = nil
	case sales.ColPricePerUnit:
		r.PricePerUnit = decimal.NullDecimal{}
	case sales.ColCOGS:
		r.COGS = decimal.NullDecimal{}
	case sales.ColTotalSale:
		r.TotalSale = decimal.NullDecimal{}
	}
}

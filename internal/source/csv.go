//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// headerAliases maps accepted CSV header spellings to column names. The
// retail_sales export ships with "transactions_id" and "quantiy".
var headerAliases = map[string]string{
	"transactions_id": sales.ColTransactionID,
	"transaction_id":  sales.ColTransactionID,
	"id":              sales.ColTransactionID,
	"sale_date":       sales.ColSaleDate,
	"date":            sales.ColSaleDate,
	"sale_time":       sales.ColSaleTime,
	"time":            sales.ColSaleTime,
	"customer_id":     sales.ColCustomerID,
	"gender":          sales.ColGender,
	"age":             sales.ColAge,
	"category":        sales.ColCategory,
	"quantiy":         sales.ColQuantity,
	"quantity":        sales.ColQuantity,
	"price_per_unit":  sales.ColPricePerUnit,
	"cogs":            sales.ColCOGS,
	"total_sale":      sales.ColTotalSale,
}

// dateLayouts are tried in order for sale_date cells.
var dateLayouts = []string{sales.DateLayout, "2006/01/02", time.RFC3339}

// CSVLoader reads a retail_sales CSV export from disk.
type CSVLoader struct {
	Path string
}

// Load opens the file and parses it with ParseCSV.
func (l *CSVLoader) Load(ctx context.Context) ([]sales.Record, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", l.Path, err)
	}
	defer f.Close()

	records, err := ParseCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.Path, err)
	}
	return records, nil
}

// ParseCSV reads records from r. The first row is the header; columns are
// matched by name in any order and unknown columns are ignored. A cell that
// is empty or does not parse becomes an absent value, which leaves the
// record to be excluded by the validity policy. Only a missing required
// column or a malformed CSV stream is an error.
func ParseCSV(ctx context.Context, r io.Reader) ([]sales.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		records []sales.Record
		bad     int
	)
	for line := 2; ; line++ {
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, malformed := parseRow(row, index)
		bad += malformed
		records = append(records, rec)
	}

	logging.Debug().
		Int("rows", len(records)).
		Int("malformed_cells", bad).
		Msg("Parsed CSV")

	return records, nil
}

// headerIndex maps each known column to its position in header.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(sales.Columns))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if col, ok := headerAliases[key]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}

	var missing []string
	for _, col := range sales.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV header is missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// parseRow builds a record from one CSV row and returns the number of
// non-empty cells that failed to parse.
func parseRow(row []string, index map[string]int) (sales.Record, int) {
	malformed := 0
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	// track counts a cell that has content but produced no value.
	track := func(col string, ok bool) {
		if !ok && cell(col) != "" {
			malformed++
		}
	}

	var r sales.Record
	var ok bool

	r.TransactionID, ok = parseInt64(cell(sales.ColTransactionID))
	track(sales.ColTransactionID, ok)
	r.SaleDate, ok = parseDate(cell(sales.ColSaleDate))
	track(sales.ColSaleDate, ok)
	r.SaleTime, ok = parseTime(cell(sales.ColSaleTime))
	track(sales.ColSaleTime, ok)
	r.CustomerID, ok = parseInt64(cell(sales.ColCustomerID))
	track(sales.ColCustomerID, ok)
	r.Gender = parseString(cell(sales.ColGender))
	r.Age, ok = parseInt(cell(sales.ColAge))
	track(sales.ColAge, ok)
	r.Category = parseString(cell(sales.ColCategory))
	r.Quantity, ok = parseInt(cell(sales.ColQuantity))
	track(sales.ColQuantity, ok)
	r.PricePerUnit, ok = parseDecimal(cell(sales.ColPricePerUnit))
	track(sales.ColPricePerUnit, ok)
	r.COGS, ok = parseDecimal(cell(sales.ColCOGS))
	track(sales.ColCOGS, ok)
	r.TotalSale, ok = parseDecimal(cell(sales.ColTotalSale))
	track(sales.ColTotalSale, ok)

	return r, malformed
}

func parseString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseInt64(s string) (*int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parseInt(s string) (*int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parseDate(s string) (*time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := sales.Date(t.Year(), t.Month(), t.Day())
			return &d, true
		}
	}
	return nil, false
}

func parseTime(s string) (*sales.TimeOfDay, bool) {
	t, err := sales.ParseTimeOfDay(s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func parseDecimal(s string) (decimal.NullDecimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

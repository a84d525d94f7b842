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
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/analytics"
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

func init() {
	for _, d := range []definition{
		{"summary", "Transaction, customer and category counts with net sale", runSummary},
		{"category-totals", "Net sale and order count per category", runCategoryTotals},
		{"best-month", "Best-selling month of each year by average sale", runBestMonth},
		{"monthly-averages", "Average sale per month", runMonthlyAverages},
		{"top-customers", "Customers with the highest total spend", runTopCustomers},
		{"unique-customers", "Distinct customers per category", runUniqueCustomers},
		{"shift-counts", "Orders per shift (Morning, Afternoon, Evening)", runShiftCounts},
		{"sales-on-date", "Transactions on one calendar day", runSalesOnDate},
		{"category-month", "Transactions of one category in one month above a quantity", runCategoryMonth},
		{"average-age", "Average customer age for one category", runAverageAge},
		{"high-value", "Transactions with total_sale above a threshold", runHighValue},
		{"gender-by-category", "Transactions per gender within each category", runGenderByCategory},
	} {
		Register(d)
	}
}

func runSummary(records []sales.Record, _ Options) (Table, error) {
	s := analytics.Summarize(records)
	return Table{
		Name:    "summary",
		Columns: []string{"metric", "value"},
		Rows: [][]string{
			{"transactions", strconv.Itoa(s.Transactions)},
			{"unique_customers", strconv.Itoa(s.UniqueCustomers)},
			{"categories", strings.Join(s.Categories, ", ")},
			{"net_sale", money(s.NetSale)},
			{"excluded", strconv.Itoa(s.Excluded)},
		},
	}, nil
}

func runCategoryTotals(records []sales.Record, _ Options) (Table, error) {
	totals := analytics.CategoryTotals(records)
	t := Table{Name: "category-totals", Columns: []string{"category", "net_sale", "total_orders"}, Rows: [][]string{}}
	for _, c := range analytics.SortedCategories(totals) {
		t.Rows = append(t.Rows, []string{c, money(totals[c].NetSale), strconv.Itoa(totals[c].OrderCount)})
	}
	return t, nil
}

func runBestMonth(records []sales.Record, _ Options) (Table, error) {
	t := Table{Name: "best-month", Columns: []string{"year", "month", "avg_sale"}, Rows: [][]string{}}
	for _, m := range analytics.BestMonthPerYear(records) {
		t.Rows = append(t.Rows, []string{strconv.Itoa(m.Year), strconv.Itoa(int(m.Month)), money(m.AvgSale)})
	}
	return t, nil
}

func runMonthlyAverages(records []sales.Record, _ Options) (Table, error) {
	t := Table{Name: "monthly-averages", Columns: []string{"year", "month", "avg_sale", "orders"}, Rows: [][]string{}}
	for _, m := range analytics.MonthlyAverages(records) {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(m.Year), strconv.Itoa(int(m.Month)), money(m.AvgSale), strconv.Itoa(m.Orders),
		})
	}
	return t, nil
}

func runTopCustomers(records []sales.Record, opts Options) (Table, error) {
	top, err := analytics.TopCustomers(records, opts.TopN)
	if err != nil {
		return Table{}, err
	}
	t := Table{Name: "top-customers", Columns: []string{"customer_id", "total_sales"}, Rows: [][]string{}}
	for _, c := range top {
		t.Rows = append(t.Rows, []string{strconv.FormatInt(c.CustomerID, 10), money(c.TotalSpend)})
	}
	return t, nil
}

func runUniqueCustomers(records []sales.Record, _ Options) (Table, error) {
	counts := analytics.UniqueCustomersPerCategory(records)
	t := Table{Name: "unique-customers", Columns: []string{"category", "unique_customers"}, Rows: [][]string{}}
	for _, c := range analytics.SortedCategories(counts) {
		t.Rows = append(t.Rows, []string{c, strconv.Itoa(counts[c])})
	}
	return t, nil
}

func runShiftCounts(records []sales.Record, _ Options) (Table, error) {
	counts := analytics.ShiftCounts(records)
	t := Table{Name: "shift-counts", Columns: []string{"shift", "number_of_orders"}, Rows: [][]string{}}
	for _, s := range sales.Shifts {
		t.Rows = append(t.Rows, []string{s.String(), strconv.Itoa(counts[s])})
	}
	return t, nil
}

func runSalesOnDate(records []sales.Record, opts Options) (Table, error) {
	return recordTable("sales-on-date", analytics.SalesOnDate(records, opts.Date)), nil
}

func runCategoryMonth(records []sales.Record, opts Options) (Table, error) {
	if opts.Month < time.January || opts.Month > time.December {
		return Table{}, fmt.Errorf("%w: month must be 1-12, got %d", analytics.ErrInvalidArgument, opts.Month)
	}
	matched := analytics.CategoryMonthQuantity(records, opts.Category, opts.MinQuantity, opts.Year, opts.Month)
	return recordTable("category-month", matched), nil
}

func runAverageAge(records []sales.Record, opts Options) (Table, error) {
	t := Table{Name: "average-age", Columns: []string{"category", "avg_age"}, Rows: [][]string{}}
	if avg, ok := analytics.AverageAge(records, opts.Category); ok {
		t.Rows = append(t.Rows, []string{opts.Category, avg.StringFixed(2)})
	}
	return t, nil
}

func runHighValue(records []sales.Record, opts Options) (Table, error) {
	return recordTable("high-value", analytics.HighValueSales(records, opts.Threshold)), nil
}

func runGenderByCategory(records []sales.Record, _ Options) (Table, error) {
	t := Table{Name: "gender-by-category", Columns: []string{"category", "gender", "total_trans"}, Rows: [][]string{}}
	for _, g := range analytics.TransactionsByGender(records) {
		t.Rows = append(t.Rows, []string{g.Category, g.Gender, strconv.Itoa(g.Orders)})
	}
	return t, nil
}

// recordTable lists records with every retail_sales column.
func recordTable(name string, records []sales.Record) Table {
	t := Table{Name: name, Columns: slices.Clone(sales.Columns), Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, recordRow(r))
	}
	return t
}

// recordRow formats r in sales.Columns order. Absent values are empty.
func recordRow(r sales.Record) []string {
	row := make([]string, 0, len(sales.Columns))
	row = append(row, formatPtr(r.TransactionID, func(v int64) string { return strconv.FormatInt(v, 10) }))
	if r.SaleDate != nil {
		row = append(row, r.SaleDate.Format(sales.DateLayout))
	} else {
		row = append(row, "")
	}
	row = append(row, formatPtr(r.SaleTime, sales.TimeOfDay.String))
	row = append(row, formatPtr(r.CustomerID, func(v int64) string { return strconv.FormatInt(v, 10) }))
	row = append(row, formatPtr(r.Gender, strings.TrimSpace))
	row = append(row, formatPtr(r.Age, strconv.Itoa))
	row = append(row, formatPtr(r.Category, strings.TrimSpace))
	row = append(row, formatPtr(r.Quantity, strconv.Itoa))
	row = append(row, nullMoney(r.PricePerUnit), nullMoney(r.COGS), nullMoney(r.TotalSale))
	return row
}

func formatPtr[T any](v *T, format func(T) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return money(d.Decimal)
}

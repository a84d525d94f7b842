//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

var selectSalesSQL = "SELECT " + strings.Join(sales.Columns, ", ") +
	" FROM retail_sales ORDER BY transaction_id"

// LoadSales reads every row of retail_sales into memory. NULL columns stay
// absent; nothing is filtered here.
func LoadSales(ctx context.Context, db DB) ([]sales.Record, error) {
	rows, err := db.Query(ctx, selectSalesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", SalesTable, err)
	}
	defer rows.Close()

	var records []sales.Record
	for rows.Next() {
		var (
			r                   sales.Record
			saleDate            pgtype.Date
			saleTime            pgtype.Time
			price, cogs, totals pgtype.Numeric
		)
		err := rows.Scan(&r.TransactionID, &saleDate, &saleTime, &r.CustomerID,
			&r.Gender, &r.Age, &r.Category, &r.Quantity, &price, &cogs, &totals)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", SalesTable, err)
		}

		if saleDate.Valid && saleDate.InfinityModifier == pgtype.Finite {
			d := dateOnly(saleDate.Time)
			r.SaleDate = &d
		}
		if saleTime.Valid {
			t := sales.TimeOfDayFromMicroseconds(saleTime.Microseconds)
			r.SaleTime = &t
		}
		r.PricePerUnit = numericToDecimal(price)
		r.COGS = numericToDecimal(cogs)
		r.TotalSale = numericToDecimal(totals)

		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SalesTable, err)
	}

	logging.Debug().Int("rows", len(records)).Msg("Loaded sales snapshot")
	return records, nil
}

// InsertSales copies records into retail_sales in batches and returns the
// number of rows written.
func InsertSales(ctx context.Context, db DB, records []sales.Record, cfg datagen.BatchConfig) (int64, error) {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = datagen.DefaultBatchConfig().BatchSize
	}
	progress := datagen.NewProgressReporter(SalesTable, int64(len(records)), cfg.ProgressInterval)

	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		batch := records[start:end]

		n, err := db.CopyFrom(ctx, pgx.Identifier{SalesTable}, sales.Columns,
			pgx.CopyFromSlice(len(batch), func(i int) ([]any, error) {
				return copyRow(batch[i]), nil
			}))
		if err != nil {
			return progress.Rows(), fmt.Errorf("failed to copy into %s: %w", SalesTable, err)
		}
		progress.Update(n)
	}

	progress.Done()
	return progress.Rows(), nil
}

// PurgeIncomplete deletes rows with a NULL in any required column and
// returns how many were removed.
func PurgeIncomplete(ctx context.Context, db DB) (int64, error) {
	tag, err := db.Exec(ctx, purgeIncompleteSQL())
	if err != nil {
		return 0, fmt.Errorf("failed to delete incomplete rows: %w", err)
	}

	logging.Info().
		Str("table", SalesTable).
		Int64("deleted", tag.RowsAffected()).
		Msg("Removed incomplete rows")

	return tag.RowsAffected(), nil
}

// CountSales returns the number of rows in retail_sales.
func CountSales(ctx context.Context, db DB) (int64, error) {
	var n int64
	if err := db.QueryRow(ctx, `SELECT count(*) FROM retail_sales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", SalesTable, err)
	}
	return n, nil
}

func purgeIncompleteSQL() string {
	conds := make([]string, 0, len(sales.RequiredColumns))
	for _, col := range sales.RequiredColumns {
		conds = append(conds, col+" IS NULL")
	}
	return "DELETE FROM retail_sales WHERE " + strings.Join(conds, " OR ")
}

// copyRow converts a record into COPY values in sales.Columns order.
func copyRow(r sales.Record) []any {
	var saleDate pgtype.Date
	if r.SaleDate != nil {
		saleDate = pgtype.Date{Time: *r.SaleDate, Valid: true}
	}
	var saleTime pgtype.Time
	if r.SaleTime != nil {
		saleTime = pgtype.Time{Microseconds: r.SaleTime.Microseconds(), Valid: true}
	}

	return []any{
		r.TransactionID,
		saleDate,
		saleTime,
		r.CustomerID,
		r.Gender,
		r.Age,
		r.Category,
		r.Quantity,
		decimalToNumeric(r.PricePerUnit),
		decimalToNumeric(r.COGS),
		decimalToNumeric(r.TotalSale),
	}
}

func numericToDecimal(n pgtype.Numeric) decimal.NullDecimal {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromBigInt(n.Int, n.Exp))
}

func decimalToNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: d.Decimal.Coefficient(), Exp: d.Decimal.Exponent(), Valid: true}
}

// dateOnly strips the clock and location from t.
func dateOnly(t time.Time) time.Time {
	return sales.Date(t.Year(), t.Month(), t.Day())
}

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
)

// SalesTable is the name of the table holding transactions.
const SalesTable = "retail_sales"

// Every column is nullable: the raw export contains gaps, and removing them
// is the job of PurgeIncomplete rather than the schema.
const createSalesSQL = `
CREATE TABLE IF NOT EXISTS retail_sales (
    transaction_id INT PRIMARY KEY,
    sale_date      DATE,
    sale_time      TIME,
    customer_id    INT,
    gender         VARCHAR(15),
    age            INT,
    category       VARCHAR(15),
    quantity       INT,
    price_per_unit NUMERIC(10,2),
    cogs           NUMERIC(10,2),
    total_sale     NUMERIC(10,2)
)`

const dropSalesSQL = `DROP TABLE IF EXISTS retail_sales`

// CreateSchema creates the retail_sales table if it does not exist.
func CreateSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, createSalesSQL); err != nil {
		return fmt.Errorf("failed to create %s: %w", SalesTable, err)
	}
	return nil
}

// DropSchema drops the retail_sales table and the metadata table.
func DropSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, dropSalesSQL); err != nil {
		return fmt.Errorf("failed to drop %s: %w", SalesTable, err)
	}
	return DropMetadata(ctx, db)
}

// TableExists reports whether retail_sales exists in the current schema
// search path.
func TableExists(ctx context.Context, db DB) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, SalesTable).Scan(&exists)
	return exists, err
}

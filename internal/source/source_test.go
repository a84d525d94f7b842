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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

const exportHeader = "transactions_id,sale_date,sale_time,customer_id,gender,age,category,quantiy,price_per_unit,cogs,total_sale\n"

func TestParseCSVExportHeader(t *testing.T) {
	input := exportHeader +
		"180,2022-11-05,10:47:00,117,Male,41,Clothing,3,300,129,900\n" +
		"522,2022-07-09,11:00:00,52,Male,46,Beauty,3,500,145,1500\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	require.True(t, r.Valid(), "missing %v", r.Missing())
	assert.Equal(t, int64(180), *r.TransactionID)
	assert.Equal(t, sales.Date(2022, time.November, 5), *r.SaleDate)
	assert.Equal(t, sales.NewTimeOfDay(10, 47, 0), *r.SaleTime)
	assert.Equal(t, int64(117), *r.CustomerID)
	assert.Equal(t, "Clothing", *r.Category)
	assert.Equal(t, 3, *r.Quantity)
	assert.True(t, r.TotalSale.Decimal.Equal(sales.Money("900").Decimal))
}

func TestParseCSVBadCellsBecomeAbsent(t *testing.T) {
	input := exportHeader +
		"1,not-a-date,10:00:00,5,Female,30,Beauty,2,50,10,100\n" +
		"2,2022-01-01,25:61:00,5,Female,30,Beauty,2,50,10,100\n" +
		"3,2022-01-01,10:00:00,,Female,,Beauty,2,,10,100\n" +
		"4,2022-01-01,10:00:00,5,Female,30,Beauty,two,50,10,abc\n" +
		"5,2022-01-01,10:00\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Nil(t, records[0].SaleDate)
	assert.False(t, records[0].Valid())

	assert.Nil(t, records[1].SaleTime)
	assert.False(t, records[1].Valid())

	// customer_id, age and price_per_unit are optional
	assert.Nil(t, records[2].CustomerID)
	assert.Nil(t, records[2].Age)
	assert.False(t, records[2].PricePerUnit.Valid)
	assert.True(t, records[2].Valid())

	assert.Nil(t, records[3].Quantity)
	assert.False(t, records[3].TotalSale.Valid)
	assert.False(t, records[3].Valid())

	// short rows leave trailing columns absent
	assert.NotNil(t, records[4].SaleTime)
	assert.Nil(t, records[4].Category)
	assert.False(t, records[4].Valid())
}

func TestParseCSVAliasesAndOrder(t *testing.T) {
	input := "\ufeffTotal_Sale, Category ,Quantity,COGS,Gender,Sale_Time,Sale_Date,Transaction_ID,extra\n" +
		"100,Electronics,1,30,Male,18:30,2023/02/10,9,ignored\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.True(t, r.Valid(), "missing %v", r.Missing())
	assert.Equal(t, sales.NewTimeOfDay(18, 30, 0), *r.SaleTime)
	assert.Equal(t, sales.Date(2023, time.February, 10), *r.SaleDate)
	assert.Nil(t, r.CustomerID)
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	input := "transactions_id,sale_date,sale_time,gender,age,quantiy,cogs,total_sale\n"

	_, err := ParseCSV(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), sales.ColCategory)
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(context.Background(), strings.NewReader(""))
	assert.Error(t, err)

	records, err := ParseCSV(context.Background(), strings.NewReader(exportHeader))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	data := exportHeader + "7,2022-03-04,20:15:00,8,Female,25,Beauty,1,25,5,25\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	loader, err := New(Config{Kind: CSV, CSVPath: path})
	require.NoError(t, err)

	records, err := Snapshot(context.Background(), loader)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), *records[0].TransactionID)

	_, err = (&CSVLoader{Path: filepath.Join(t.TempDir(), "missing.csv")}).Load(context.Background())
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	l, err := New(Config{Kind: Postgres, ConnString: "postgres://localhost/x"})
	require.NoError(t, err)
	assert.IsType(t, &PostgresLoader{}, l)

	l, err = New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &PostgresLoader{}, l)

	_, err = New(Config{Kind: CSV})
	assert.Error(t, err)

	_, err = New(Config{Kind: "parquet"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/internal/source"
	"github.com/pgEdge/pgedge-salesreport/pkg/version"
)

const salesCSV = `transactions_id,sale_date,sale_time,customer_id,gender,age,category,quantiy,price_per_unit,cogs,total_sale
1,2022-11-05,09:15:00,1,Female,30,Beauty,1,500,100,500
2,2022-11-06,13:00:00,1,Female,30,Beauty,1,700,150,700
3,2022-12-01,18:30:00,2,Male,41,Clothing,3,100,30,300
4,2022-12-02,19:00:00,3,Male,,Clothing,,50,10,50
`

// execute runs the root command with args after resetting every flag, since
// flag variables are package globals that outlive a single run.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retail_sales.csv")
	if err := os.WriteFile(path, []byte(salesCSV), 0o600); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	return path
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"version", "init", "clean", "reports", "report", "serve"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("Command %q not registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version.Version) {
		t.Errorf("version output %q does not contain %s", out, version.Version)
	}
}

func TestReportsCommand(t *testing.T) {
	out, err := execute(t, "reports")
	if err != nil {
		t.Fatalf("reports failed: %v", err)
	}
	for _, name := range report.List() {
		if !strings.Contains(out, name) {
			t.Errorf("reports output missing %s", name)
		}
	}
}

func TestReportFromCSV(t *testing.T) {
	path := writeCSV(t)

	out, err := execute(t, "report", "top-customers", "shift-counts", "--csv", path, "--format", "csv")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	want := "customer_id,total_sales\n1,1200.00\n2,300.00\n\n" +
		"shift,number_of_orders\nMorning,1\nAfternoon,1\nEvening,1\n"
	if out != want {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestReportOptionsFromFlags(t *testing.T) {
	path := writeCSV(t)

	out, err := execute(t, "report", "top-customers", "summary",
		"--source", source.CSV, "--csv", path, "--top", "1", "--format", "json")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	var tables []report.Table
	if err := json.Unmarshal([]byte(out), &tables); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	if len(tables[0].Rows) != 1 || tables[0].Rows[0][0] != "1" {
		t.Errorf("Unexpected top-customers rows %v", tables[0].Rows)
	}
	// the row without a quantity is excluded
	if tables[1].Rows[0][1] != "3" || tables[1].Rows[4][1] != "1" {
		t.Errorf("Unexpected summary rows %v", tables[1].Rows)
	}
}

func TestReportErrors(t *testing.T) {
	path := writeCSV(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown report", []string{"report", "bogus", "--csv", path}},
		{"csv source without path", []string{"report", "--source", "csv"}},
		{"postgres without connection", []string{"report"}},
		{"unknown format", []string{"report", "--csv", path, "--format", "xml"}},
		{"zero top", []string{"report", "--csv", path, "--top", "0"}},
		{"bad month", []string{"report", "--csv", path, "--month", "11/2022"}},
		{"missing file", []string{"report", "--csv", filepath.Join(t.TempDir(), "nope.csv")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestInitRequiresConnection(t *testing.T) {
	if _, err := execute(t, "init", "--rows", "10"); err == nil {
		t.Error("Expected error without connection string")
	}
	if _, err := execute(t, "clean"); err == nil {
		t.Error("Expected error without connection string")
	}
}

func TestApplySnapshotFlags(t *testing.T) {
	if _, err := execute(t, "version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	cmd := &cobra.Command{}
	addSnapshotFlags(cmd.Flags())
	if err := cmd.Flags().Parse([]string{"--csv", "x.csv", "--min-quantity", "0"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	c := *cfg
	applySnapshotFlags(cmd, &c)
	if c.Source.Kind != source.CSV || c.Source.CSVPath != "x.csv" {
		t.Errorf("Unexpected source %+v", c.Source)
	}
	if c.Report.MinQuantity != 0 {
		t.Errorf("Expected min quantity 0, got %d", c.Report.MinQuantity)
	}
	if c.Report.Top != cfg.Report.Top {
		t.Errorf("Unset --top changed Top to %d", c.Report.Top)
	}
}

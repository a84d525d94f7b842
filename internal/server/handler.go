//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pgEdge/pgedge-salesreport/internal/analytics"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// reportHandler runs registered reports against a fixed snapshot.
type reportHandler struct {
	records  []sales.Record
	defaults report.Options
	log      zerolog.Logger
}

// reportInfo is one entry of GET /reports.
type reportInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newReportHandler(records []sales.Record, defaults report.Options, log zerolog.Logger) *reportHandler {
	return &reportHandler{records: records, defaults: defaults, log: log}
}

func (h *reportHandler) handleList(c *gin.Context) {
	all := report.All()
	out := make([]reportInfo, 0, len(all))
	for _, r := range all {
		out = append(out, reportInfo{Name: r.Name(), Description: r.Description()})
	}
	c.JSON(http.StatusOK, out)
}

// handleReport serves GET /reports/:name. The table is JSON unless
// format=csv is requested.
func (h *reportHandler) handleReport(c *gin.Context) {
	name := c.Param("name")

	r, err := report.Get(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	opts, err := parseOptions(c, h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := r.Run(h.records, opts)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Str("report", name).Msg("Report failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	switch c.DefaultQuery("format", report.FormatJSON) {
	case report.FormatJSON:
		c.JSON(http.StatusOK, table)
	case report.FormatCSV:
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := report.WriteCSV(c.Writer, []report.Table{table}); err != nil {
			h.log.Error().Err(err).Str("report", name).Msg("Failed to write CSV")
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%s: %q", report.ErrUnknownFormat, c.Query("format")),
		})
	}
}

// parseOptions overlays query parameters on defaults and validates the
// result.
func parseOptions(c *gin.Context, defaults report.Options) (report.Options, error) {
	opts := defaults
	var err error

	if v, ok := c.GetQuery("top"); ok {
		if opts.TopN, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("%w: top must be an integer, got %q", analytics.ErrInvalidArgument, v)
		}
	}
	if v, ok := c.GetQuery("date"); ok {
		if opts.Date, err = report.ParseDate(v); err != nil {
			return opts, err
		}
	}
	if v, ok := c.GetQuery("category"); ok {
		opts.Category = v
	}
	if v, ok := c.GetQuery("min_quantity"); ok {
		if opts.MinQuantity, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("%w: min_quantity must be an integer, got %q", analytics.ErrInvalidArgument, v)
		}
	}
	if v, ok := c.GetQuery("month"); ok {
		if opts.Year, opts.Month, err = report.ParseMonth(v); err != nil {
			return opts, err
		}
	}
	if v, ok := c.GetQuery("threshold"); ok {
		if opts.Threshold, err = report.ParseThreshold(v); err != nil {
			return opts, err
		}
	}

	return opts, opts.Validate()
}

//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/pkg/version"
)

const metadataTable = "salesreport_metadata"

// Metadata keys.
const (
	MetaVersion       = "version"
	MetaInitializedAt = "initialized_at"
	MetaRows          = "rows"
	MetaSeed          = "seed"
	MetaNullRate      = "null_rate"
	MetaCleanedAt     = "cleaned_at"
	MetaPurged        = "purged_rows"
)

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS salesreport_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// InitInfo describes a completed init run.
type InitInfo struct {
	Rows     int64
	Seed     uint64
	NullRate float64
}

// SaveInitMetadata records how the dataset was generated.
func SaveInitMetadata(ctx context.Context, db DB, info InitInfo) error {
	err := saveMetadata(ctx, db, map[string]string{
		MetaVersion:       version.Short(),
		MetaInitializedAt: time.Now().UTC().Format(time.RFC3339),
		MetaRows:          strconv.FormatInt(info.Rows, 10),
		MetaSeed:          strconv.FormatUint(info.Seed, 10),
		MetaNullRate:      strconv.FormatFloat(info.NullRate, 'f', -1, 64),
	})
	if err != nil {
		return err
	}

	logging.Debug().
		Int64("rows", info.Rows).
		Uint64("seed", info.Seed).
		Msg("Saved metadata")
	return nil
}

// SaveCleanMetadata records a completed clean run.
func SaveCleanMetadata(ctx context.Context, db DB, purged int64) error {
	return saveMetadata(ctx, db, map[string]string{
		MetaCleanedAt: time.Now().UTC().Format(time.RFC3339),
		MetaPurged:    strconv.FormatInt(purged, 10),
	})
}

func saveMetadata(ctx context.Context, db DB, metadata map[string]string) error {
	if _, err := db.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	for key, value := range metadata {
		_, err := db.Exec(ctx, `
            INSERT INTO salesreport_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}
	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, db DB, key string) (string, error) {
	var value string
	err := db.QueryRow(ctx, `
        SELECT value FROM salesreport_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map. A missing metadata table
// yields an empty map.
func GetAllMetadata(ctx context.Context, db DB) (map[string]string, error) {
	exists, err := MetadataExists(ctx, db)
	if err != nil {
		return nil, err
	}
	metadata := make(map[string]string)
	if !exists {
		return metadata, nil
	}

	rows, err := db.Query(ctx, `SELECT key, value FROM salesreport_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, db DB) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, metadataTable).Scan(&exists)
	return exists, err
}

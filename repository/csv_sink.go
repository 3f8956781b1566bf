package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amirphl/product-analytics-dashboard/models"
)

// CSVTableSink writes tables as comma-separated files named after the table,
// header row first and no index column. Existing files are overwritten.
type CSVTableSink struct {
	dir string
}

// NewCSVTableSink creates a sink rooted at dir
func NewCSVTableSink(dir string) TableSink {
	if dir == "" {
		dir = "."
	}
	return &CSVTableSink{dir: dir}
}

// Write serializes the table to <dir>/<table.Name>
func (s *CSVTableSink) Write(ctx context.Context, table *models.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, table.Name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(table.Columns); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

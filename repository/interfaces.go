// Package repository provides the file-backed sources and sinks of the pipeline
package repository

import (
	"context"
	"errors"

	"github.com/amirphl/product-analytics-dashboard/models"
)

var (
	ErrEmptyTable        = errors.New("table has no header row")
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// TableSource loads a tabular file into memory with its header row as column names
type TableSource interface {
	Load(ctx context.Context, path string) (*models.Table, error)
}

// TableSink persists a table and returns the path it was written to
type TableSink interface {
	Write(ctx context.Context, table *models.Table) (string, error)
}

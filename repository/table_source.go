package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// FileTableSource reads .csv files with encoding/csv and .xlsx workbooks with excelize
type FileTableSource struct{}

// NewFileTableSource creates a new file table source
func NewFileTableSource() TableSource {
	return &FileTableSource{}
}

// Load reads the file at path, dispatching on its extension
func (s *FileTableSource) Load(ctx context.Context, path string) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt", "":
		records, err = readCSV(path)
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return buildTable(filepath.Base(path), records)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	xl, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = xl.Close() }()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	return xl.GetRows(sheets[0])
}

func buildTable(name string, records [][]string) (*models.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}

	header := append([]string(nil), records[0]...)
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	rows := make([][]string, 0, len(records)-1)
	for i, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, header has %d", name, i+2, len(record), len(header))
		}
		// xlsx rows drop trailing empty cells; pad back to the header width
		row := make([]string, len(header))
		copy(row, record)
		rows = append(rows, row)
	}

	return &models.Table{Name: name, Columns: header, Rows: rows}, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}

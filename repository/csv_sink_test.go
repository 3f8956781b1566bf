package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVTableSink_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewCSVTableSink(dir)

	table := &models.Table{
		Name:    models.DimCategoryFile,
		Columns: []string{"category_id", "category_name"},
		Rows:    [][]string{{"1", "Toys, Games"}, {"2", "Books"}},
	}

	path, err := sink.Write(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, models.DimCategoryFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "category_id,category_name\n1,\"Toys, Games\"\n2,Books\n", string(data))

	// rerun overwrites
	table.Rows = table.Rows[:1]
	_, err = sink.Write(context.Background(), table)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "category_id,category_name\n1,\"Toys, Games\"\n", string(data))
}

func TestCSVTableSink_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewCSVTableSink(blocker).Write(context.Background(), &models.Table{Name: "out.csv", Columns: []string{"a"}})
	assert.Error(t, err)
}

package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/amirphl/product-analytics-dashboard/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStarSchema(t *testing.T) {
	products := []models.ProductRecord{
		{ASIN: "A1", Title: "Cable", ImgURL: "i1", ProductURL: "u1", Price: utils.ToPtr(10.0), CategoryID: "1", IsBestSeller: true},
		{ASIN: "A1", Title: "Cable", ImgURL: "i1", ProductURL: "u1", Price: utils.ToPtr(11.0), CategoryID: "1"},
		{ASIN: "A1", Title: "Cable v2", ImgURL: "i1", ProductURL: "u1", CategoryID: "1"},
		{ASIN: "A2", Title: "Lamp", ImgURL: "i2", ProductURL: "u2", Reviews: utils.ToPtr(int64(3)), CategoryID: "2", BoughtInLastMonth: true},
	}
	categories := []models.CategoryRecord{
		{CategoryID: "1", CategoryName: "Electronics"},
		{CategoryID: "2", CategoryName: "Home"},
		{CategoryID: "1", CategoryName: "Electronics"},
		{CategoryID: "1", CategoryName: "Electronics & Gadgets"},
	}

	schema := BuildStarSchema(products, categories)

	assert.Equal(t, []models.CategoryDimension{
		{CategoryID: "1", CategoryName: "Electronics"},
		{CategoryID: "2", CategoryName: "Home"},
		{CategoryID: "1", CategoryName: "Electronics & Gadgets"},
	}, schema.Categories)

	assert.Equal(t, []models.ProductDimension{
		{ASIN: "A1", Title: "Cable", ImgURL: "i1", ProductURL: "u1"},
		{ASIN: "A1", Title: "Cable v2", ImgURL: "i1", ProductURL: "u1"},
		{ASIN: "A2", Title: "Lamp", ImgURL: "i2", ProductURL: "u2"},
	}, schema.Products)

	// one fact per input row, in input order
	require.Len(t, schema.Facts, len(products))
	for i, f := range schema.Facts {
		assert.Equal(t, products[i].ASIN, f.ASIN)
		assert.Equal(t, products[i].Price, f.Price)
		assert.Equal(t, products[i].CategoryID, f.CategoryID)
	}
	assert.True(t, schema.Facts[0].IsBestSeller)
	assert.True(t, schema.Facts[3].BoughtInLastMonth)
}

func TestStarSchemaTables(t *testing.T) {
	schema := &models.StarSchema{
		Categories: []models.CategoryDimension{{CategoryID: "1", CategoryName: "Books"}},
		Products:   []models.ProductDimension{{ASIN: "A", Title: "T", ImgURL: "I", ProductURL: "U"}},
		Facts: []models.ProductFact{{
			ASIN: "A", Price: utils.ToPtr(10.0), Stars: utils.ToPtr(4.5),
			Reviews: utils.ToPtr(int64(7)), IsBestSeller: true, CategoryID: "1",
		}},
	}

	tables := schema.Tables()
	require.Len(t, tables, 3)
	assert.Equal(t, models.DimCategoryFile, tables[0].Name)
	assert.Equal(t, models.DimProductFile, tables[1].Name)
	assert.Equal(t, models.FactProductFile, tables[2].Name)
	assert.Equal(t, []string{"asin", "price", "listprice", "stars", "reviews", "isbestseller", "boughtinlastmonth", "category_id"}, tables[2].Columns)
	assert.Equal(t, []string{"A", "10.0", "", "4.5", "7", "True", "False", "1"}, tables[2].Rows[0])
}

type failingSink struct {
	failOn  string
	written []string
}

func (s *failingSink) Write(_ context.Context, table *models.Table) (string, error) {
	if table.Name == s.failOn {
		return "", errors.New("permission denied")
	}
	s.written = append(s.written, table.Name)
	return "/out/" + table.Name, nil
}

func TestExportStarSchema_StopsAtFirstFailure(t *testing.T) {
	sink := &failingSink{failOn: models.DimProductFile}
	schema := BuildStarSchema(nil, nil)

	paths, err := ExportStarSchema(context.Background(), sink, schema)
	require.Error(t, err)
	assert.Equal(t, CodeExportFailed, ErrorCode(err))
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.Equal(t, []string{"/out/" + models.DimCategoryFile}, paths)
	assert.Equal(t, []string{models.DimCategoryFile}, sink.written)
}

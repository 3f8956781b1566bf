package businessflow

import (
	"context"
	"fmt"

	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/amirphl/product-analytics-dashboard/repository"
)

// BuildStarSchema derives the category dimension, product dimension and product
// fact tables. Dimensions drop fully identical rows keeping first occurrences;
// the fact table keeps one row per product row.
func BuildStarSchema(products []models.ProductRecord, categories []models.CategoryRecord) *models.StarSchema {
	schema := &models.StarSchema{
		Categories: make([]models.CategoryDimension, 0, len(categories)),
		Products:   make([]models.ProductDimension, 0, len(products)),
		Facts:      make([]models.ProductFact, 0, len(products)),
	}

	seenCategories := make(map[models.CategoryDimension]struct{}, len(categories))
	for _, c := range categories {
		dim := models.CategoryDimension{CategoryID: c.CategoryID, CategoryName: c.CategoryName}
		if _, ok := seenCategories[dim]; ok {
			continue
		}
		seenCategories[dim] = struct{}{}
		schema.Categories = append(schema.Categories, dim)
	}

	seenProducts := make(map[models.ProductDimension]struct{}, len(products))
	for _, p := range products {
		dim := models.ProductDimension{ASIN: p.ASIN, Title: p.Title, ImgURL: p.ImgURL, ProductURL: p.ProductURL}
		if _, ok := seenProducts[dim]; !ok {
			seenProducts[dim] = struct{}{}
			schema.Products = append(schema.Products, dim)
		}

		schema.Facts = append(schema.Facts, models.ProductFact{
			ASIN:              p.ASIN,
			Price:             p.Price,
			ListPrice:         p.ListPrice,
			Stars:             p.Stars,
			Reviews:           p.Reviews,
			IsBestSeller:      p.IsBestSeller,
			BoughtInLastMonth: p.BoughtInLastMonth,
			CategoryID:        p.CategoryID,
		})
	}

	return schema
}

// ExportStarSchema writes the three tables in order and stops at the first
// failure. Files written before the failure are left in place.
func ExportStarSchema(ctx context.Context, sink repository.TableSink, schema *models.StarSchema) ([]string, error) {
	var paths []string
	for _, table := range schema.Tables() {
		path, err := sink.Write(ctx, table)
		if err != nil {
			return paths, NewBusinessError(
				CodeExportFailed,
				fmt.Sprintf("failed to export %s", table.Name),
				fmt.Errorf("%w: %w", ErrExportFailed, err),
			)
		}
		pipelineRowsExported.WithLabelValues(table.Name).Set(float64(table.Len()))
		paths = append(paths, path)
	}
	return paths, nil
}

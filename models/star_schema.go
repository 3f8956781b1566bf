package models

import "github.com/amirphl/product-analytics-dashboard/utils"

// Export file names, written to the export directory on every run
const (
	DimCategoryFile = "DimCategory.csv"
	DimProductFile  = "DimProduct.csv"
	FactProductFile = "FactProduct.csv"
)

// CategoryDimension is the deduplicated category projection
type CategoryDimension struct {
	CategoryID   string
	CategoryName string
}

// ProductDimension holds the descriptive product attributes
type ProductDimension struct {
	ASIN       string
	Title      string
	ImgURL     string
	ProductURL string
}

// ProductFact holds the product measures and the category foreign key
type ProductFact struct {
	ASIN              string
	Price             *float64
	ListPrice         *float64
	Stars             *float64
	Reviews           *int64
	IsBestSeller      bool
	BoughtInLastMonth bool
	CategoryID        string
}

var (
	CategoryDimensionColumns = []string{ColCategoryID, ColCategoryName}
	ProductDimensionColumns  = []string{ColASIN, ColTitle, ColImgURL, ColProductURL}
	ProductFactColumns       = []string{
		ColASIN, ColPrice, ColListPrice, ColStars, ColReviews,
		ColIsBestSeller, ColBoughtInLastMonth, ColCategoryID,
	}
)

func (d CategoryDimension) Record() []string {
	return []string{d.CategoryID, d.CategoryName}
}

func (d ProductDimension) Record() []string {
	return []string{d.ASIN, d.Title, d.ImgURL, d.ProductURL}
}

// Record renders the fact row with the export value formatting
func (f ProductFact) Record() []string {
	return []string{
		f.ASIN,
		utils.FormatFloatPtr(f.Price),
		utils.FormatFloatPtr(f.ListPrice),
		utils.FormatFloatPtr(f.Stars),
		utils.FormatIntPtr(f.Reviews),
		utils.FormatBool(f.IsBestSeller),
		utils.FormatBool(f.BoughtInLastMonth),
		f.CategoryID,
	}
}

// StarSchema groups the three exported tables of one run
type StarSchema struct {
	Categories []CategoryDimension
	Products   []ProductDimension
	Facts      []ProductFact
}

// Tables converts the schema into exportable tables, in export order
func (s *StarSchema) Tables() []*Table {
	cat := &Table{Name: DimCategoryFile, Columns: CategoryDimensionColumns, Rows: make([][]string, 0, len(s.Categories))}
	for _, c := range s.Categories {
		cat.Rows = append(cat.Rows, c.Record())
	}
	prod := &Table{Name: DimProductFile, Columns: ProductDimensionColumns, Rows: make([][]string, 0, len(s.Products))}
	for _, p := range s.Products {
		prod.Rows = append(prod.Rows, p.Record())
	}
	fact := &Table{Name: FactProductFile, Columns: ProductFactColumns, Rows: make([][]string, 0, len(s.Facts))}
	for _, f := range s.Facts {
		fact.Rows = append(fact.Rows, f.Record())
	}
	return []*Table{cat, prod, fact}
}

package testing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ProductHeader is the raw product header as the upstream export writes it
var ProductHeader = []string{
	"asin", "title", "imgUrl", "productURL", "stars", "reviews", "price",
	"listPrice", "category_id", "isBestSeller", "boughtInLastMonth",
}

// CategoryHeader is the raw category header
var CategoryHeader = []string{"id", "category_name"}

// ProductRow builds a raw product row in ProductHeader order
type ProductRow struct {
	ASIN              string
	Title             string
	Stars             string
	Reviews           string
	Price             string
	ListPrice         string
	CategoryID        string
	IsBestSeller      string
	BoughtInLastMonth string
}

// Record renders the row with derived image and product URLs
func (r ProductRow) Record() []string {
	return []string{
		r.ASIN,
		r.Title,
		"https://m.media-amazon.com/images/I/" + r.ASIN + ".jpg",
		"https://www.amazon.com/dp/" + r.ASIN,
		r.Stars,
		r.Reviews,
		r.Price,
		r.ListPrice,
		r.CategoryID,
		r.IsBestSeller,
		r.BoughtInLastMonth,
	}
}

// TestFixtures writes input files into a workspace
type TestFixtures struct {
	WS *TestWorkspace
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(ws *TestWorkspace) *TestFixtures {
	return &TestFixtures{WS: ws}
}

// WriteProductsCSV writes products.csv and returns its path
func (tf *TestFixtures) WriteProductsCSV(rows []ProductRow) (string, error) {
	records := [][]string{ProductHeader}
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return tf.WriteCSV("products.csv", records)
}

// WriteCategoriesCSV writes categories.csv from id/name pairs
func (tf *TestFixtures) WriteCategoriesCSV(categories [][2]string) (string, error) {
	records := [][]string{CategoryHeader}
	for _, c := range categories {
		records = append(records, []string{c[0], c[1]})
	}
	return tf.WriteCSV("categories.csv", records)
}

// WriteCSV writes arbitrary records, header included
func (tf *TestFixtures) WriteCSV(name string, records [][]string) (string, error) {
	path := filepath.Join(tf.WS.Dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create fixture %s: %w", name, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write fixture %s: %w", name, err)
	}
	return path, nil
}

// WriteXLSX writes records into the first sheet of a new workbook
func (tf *TestFixtures) WriteXLSX(name string, records [][]string) (string, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	for ri, record := range records {
		cellRef, err := excelize.CoordinatesToCellName(1, ri+1)
		if err != nil {
			return "", err
		}
		row := record
		if err := xl.SetSheetRow(sheet, cellRef, &row); err != nil {
			return "", fmt.Errorf("failed to write fixture row %d: %w", ri, err)
		}
	}

	path := filepath.Join(tf.WS.Dir, name)
	if err := xl.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save fixture %s: %w", name, err)
	}
	return path, nil
}

// SampleProducts is a small catalog across two categories.
// Category 1: 2 products priced 10 and 20; category 2: 1 product priced 30.
func SampleProducts() []ProductRow {
	return []ProductRow{
		{ASIN: "B001", Title: "USB Cable", Stars: "4.5", Reviews: "120", Price: "$10.00", ListPrice: "$12.00", CategoryID: "1", IsBestSeller: "True", BoughtInLastMonth: "True"},
		{ASIN: "B002", Title: "Phone Case", Stars: "4.8", Reviews: "60", Price: "$20.00", ListPrice: "", CategoryID: "1", IsBestSeller: "False", BoughtInLastMonth: "False"},
		{ASIN: "B003", Title: "Desk Lamp", Stars: "3.9", Reviews: "n/a", Price: "$30.00", ListPrice: "$1,030.00", CategoryID: "2", IsBestSeller: "True", BoughtInLastMonth: "True"},
	}
}

// SampleCategories names the categories used by SampleProducts
func SampleCategories() [][2]string {
	return [][2]string{{"1", "Electronics & Accessories"}, {"2", "Home & Kitchen"}}
}

// Package charts turns aggregate views into bar charts
package charts

import (
	"fmt"
	"sort"

	"github.com/amirphl/product-analytics-dashboard/app/dto"
	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/amirphl/product-analytics-dashboard/utils"
)

// Fixed chart colors
const (
	ColorBestSellers = "teal"
	ColorTopRated    = "indigo"
	ColorCategory    = "#636efa"
)

const categoryTickAngle = 45

// Builder builds the four dashboard charts
type Builder struct {
	rankedLimit   int
	categoryLimit int
	minReviews    int
}

// NewBuilder creates a chart builder; non-positive limits fall back to the defaults
func NewBuilder(rankedLimit, categoryLimit, minReviews int) *Builder {
	if rankedLimit <= 0 {
		rankedLimit = utils.DefaultTopRankedLimit
	}
	if categoryLimit <= 0 {
		categoryLimit = utils.DefaultTopCategoryLimit
	}
	return &Builder{rankedLimit: rankedLimit, categoryLimit: categoryLimit, minReviews: minReviews}
}

// BuildAll returns best sellers, top rated, category counts and category prices, in layout order
func (b *Builder) BuildAll(report *models.AnalyticsReport) []dto.BarChart {
	return []dto.BarChart{
		b.BestSellers(report.TopBestSellers),
		b.TopRated(report.TopRated),
		b.CategoryCounts(report.CategoryCounts),
		b.CategoryPrices(report.CategoryPrices),
	}
}

func (b *Builder) BestSellers(products []models.ProductRecord) dto.BarChart {
	chart := dto.BarChart{
		ID:     "best-sellers",
		Title:  fmt.Sprintf("Top %d Best Sellers", b.rankedLimit),
		XLabel: "Product Title",
		YLabel: "Review Count",
		Color:  ColorBestSellers,
	}
	for _, p := range products {
		chart.Categories = append(chart.Categories, p.Title)
		chart.Values = append(chart.Values, intToFloat(p.Reviews))
	}
	return chart
}

func (b *Builder) TopRated(products []models.ProductRecord) dto.BarChart {
	chart := dto.BarChart{
		ID:     "top-rated",
		Title:  fmt.Sprintf("Top %d Top Rated Products (%d+ Reviews)", b.rankedLimit, b.minReviews),
		XLabel: "Product Title",
		YLabel: "Stars",
		Color:  ColorTopRated,
	}
	for _, p := range products {
		chart.Categories = append(chart.Categories, p.Title)
		chart.Values = append(chart.Values, p.Stars)
	}
	return chart
}

// CategoryCounts charts the categories with the most products
func (b *Builder) CategoryCounts(summaries []models.CategorySummary) dto.BarChart {
	sorted := append([]models.CategorySummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProductCount > sorted[j].ProductCount
	})
	if len(sorted) > b.categoryLimit {
		sorted = sorted[:b.categoryLimit]
	}

	chart := dto.BarChart{
		ID:         "category-counts",
		Title:      "Top Categories by Product Count",
		XLabel:     "Category",
		YLabel:     "Number of Products",
		Color:      ColorCategory,
		TickAngle:  utils.ToPtr(categoryTickAngle),
		HoverLabel: models.ColCategoryName,
	}
	for _, s := range sorted {
		chart.Categories = append(chart.Categories, s.ShortName)
		chart.Values = append(chart.Values, utils.ToPtr(float64(s.ProductCount)))
		chart.Hover = append(chart.Hover, utils.Deref(s.CategoryName))
	}
	return chart
}

// CategoryPrices charts the most expensive categories on average. Categories
// without any price sort last.
func (b *Builder) CategoryPrices(summaries []models.CategoryPriceSummary) dto.BarChart {
	sorted := append([]models.CategoryPriceSummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, c := sorted[i].AvgPrice, sorted[j].AvgPrice
		if a == nil {
			return false
		}
		if c == nil {
			return true
		}
		return *a > *c
	})
	if len(sorted) > b.categoryLimit {
		sorted = sorted[:b.categoryLimit]
	}

	chart := dto.BarChart{
		ID:         "category-prices",
		Title:      "Average Price by Category",
		XLabel:     "Category",
		YLabel:     "Average Price",
		Color:      ColorCategory,
		TickAngle:  utils.ToPtr(categoryTickAngle),
		HoverLabel: models.ColCategoryName,
	}
	for _, s := range sorted {
		chart.Categories = append(chart.Categories, s.ShortName)
		chart.Values = append(chart.Values, s.AvgPrice)
		chart.Hover = append(chart.Hover, utils.Deref(s.CategoryName))
	}
	return chart
}

func intToFloat(v *int64) *float64 {
	if v == nil {
		return nil
	}
	return utils.ToPtr(float64(*v))
}

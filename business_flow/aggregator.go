package businessflow

import (
	"sort"
	"strconv"

	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/amirphl/product-analytics-dashboard/utils"
	"github.com/shopspring/decimal"
)

// Aggregator derives the summary views from normalized products. Inputs are
// only read; every view is a fresh slice.
type Aggregator struct {
	topRankedLimit     int
	topRatedMinReviews int64
	labelMaxLen        int
}

// NewAggregator creates an aggregator; non-positive limits fall back to the defaults
func NewAggregator(topRankedLimit, topRatedMinReviews, labelMaxLen int) *Aggregator {
	if topRankedLimit <= 0 {
		topRankedLimit = utils.DefaultTopRankedLimit
	}
	if topRatedMinReviews < 0 {
		topRatedMinReviews = utils.DefaultTopRatedMinReviews
	}
	if labelMaxLen <= 0 {
		labelMaxLen = utils.DefaultLabelMaxLen
	}
	return &Aggregator{
		topRankedLimit:     topRankedLimit,
		topRatedMinReviews: int64(topRatedMinReviews),
		labelMaxLen:        labelMaxLen,
	}
}

// Aggregate computes all five views
func (a *Aggregator) Aggregate(products []models.ProductRecord, categories []models.CategoryDimension) *models.AnalyticsReport {
	return &models.AnalyticsReport{
		TopBestSellers:       a.TopBestSellers(products),
		TopRated:             a.TopRated(products),
		CategoryCounts:       a.CategoryCounts(products, categories),
		CategoryPrices:       a.AveragePriceByCategory(products, categories),
		BoughtLastMonthCount: CountBoughtLastMonth(products),
	}
}

// TopBestSellers returns best-sellers ordered by review count, highest first
func (a *Aggregator) TopBestSellers(products []models.ProductRecord) []models.ProductRecord {
	var picked []models.ProductRecord
	for _, p := range products {
		if p.IsBestSeller {
			picked = append(picked, p)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return greaterNullsLast(intPtrToFloat(picked[i].Reviews), intPtrToFloat(picked[j].Reviews))
	})
	return head(picked, a.topRankedLimit)
}

// TopRated returns products with more than the minimum review count ordered by stars
func (a *Aggregator) TopRated(products []models.ProductRecord) []models.ProductRecord {
	var picked []models.ProductRecord
	for _, p := range products {
		if p.Reviews != nil && *p.Reviews > a.topRatedMinReviews {
			picked = append(picked, p)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return greaterNullsLast(picked[i].Stars, picked[j].Stars)
	})
	return head(picked, a.topRankedLimit)
}

// CategoryCounts counts products per category and attaches the category name.
// Unknown category ids keep a nil name.
func (a *Aggregator) CategoryCounts(products []models.ProductRecord, categories []models.CategoryDimension) []models.CategorySummary {
	counts := make(map[string]int)
	for _, p := range products {
		if p.CategoryID == "" {
			continue
		}
		counts[p.CategoryID]++
	}

	names := categoryNames(categories)
	var out []models.CategorySummary
	for _, id := range sortedCategoryKeys(counts) {
		for _, name := range lookupNames(names, id) {
			out = append(out, models.CategorySummary{
				CategoryID:   id,
				ProductCount: counts[id],
				CategoryName: name,
				ShortName:    utils.ShortenNullableLabel(name, a.labelMaxLen),
			})
		}
	}
	return out
}

// AveragePriceByCategory averages non-null prices per category. A category
// without any price gets a nil average.
func (a *Aggregator) AveragePriceByCategory(products []models.ProductRecord, categories []models.CategoryDimension) []models.CategoryPriceSummary {
	type acc struct {
		sum   decimal.Decimal
		count int64
	}
	groups := make(map[string]*acc)
	for _, p := range products {
		if p.CategoryID == "" {
			continue
		}
		g, ok := groups[p.CategoryID]
		if !ok {
			g = &acc{sum: decimal.Zero}
			groups[p.CategoryID] = g
		}
		if p.Price != nil {
			g.sum = g.sum.Add(decimal.NewFromFloat(*p.Price))
			g.count++
		}
	}

	names := categoryNames(categories)
	var out []models.CategoryPriceSummary
	for _, id := range sortedCategoryKeys(groups) {
		g := groups[id]
		var avg *float64
		if g.count > 0 {
			f, _ := g.sum.Div(decimal.NewFromInt(g.count)).Float64()
			avg = &f
		}
		for _, name := range lookupNames(names, id) {
			out = append(out, models.CategoryPriceSummary{
				CategoryID:   id,
				AvgPrice:     avg,
				CategoryName: name,
				ShortName:    utils.ShortenNullableLabel(name, a.labelMaxLen),
			})
		}
	}
	return out
}

// CountBoughtLastMonth counts rows flagged as bought in the last month
func CountBoughtLastMonth(products []models.ProductRecord) int {
	n := 0
	for _, p := range products {
		if p.BoughtInLastMonth {
			n++
		}
	}
	return n
}

// categoryNames indexes dimension names by id, keeping every distinct name in order
func categoryNames(categories []models.CategoryDimension) map[string][]string {
	names := make(map[string][]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = append(names[c.CategoryID], c.CategoryName)
	}
	return names
}

// lookupNames is the left-join probe: one entry per matching dimension row,
// or a single nil when nothing matches.
func lookupNames(names map[string][]string, id string) []*string {
	matches := names[id]
	if len(matches) == 0 {
		return []*string{nil}
	}
	out := make([]*string, len(matches))
	for i := range matches {
		out[i] = &matches[i]
	}
	return out
}

// sortedCategoryKeys orders group keys ascending, numerically when every key is an integer
func sortedCategoryKeys[V any](groups map[string]V) []string {
	keys := make([]string, 0, len(groups))
	numeric := true
	for k := range groups {
		keys = append(keys, k)
		if _, err := strconv.ParseInt(k, 10, 64); err != nil {
			numeric = false
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if numeric {
			a, _ := strconv.ParseInt(keys[i], 10, 64)
			b, _ := strconv.ParseInt(keys[j], 10, 64)
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

// greaterNullsLast orders descending with nil after every value
func greaterNullsLast(a, b *float64) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a > *b
}

func intPtrToFloat(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	return items
}

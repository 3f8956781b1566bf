package models

// CategorySummary is the product count of one category.
// CategoryName is nil when the category id has no dimension row.
type CategorySummary struct {
	CategoryID   string
	ProductCount int
	CategoryName *string
	ShortName    string
}

// CategoryPriceSummary is the mean price of one category.
// AvgPrice is nil when every price in the category is null.
type CategoryPriceSummary struct {
	CategoryID   string
	AvgPrice     *float64
	CategoryName *string
	ShortName    string
}

// AnalyticsReport holds the five aggregate views of one run
type AnalyticsReport struct {
	TopBestSellers       []ProductRecord
	TopRated             []ProductRecord
	CategoryCounts       []CategorySummary
	CategoryPrices       []CategoryPriceSummary
	BoughtLastMonthCount int
}

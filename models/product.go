package models

// ProductRecord is one typed product row after normalization.
// Nullable measures are pointers; nil means the source value was missing or unparsable.
type ProductRecord struct {
	ASIN              string   `json:"asin"`
	Title             string   `json:"title"`
	ImgURL            string   `json:"imgurl"`
	ProductURL        string   `json:"producturl"`
	Price             *float64 `json:"price"`
	ListPrice         *float64 `json:"listprice"`
	Stars             *float64 `json:"stars"`
	Reviews           *int64   `json:"reviews"`
	IsBestSeller      bool     `json:"isbestseller"`
	BoughtInLastMonth bool     `json:"boughtinlastmonth"`
	CategoryID        string   `json:"category_id"`
}

// CategoryRecord is one category row keyed by CategoryID
type CategoryRecord struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// Product table column names after normalization
const (
	ColASIN              = "asin"
	ColTitle             = "title"
	ColImgURL            = "imgurl"
	ColProductURL        = "producturl"
	ColPrice             = "price"
	ColListPrice         = "listprice"
	ColStars             = "stars"
	ColReviews           = "reviews"
	ColIsBestSeller      = "isbestseller"
	ColBoughtInLastMonth = "boughtinlastmonth"
	ColCategoryID        = "category_id"
)

// Category table column names. The source "id" column becomes category_id.
const (
	ColCategorySourceID = "id"
	ColCategoryName     = "category_name"
)

// ProductColumns lists the product columns the pipeline requires
var ProductColumns = []string{
	ColASIN, ColTitle, ColImgURL, ColProductURL, ColStars, ColReviews,
	ColPrice, ColListPrice, ColCategoryID, ColIsBestSeller, ColBoughtInLastMonth,
}

// CategoryColumns lists the category columns the pipeline requires
var CategoryColumns = []string{ColCategorySourceID, ColCategoryName}

package utils

// Ranking and charting defaults
const (
	// DefaultLabelMaxLen is the longest category label drawn on a chart axis
	DefaultLabelMaxLen = 25

	// DefaultTopRankedLimit caps the best-seller and top-rated lists
	DefaultTopRankedLimit = 10

	// DefaultTopCategoryLimit caps the category charts
	DefaultTopCategoryLimit = 20

	// DefaultTopRatedMinReviews is the exclusive review-count floor for the top-rated list
	DefaultTopRatedMinReviews = 50
)

// Bool cast modes for the flag columns
const (
	BoolCastLiteral = "literal"
	BoolCastTruthy  = "truthy"
)

// LabelEllipsis marks a truncated label
const LabelEllipsis = "..."

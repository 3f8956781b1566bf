package businessflow

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/amirphl/product-analytics-dashboard/utils"
	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`[$,]`)

// missingMarkers are the cell values read as null in every typed column
var missingMarkers = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "<NA>": {},
}

func isMissing(raw string) bool {
	_, ok := missingMarkers[strings.TrimSpace(raw)]
	return ok
}

// NormalizationStats counts values that did not survive coercion
type NormalizationStats struct {
	Rows      int
	SoftNulls map[string]int
}

// Normalizer types raw product and category tables. It never mutates its input.
type Normalizer struct {
	boolCastMode string
}

// NewNormalizer creates a normalizer. Unknown modes fall back to literal casting.
func NewNormalizer(boolCastMode string) *Normalizer {
	if boolCastMode != utils.BoolCastTruthy {
		boolCastMode = utils.BoolCastLiteral
	}
	return &Normalizer{boolCastMode: boolCastMode}
}

// NormalizeProducts standardizes column names and coerces the typed columns.
// Unparsable prices are fatal; unparsable reviews and stars become null.
func (n *Normalizer) NormalizeProducts(raw *models.Table) ([]models.ProductRecord, NormalizationStats, error) {
	stats := NormalizationStats{SoftNulls: map[string]int{models.ColReviews: 0, models.ColStars: 0}}

	table := raw.NormalizeColumns()
	idx, err := columnIndexes(table, models.ProductColumns)
	if err != nil {
		return nil, stats, err
	}

	records := make([]models.ProductRecord, 0, table.Len())
	for i, row := range table.Rows {
		line := i + 2 // header is line 1

		price, err := parsePrice(row[idx[models.ColPrice]])
		if err != nil {
			return nil, stats, priceError(models.ColPrice, line, row[idx[models.ColPrice]], err)
		}
		listPrice, err := parsePrice(row[idx[models.ColListPrice]])
		if err != nil {
			return nil, stats, priceError(models.ColListPrice, line, row[idx[models.ColListPrice]], err)
		}

		reviewsRaw := row[idx[models.ColReviews]]
		reviews := parseCount(reviewsRaw)
		if reviews == nil && !isMissing(reviewsRaw) {
			stats.SoftNulls[models.ColReviews]++
		}
		starsRaw := row[idx[models.ColStars]]
		stars := parseNumber(starsRaw)
		if stars == nil && !isMissing(starsRaw) {
			stats.SoftNulls[models.ColStars]++
		}

		records = append(records, models.ProductRecord{
			ASIN:              row[idx[models.ColASIN]],
			Title:             row[idx[models.ColTitle]],
			ImgURL:            row[idx[models.ColImgURL]],
			ProductURL:        row[idx[models.ColProductURL]],
			Price:             price,
			ListPrice:         listPrice,
			Stars:             stars,
			Reviews:           reviews,
			IsBestSeller:      n.castBool(row[idx[models.ColIsBestSeller]]),
			BoughtInLastMonth: n.castBool(row[idx[models.ColBoughtInLastMonth]]),
			CategoryID:        strings.TrimSpace(row[idx[models.ColCategoryID]]),
		})
	}

	stats.Rows = len(records)
	return records, stats, nil
}

// NormalizeCategories standardizes column names and renames id to category_id
func (n *Normalizer) NormalizeCategories(raw *models.Table) ([]models.CategoryRecord, error) {
	table := raw.NormalizeColumns()
	idx, err := columnIndexes(table, models.CategoryColumns)
	if err != nil {
		return nil, err
	}

	records := make([]models.CategoryRecord, 0, table.Len())
	for _, row := range table.Rows {
		records = append(records, models.CategoryRecord{
			CategoryID:   strings.TrimSpace(row[idx[models.ColCategorySourceID]]),
			CategoryName: row[idx[models.ColCategoryName]],
		})
	}
	return records, nil
}

func columnIndexes(table *models.Table, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	var missing []string
	for _, col := range required {
		i := table.ColumnIndex(col)
		if i < 0 {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, NewBusinessError(
			CodeMissingColumn,
			fmt.Sprintf("%s is missing columns %s", table.Name, strings.Join(missing, ", ")),
			ErrMissingColumn,
		)
	}
	return idx, nil
}

func priceError(column string, line int, raw string, err error) error {
	code := CodePriceParseError
	if errors.Is(err, ErrNegativePrice) {
		code = CodeNegativePrice
	}
	return NewBusinessError(code, fmt.Sprintf("line %d: cannot convert %s value %q", line, column, raw), err)
}

// parsePrice strips "$" and thousands separators and parses the rest.
// Missing cells are null; anything else that does not parse is an error.
func parsePrice(raw string) (*float64, error) {
	if isMissing(raw) {
		return nil, nil
	}
	cleaned := strings.TrimSpace(currencyPattern.ReplaceAllString(raw, ""))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, ErrInvalidPrice
	}
	if d.IsNegative() {
		return nil, ErrNegativePrice
	}
	f, _ := d.Float64()
	return &f, nil
}

// parseNumber is coerce-to-null float parsing
func parseNumber(raw string) *float64 {
	if isMissing(raw) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseCount is coerce-to-null parsing for non-negative whole counts
func parseCount(raw string) *int64 {
	if isMissing(raw) {
		return nil
	}
	s := strings.TrimSpace(raw)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return nil
		}
		return &v
	}
	f := parseNumber(s)
	if f == nil || *f < 0 || *f != math.Trunc(*f) || *f > math.MaxInt64 {
		return nil
	}
	v := int64(*f)
	return &v
}

// castBool converts a flag cell. Literal mode reads true/false spellings and
// numbers; truthy mode keeps the plain cast where any non-empty text is true.
func (n *Normalizer) castBool(raw string) bool {
	if n.boolCastMode == utils.BoolCastTruthy {
		return raw != ""
	}
	if isMissing(raw) {
		return false
	}
	s := strings.TrimSpace(raw)
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return true
}

// Package businessflow contains the pipeline stages that turn raw product and category tables into dashboard data
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Load errors
	ErrLoadFailed    = errors.New("failed to load input table")
	ErrMissingColumn = errors.New("required column is missing")

	// Required-field parse errors
	ErrInvalidPrice  = errors.New("price value is not a number")
	ErrNegativePrice = errors.New("price value is negative")

	// Export errors
	ErrExportFailed = errors.New("failed to export table")
)

// Error codes carried by BusinessError
const (
	CodeLoadFailed      = "LOAD_FAILED"
	CodeMissingColumn   = "MISSING_COLUMN"
	CodePriceParseError = "PRICE_PARSE_ERROR"
	CodeNegativePrice   = "NEGATIVE_PRICE"
	CodeExportFailed    = "EXPORT_FAILED"
	CodeRenderFailed    = "RENDER_FAILED"
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode returns the code of the first BusinessError in err's chain, or "".
func ErrorCode(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

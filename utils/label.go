package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeLabel drops every character other than letters, digits, underscore,
// whitespace, '&' and '-'.
func SanitizeLabel(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		switch r {
		case '_', '&', '-':
			return r
		}
		return -1
	}, name)
}

// ShortenLabel sanitizes a category name for a chart axis and truncates it to
// maxLen characters followed by an ellipsis. Output of ShortenLabel is returned
// unchanged when passed back in.
func ShortenLabel(name string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	if isShortenedLabel(name, maxLen) {
		return name
	}
	clean := SanitizeLabel(name)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	return strings.TrimRightFunc(string(runes[:maxLen]), unicode.IsSpace) + LabelEllipsis
}

// ShortenNullableLabel treats a nil name as empty
func ShortenNullableLabel(name *string, maxLen int) string {
	return ShortenLabel(Deref(name), maxLen)
}

func isShortenedLabel(name string, maxLen int) bool {
	stem, ok := strings.CutSuffix(name, LabelEllipsis)
	if !ok {
		return false
	}
	if strings.TrimRightFunc(stem, unicode.IsSpace) != stem {
		return false
	}
	return SanitizeLabel(stem) == stem && utf8.RuneCountInString(stem) <= maxLen
}

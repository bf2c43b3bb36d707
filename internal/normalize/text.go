// Package normalize turns raw statement cells into typed values. None of its
// functions fail: unusable input yields a zero amount or an invalid date.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold applies NFKC compatibility folding so that non-breaking spaces,
// full-width digits and similar PDF artifacts compare as plain ASCII.
func Fold(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\u200B", "")
	return s
}

// IsNullMarker reports whether a cell is empty or one of the placeholder
// strings that spreadsheet and PDF exports use for missing values.
func IsNullMarker(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "nan", "none", "null", "nat":
		return true
	}
	return false
}

// CurrencyGlyphs are the currency symbols recognised in amount cells.
const CurrencyGlyphs = "₹$£€¥"

// HasCurrencyGlyph reports whether s contains a currency symbol.
func HasCurrencyGlyph(s string) bool {
	return strings.ContainsAny(s, CurrencyGlyphs)
}

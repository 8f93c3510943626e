package helpers

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var multiSpaceRegex = regexp.MustCompile(`\s+`)

// Characters stripped from the start of sort keys in addition to Unicode
// punctuation and spaces.
const leadingPunctuation = "\\#*!¡?/&\"'-.,:;()[]{}«»„“‚‘"

// StripLeadingPunctuation removes leading punctuation and whitespace.
func StripLeadingPunctuation(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || strings.ContainsRune(leadingPunctuation, r)
	})
}

// Lowercase folds s to lower case using Unicode rules rather than byte-wise
// ASCII folding, so "Ä" and "Σ" behave.
func Lowercase(s string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Lower(language.Und).String(s)
}

// SortKey builds a title sort key: NFC-normalized, leading punctuation
// stripped, lower-cased.
func SortKey(s string) string {
	return Lowercase(StripLeadingPunctuation(norm.NFC.String(s)))
}

// NormalizeWhitespace collapses runs of whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}

// TextNormalizer is the default text-normalization collaborator.
type TextNormalizer struct{}

// SortKey implements the mapper's normalizer contract.
func (TextNormalizer) SortKey(s string) string {
	return SortKey(s)
}

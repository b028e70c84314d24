// Package normalize turns raw OCR product names into stable canonical keys.
// It implements size extraction, the staged cleanup pipeline, OCR-aware fuzzy
// correction and synonym canonicalization.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ntalo/ntalo/internal/lexicon"
)

// Size patterns are matched against lowercased input. The unit alternation
// covers both canonical abbreviations and the long spellings folded by the
// lexicon unit table.
var (
	unitAlternation = `kg|kilogrammes?|kilograms?|kilos?|kgs|grammes?|grams?|gr|g|ml|millilitres?|milliliters?|mililitres?|cl|centilitres?|dl|decilitres?|ltr|lt|litres?|liters?|l|oz|ounces?|lb|pounds?|livres?`
	packAlternation = `pcs|pieces|pces|packs?|paquets?|pk|sachets?|sch`

	multipackRe = regexp.MustCompile(`(\d+)\s*x\s*(\d+(?:[.,]\d+)?)\s*(` + unitAlternation + `)\b`)
	measureRe   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(` + unitAlternation + `)\b`)
	packRe      = regexp.MustCompile(`(\d+)\s*(` + packAlternation + `)\b`)
)

// SizeExtractor pulls a normalized size token out of a raw product name.
// Size is part of product identity: "sucre 5kg" and "sucre 1kg" must never
// collapse to the same key.
type SizeExtractor struct {
	lex *lexicon.Lexicon
}

// NewSizeExtractor returns an extractor backed by the given lexicon's unit
// synonym table.
func NewSizeExtractor(lex *lexicon.Lexicon) *SizeExtractor {
	return &SizeExtractor{lex: lex}
}

// Extract returns the normalized size token ("5kg", "330ml", "6x330ml",
// "12pcs") and the name with the size text removed. Returns "" when the name
// carries no recognizable size.
func (e *SizeExtractor) Extract(name string) (size, remainder string) {
	lower := strings.ToLower(name)

	if m := multipackRe.FindStringSubmatchIndex(lower); m != nil {
		count := lower[m[2]:m[3]]
		amount := strings.ReplaceAll(lower[m[4]:m[5]], ",", ".")
		unit := e.foldUnit(lower[m[6]:m[7]])
		return fmt.Sprintf("%sx%s%s", count, amount, unit), cutSpan(lower, m[0], m[1])
	}

	if m := measureRe.FindStringSubmatchIndex(lower); m != nil {
		amount := strings.ReplaceAll(lower[m[2]:m[3]], ",", ".")
		unit := e.foldUnit(lower[m[4]:m[5]])
		return amount + unit, cutSpan(lower, m[0], m[1])
	}

	if m := packRe.FindStringSubmatchIndex(lower); m != nil {
		count := lower[m[2]:m[3]]
		unit := e.foldUnit(lower[m[4]:m[5]])
		return count + unit, cutSpan(lower, m[0], m[1])
	}

	return "", lower
}

// HasSize reports whether the name contains a recognizable size token.
func (e *SizeExtractor) HasSize(name string) bool {
	size, _ := e.Extract(name)
	return size != ""
}

func (e *SizeExtractor) foldUnit(unit string) string {
	if canonical, ok := e.lex.UnitSynonyms[unit]; ok {
		return canonical
	}
	return unit
}

func cutSpan(s string, start, end int) string {
	return strings.TrimSpace(s[:start] + " " + s[end:])
}

package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ntalo/ntalo/internal/model"
)

// A base that is itself a size token ("5kg", "6x330ml", "12pcs") names no
// product. Such keys have no underscore, so StripSizeSuffix leaves them
// intact and they must be rejected here.
var sizeTokenRe = regexp.MustCompile(`^(?:\d+x)?\d+(?:\.\d+)?(?:` + unitAlternation + `|` + packAlternation + `)$`)

// ValidName reports whether a normalized name (with or without size suffix)
// identifies a real product. It runs after normalization and
// canonicalization, so cleanup has already had its chance to rescue noisy
// OCR output.
//
// Rejected: placeholder names, bases shorter than three characters after the
// size suffix is removed, bare size tokens, names with no letters at all, and
// short mostly-numeric residue.
func ValidName(name string) bool {
	base := StripSizeSuffix(name)
	base = strings.TrimSpace(base)

	if base == "" {
		return false
	}
	if model.IsUnknownName(base) {
		return false
	}
	if len(base) < 3 {
		return false
	}
	if sizeTokenRe.MatchString(base) {
		return false
	}

	letters, digits := 0, 0
	for _, r := range base {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters == 0 {
		return false
	}
	if len(base) <= 3 && digits > letters {
		return false
	}
	return true
}

// StripSizeSuffix removes the trailing "_<size>" suffix from a canonical key
// or normalized name, returning the bare base name.
func StripSizeSuffix(name string) string {
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		return name[:i]
	}
	return name
}

// SizeSuffix returns the size portion of a canonical key, or "".
func SizeSuffix(name string) string {
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		return name[i+1:]
	}
	return ""
}

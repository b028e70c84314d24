package normalize

import (
	"strings"

	"github.com/ntalo/ntalo/internal/lexicon"
)

// Canonicalizer maps normalized names onto canonical product roots using the
// lexicon synonym table, and derives the final canonical key.
type Canonicalizer struct {
	lex      *lexicon.Lexicon
	norm     *Normalizer
	stripped map[string]string
}

// NewCanonicalizer builds a canonicalizer sharing the given normalizer.
func NewCanonicalizer(lex *lexicon.Lexicon, norm *Normalizer) *Canonicalizer {
	stripped := make(map[string]string, len(lex.Synonyms))
	for variant, root := range lex.Synonyms {
		stripped[strings.ReplaceAll(variant, " ", "")] = root
	}
	return &Canonicalizer{lex: lex, norm: norm, stripped: stripped}
}

// Key derives the canonical key for a raw OCR product name. The key is the
// canonical root (when a synonym matches) or the space-stripped normalized
// name, with the size suffix re-attached. Size is identity: "sucre_5kg" and
// "sucre_1kg" are distinct keys.
func (c *Canonicalizer) Key(raw string) string {
	base, size := c.norm.NormalizeBase(raw)
	root := c.resolve(base)
	key := strings.ReplaceAll(root, " ", "")
	if size == "" {
		return key
	}
	if key == "" {
		return size
	}
	return key + "_" + size
}

// CanonicalName returns the resolved root with spaces intact, suitable for
// display, plus the extracted size.
func (c *Canonicalizer) CanonicalName(raw string) (name, size string) {
	base, size := c.norm.NormalizeBase(raw)
	return c.resolve(base), size
}

// resolve finds the canonical root for a normalized base name. A synonym
// counts as matched only when it equals the whole name (spaces ignored) or is
// the first or last whitespace-delimited word. Arbitrary substrings never
// match: "castel lite" must not hit the fragment "te" and come back "the".
func (c *Canonicalizer) resolve(base string) string {
	if base == "" {
		return base
	}

	if root, ok := c.stripped[strings.ReplaceAll(base, " ", "")]; ok {
		return root
	}

	fields := strings.Fields(base)
	if root, ok := c.lex.Synonyms[fields[0]]; ok {
		return root
	}
	if last := fields[len(fields)-1]; last != fields[0] {
		if root, ok := c.lex.Synonyms[last]; ok {
			return root
		}
	}

	return base
}

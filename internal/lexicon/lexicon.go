// Package lexicon holds the lookup data the normalization and search layers
// depend on: the multilingual synonym table, the product dictionary, OCR
// confusion maps, category rules and currency symbols.
//
// The data is assembled once into an immutable Lexicon value. Nothing mutates
// a Lexicon after construction, so it is safe for concurrent readers and can
// be swapped out wholesale in tests.
package lexicon

import (
	"strings"
	"sync"
)

// Lexicon is an immutable bundle of lookup tables.
type Lexicon struct {
	// Synonyms maps a language variant or brand spelling to its canonical
	// product root (e.g. "milk" -> "lait").
	Synonyms map[string]string

	// Dictionary is the set of known product and brand words used by the
	// OCR-aware fuzzy corrector.
	Dictionary map[string]struct{}

	// Misreads maps whole-word OCR misreadings directly to their correction.
	Misreads map[string]string

	// Confusions lists character pairs that OCR engines commonly swap.
	// The relation is symmetric; both directions are present.
	Confusions map[byte][]byte

	// NoiseWords are tokens that carry no product identity and are stripped
	// during normalization.
	NoiseWords map[string]struct{}

	// UnitSynonyms folds long unit spellings to canonical abbreviations.
	UnitSynonyms map[string]string

	// CategoryRules and KeywordRules drive category detection and search
	// keyword generation, keyed by substring matched against the canonical
	// name. Order matters for categories: first match wins.
	CategoryRules []CategoryRule

	// CurrencySymbols maps currency symbols and informal spellings to ISO
	// 4217 codes.
	CurrencySymbols map[string]string
}

// CategoryRule assigns a category and extra search keywords to any canonical
// name containing one of its triggers.
type CategoryRule struct {
	Category string
	Triggers []string
	Keywords []string
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the process-wide Lexicon, building it on first use.
// The returned value must be treated as read-only.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex = build()
	})
	return defaultLex
}

func build() *Lexicon {
	lex := &Lexicon{
		Synonyms:        synonymTable(),
		Misreads:        misreadTable(),
		NoiseWords:      noiseWordSet(),
		UnitSynonyms:    unitSynonymTable(),
		CategoryRules:   categoryRules(),
		CurrencySymbols: currencySymbolTable(),
	}

	lex.Confusions = make(map[byte][]byte)
	for _, pair := range confusionPairs() {
		a, b := pair[0], pair[1]
		lex.Confusions[a] = append(lex.Confusions[a], b)
		lex.Confusions[b] = append(lex.Confusions[b], a)
	}

	// The dictionary is the union of every synonym variant and every
	// canonical root, so fuzzy correction can land on either. Multiword
	// entries also contribute their component words: without "lite" or
	// "cola" as known words the corrector would rewrite them toward some
	// nearby dictionary entry.
	lex.Dictionary = make(map[string]struct{}, len(lex.Synonyms)*3)
	addWords := func(entry string) {
		lex.Dictionary[entry] = struct{}{}
		for _, word := range strings.Fields(entry) {
			if len(word) >= 3 {
				lex.Dictionary[word] = struct{}{}
			}
		}
	}
	for variant, root := range lex.Synonyms {
		addWords(variant)
		addWords(root)
	}
	for _, fixed := range lex.Misreads {
		addWords(fixed)
	}

	return lex
}

// IsConfusionPair reports whether a and b are a known OCR character confusion.
func (l *Lexicon) IsConfusionPair(a, b byte) bool {
	for _, c := range l.Confusions[a] {
		if c == b {
			return true
		}
	}
	return false
}

// InDictionary reports whether word is a known product or brand term.
func (l *Lexicon) InDictionary(word string) bool {
	_, ok := l.Dictionary[word]
	return ok
}

// DetectCategory returns the category of a canonical product name, or "" when
// no rule matches. Rules are ordered; the first trigger hit wins.
func (l *Lexicon) DetectCategory(name string) string {
	for _, rule := range l.CategoryRules {
		for _, trigger := range rule.Triggers {
			if containsWordish(name, trigger) {
				return rule.Category
			}
		}
	}
	return ""
}

// SearchKeywords generates the search keyword set for a canonical product
// name: the name's own words plus the keywords of every matching category
// rule, deduplicated in first-seen order.
func (l *Lexicon) SearchKeywords(name string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	add := func(word string) {
		if word == "" {
			return
		}
		if _, dup := seen[word]; dup {
			return
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	for _, word := range strings.Fields(name) {
		add(word)
	}
	for _, rule := range l.CategoryRules {
		for _, trigger := range rule.Triggers {
			if containsWordish(name, trigger) {
				for _, kw := range rule.Keywords {
					add(kw)
				}
				break
			}
		}
	}
	return keywords
}

// containsWordish matches trigger against name with loose word boundaries:
// either the trigger appears as a whole word sequence or the space-stripped
// forms contain each other. Keeps "riz" from matching inside "rizière"
// lookalikes only when the name genuinely starts a word with it.
func containsWordish(name, trigger string) bool {
	if name == trigger {
		return true
	}
	if strings.HasPrefix(name, trigger+" ") || strings.HasSuffix(name, " "+trigger) {
		return true
	}
	return strings.Contains(name, " "+trigger+" ")
}

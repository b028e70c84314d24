package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCategory(t *testing.T) {
	lex := Default()

	tests := []struct {
		name string
		want string
	}{
		{"riz basmati", "cereales"},
		{"sucre", "epicerie"},
		{"castel lite", "bieres"},
		{"creme glace", "laitier"},
		{"savon", "menage"},
		{"coca cola", "boissons"},
		{"riziere", ""},
		{"mandazi", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.DetectCategory(tt.name))
		})
	}
}

func TestDetectCategoryWordBoundaries(t *testing.T) {
	lex := Default()

	// Trigger words only match as whole words: "the" inside "castel lite"
	// or "riz" inside "riziere" must not fire.
	assert.Equal(t, "boissons", lex.DetectCategory("the vert"))
	assert.NotEqual(t, "boissons", lex.DetectCategory("castel lite"))
	assert.Equal(t, "", lex.DetectCategory("riziere"))
}

func TestSearchKeywords(t *testing.T) {
	lex := Default()

	keywords := lex.SearchKeywords("riz basmati")
	assert.Equal(t, "riz", keywords[0], "name words come first")
	assert.Contains(t, keywords, "basmati")
	assert.Contains(t, keywords, "rice")
	assert.Contains(t, keywords, "cereale")

	// Deduplicated: "riz" is both a name word and a rule keyword.
	count := 0
	for _, kw := range keywords {
		if kw == "riz" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	assert.Equal(t, []string{"mandazi"}, lex.SearchKeywords("mandazi"))
	assert.Empty(t, lex.SearchKeywords(""))
}

func TestConfusionPairs(t *testing.T) {
	lex := Default()

	assert.True(t, lex.IsConfusionPair('1', 'l'))
	assert.True(t, lex.IsConfusionPair('l', '1'), "confusions are symmetric")
	assert.True(t, lex.IsConfusionPair('0', 'o'))
	assert.False(t, lex.IsConfusionPair('x', 'y'))
}

func TestDictionaryContents(t *testing.T) {
	lex := Default()

	// Variants, roots, misread targets and multiword components are all
	// known words.
	assert.True(t, lex.InDictionary("milk"))
	assert.True(t, lex.InDictionary("lait"))
	assert.True(t, lex.InDictionary("omo"))
	assert.True(t, lex.InDictionary("lite"))
	assert.True(t, lex.InDictionary("cola"))
	assert.False(t, lex.InDictionary("m1lk"), "misread inputs are not words")
	assert.False(t, lex.InDictionary("xyzzy"))
}

func TestCurrencySymbols(t *testing.T) {
	lex := Default()

	assert.Equal(t, "USD", lex.CurrencySymbols["$"])
	assert.Equal(t, "CDF", lex.CurrencySymbols["fc"])
	assert.Equal(t, "EUR", lex.CurrencySymbols["€"])
	assert.Equal(t, "XAF", lex.CurrencySymbols["fcfa"])
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

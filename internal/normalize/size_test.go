package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ntalo/ntalo/internal/lexicon"
)

func TestSizeExtractorExtract(t *testing.T) {
	e := NewSizeExtractor(lexicon.Default())

	tests := []struct {
		input         string
		wantSize      string
		wantRemainder string
	}{
		{"Sucre 5kg", "5kg", "sucre"},
		{"Riz 4,5 kg", "4.5kg", "riz"},
		{"Eau 1.5l", "1.5l", "eau"},
		{"Huile 5 litres", "5l", "huile"},
		{"Biere 72 cl", "72cl", "biere"},
		{"Coca 6x330ml", "6x330ml", "coca"},
		{"Primus 6 x 72 cl", "6x72cl", "primus"},
		{"Savon 12 pcs", "12pcs", "savon"},
		{"Omo 2 sachets", "2sachet", "omo"},
		{"Sucre 2 kilos", "2kg", "sucre"},
		{"Lait Entier", "", "lait entier"},
		{"", "", ""},
	}

	for _, tt := range tests {
		size, remainder := e.Extract(tt.input)
		assert.Equal(t, tt.wantSize, size, "size of %q", tt.input)
		assert.Equal(t, tt.wantRemainder, remainder, "remainder of %q", tt.input)
	}
}

func TestSizeExtractorHasSize(t *testing.T) {
	e := NewSizeExtractor(lexicon.Default())

	assert.True(t, e.HasSize("1lt"))
	assert.True(t, e.HasSize("18.9 L Recharge"))
	assert.False(t, e.HasSize("Creme Glace Caramel"))
	assert.False(t, e.HasSize(""))
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ntalo/ntalo/internal/lexicon"
)

func newCanonicalizer() *Canonicalizer {
	lex := lexicon.Default()
	return NewCanonicalizer(lex, New(lex))
}

func TestCanonicalizerKey(t *testing.T) {
	c := newCanonicalizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"english synonym", "Milk", "lait"},
		{"swahili synonym", "Sukari", "sucre"},
		{"french root unchanged", "Lait 1l", "lait_1l"},
		{"brand folded to root", "Nescafe 100g", "cafe_100g"},
		{"multiword synonym", "Coca Cola 330ml", "cocacola_330ml"},
		{"first word synonym", "Lait Nido 400g", "lait_400g"},
		{"last word synonym", "Crème Caramel", "caramel"},
		{"misread then synonym", "M1lk", "lait"},
		{"unmatched name passes through", "Mandazi", "mandazi"},
		{"size only", "5kg", "5kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Key(tt.input))
		})
	}
}

func TestCanonicalizerWordBoundaries(t *testing.T) {
	c := newCanonicalizer()

	// "castel lite" contains the fragment "te" and the word "lite" is two
	// edits from "the"; neither may canonicalize it to tea.
	assert.Equal(t, "castellite", c.Key("Castel Lite"))
	assert.NotEqual(t, c.Key("The"), c.Key("Castel Lite"))

	// Whole-string and edge-word matches still resolve.
	assert.Equal(t, "the", c.Key("The"))
	assert.Equal(t, "the", c.Key("Thé Vert"))
}

func TestCanonicalizerSizeIsIdentity(t *testing.T) {
	c := newCanonicalizer()

	assert.NotEqual(t, c.Key("Sucre 5kg"), c.Key("Sucre 1kg"))
	assert.Equal(t, "sucre_5kg", c.Key("Sugar 5kg"))
}

func TestCanonicalName(t *testing.T) {
	c := newCanonicalizer()

	name, size := c.CanonicalName("Sucr3 5kg")
	assert.Equal(t, "sucre", name)
	assert.Equal(t, "5kg", size)

	name, size = c.CanonicalName("Riz Basmati")
	assert.Equal(t, "riz basmati", name)
	assert.Equal(t, "", size)
}

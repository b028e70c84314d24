package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntalo/ntalo/internal/lexicon"
	"github.com/ntalo/ntalo/internal/model"
	"github.com/ntalo/ntalo/internal/normalize"
)

func newResolver() *Resolver {
	return NewResolver(normalize.New(lexicon.Default()))
}

func TestMergeContinuations(t *testing.T) {
	r := newResolver()

	t.Run("size-only line folds into previous item", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Crene Glace Caramel", Quantity: 1},
			{Name: "1lt(lb)", UnitPrice: 4500, TotalPrice: 4500},
		}

		merged := r.Resolve(items)
		require.Len(t, merged, 1)
		assert.Equal(t, "Crene Glace Caramel 1lt(lb)", merged[0].Name)
		assert.Equal(t, 4500.0, merged[0].UnitPrice)
		assert.Equal(t, 4500.0, merged[0].TotalPrice)
	})

	t.Run("size with filler word still folds", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Eau Canadian Pure", UnitPrice: 12000},
			{Name: "18.9 L Recharge", UnitPrice: 12000},
		}

		merged := r.Resolve(items)
		require.Len(t, merged, 1)
		assert.Equal(t, "Eau Canadian Pure 18.9 L Recharge", merged[0].Name)
	})

	t.Run("incompatible price blocks the fold", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Eau Canadian Pure", UnitPrice: 1000},
			{Name: "18.9 L Recharge", UnitPrice: 5000},
		}

		merged := r.Resolve(items)
		assert.Len(t, merged, 2)
	})

	t.Run("price within ten percent folds", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Huile Vegetale", UnitPrice: 9800},
			{Name: "5l", UnitPrice: 10000},
		}

		merged := r.Resolve(items)
		require.Len(t, merged, 1)
		assert.Equal(t, "Huile Vegetale 5l", merged[0].Name)
	})

	t.Run("named line never treated as continuation", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Sucre 5kg", UnitPrice: 4500},
			{Name: "Riz 5kg", UnitPrice: 4500},
		}

		merged := r.Resolve(items)
		assert.Len(t, merged, 2)
	})

	t.Run("leading size-only line kept", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "1lt", UnitPrice: 4500},
		}

		merged := r.Resolve(items)
		assert.Len(t, merged, 1)
	})
}

func TestMergeDuplicates(t *testing.T) {
	r := newResolver()

	t.Run("ocr double-read collapses", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Coca Cola 33cl", UnitPrice: 1000, Quantity: 1, TotalPrice: 1000},
			{Name: "Coca Cola 33 cl", UnitPrice: 1005, Quantity: 2, TotalPrice: 2010},
		}

		merged := r.Resolve(items)
		require.Len(t, merged, 1)
		assert.Equal(t, "Coca Cola 33 cl", merged[0].Name, "longer name wins")
		assert.Equal(t, 2.0, merged[0].Quantity)
		assert.Equal(t, 2010.0, merged[0].TotalPrice)
	})

	t.Run("different price keeps both", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Coca Cola 33cl", UnitPrice: 1000},
			{Name: "Coca Cola 33cl", UnitPrice: 1500},
		}

		merged := r.Resolve(items)
		assert.Len(t, merged, 2)
	})

	t.Run("different products keep both", func(t *testing.T) {
		items := []model.RawItem{
			{Name: "Sucre 5kg", UnitPrice: 4500},
			{Name: "Farine 5kg", UnitPrice: 4500},
		}

		merged := r.Resolve(items)
		assert.Len(t, merged, 2)
	})
}

func TestOrderedOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, orderedOverlap("sucre", "sucre"), 1e-9)
	assert.InDelta(t, 0.0, orderedOverlap("", "sucre"), 1e-9)
	assert.InDelta(t, 0.5, orderedOverlap("ab", "acbd"), 1e-9)
}

func TestPriceCompatible(t *testing.T) {
	assert.True(t, priceCompatible(0, 4500, 0.01), "zero is always compatible")
	assert.True(t, priceCompatible(1000, 1005, 0.01))
	assert.False(t, priceCompatible(1000, 1500, 0.01))
	assert.True(t, priceCompatible(1000, 1090, 0.10))
	assert.False(t, priceCompatible(1000, 1500, 0.10))
}

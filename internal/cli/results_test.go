package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ntalo/ntalo/internal/model"
)

func TestRenderSearchResults(t *testing.T) {
	result := model.SearchResult{
		Items: []model.RankedItem{{
			Entry: model.CommunityAggregate{
				DisplayName: "riz basmati",
				Category:    "cereales",
				Stats: model.PriceStats{
					MinPrice:        5500,
					MaxPrice:        6500,
					AvgPrice:        6000,
					PrimaryCurrency: "CDF",
					TotalPurchases:  12,
					StoreCount:      3,
				},
			},
			Score: 96.5,
		}},
		Total:   5,
		HasMore: true,
	}

	out := RenderSearchResults(result, "riz")

	assert.Contains(t, out, "riz basmati")
	assert.Contains(t, out, "cereales")
	assert.Contains(t, out, "5500-6500 CDF")
	assert.Contains(t, out, "12 purchases across 3 stores")
	assert.Contains(t, out, "1 of 5 results")
	assert.Contains(t, out, "more available")
}

func TestRenderSearchResultsEmpty(t *testing.T) {
	out := RenderSearchResults(model.SearchResult{}, "riz")
	assert.Contains(t, out, "No matching products")
}

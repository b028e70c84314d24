package cli

import (
	"fmt"
	"strings"

	"github.com/ntalo/ntalo/internal/model"
)

// RenderSearchResults formats a ranked result page for terminal display.
func RenderSearchResults(result model.SearchResult, query string) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Results for %q", query)))
	b.WriteString("\n")

	if len(result.Items) == 0 {
		b.WriteString(SubtleStyle.Render("No matching products."))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range result.Items {
		entry := item.Entry
		line := fmt.Sprintf("%2d. %s", i+1, BoldStyle.Render(entry.DisplayName))
		if entry.Category != "" {
			line += SubtleStyle.Render(fmt.Sprintf("  [%s]", entry.Category))
		}
		b.WriteString(line)
		b.WriteString("\n")

		stats := entry.Stats
		b.WriteString(fmt.Sprintf("    %s %.0f-%.0f %s (avg %.0f), %d purchases across %d stores, score %.1f\n",
			SubtleStyle.Render("price"),
			stats.MinPrice, stats.MaxPrice, stats.PrimaryCurrency, stats.AvgPrice,
			stats.TotalPurchases, stats.StoreCount, item.Score))
	}

	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d of %d results", len(result.Items), result.Total)))
	if result.HasMore {
		b.WriteString(SubtleStyle.Render(" (more available)"))
	}
	b.WriteString("\n")

	return b.String()
}

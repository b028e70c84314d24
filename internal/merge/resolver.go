// Package merge reconciles a receipt's raw item list: multi-line
// continuations are folded into their parent item, near-identical lines are
// deduplicated, and multi-image receipts are combined into one logical
// receipt.
package merge

import (
	"strings"

	"github.com/ntalo/ntalo/internal/model"
	"github.com/ntalo/ntalo/internal/normalize"
)

// Similarity thresholds for the ordered-character overlap rule. In-page
// duplicates need a tighter match than cross-page reconciliation because OCR
// noise within one image is smaller than between images.
const (
	duplicateOverlap = 0.80
	pageOverlap      = 0.70
	priceTolerance   = 0.01
	lineTolerance    = 0.10
)

// continuationFillers are words that may accompany a size on a
// continuation line without making it a standalone product.
var continuationFillers = map[string]struct{}{
	"recharge":  {},
	"refill":    {},
	"bottle":    {},
	"bouteille": {},
}

// Resolver merges and deduplicates receipt item lists.
type Resolver struct {
	norm  *normalize.Normalizer
	sizes *normalize.SizeExtractor
}

// NewResolver builds a resolver over the given normalizer.
func NewResolver(norm *normalize.Normalizer) *Resolver {
	return &Resolver{
		norm:  norm,
		sizes: normalize.NewSizeExtractor(norm.Lexicon()),
	}
}

// Resolve runs both passes over a single page's item list: multi-line merge
// then duplicate merge. The input slice is not modified.
func (r *Resolver) Resolve(items []model.RawItem) []model.RawItem {
	merged := r.mergeContinuations(items)
	return r.mergeDuplicates(merged)
}

// mergeContinuations folds size-only lines into the immediately preceding
// item. A line is a continuation when its name is only size/quantity text and
// its price is absent, zero, or within ~10% of the previous item's price:
// ["Creme Glace Caramel" 0, "1lt(lb)" 4500] becomes one item
// "Creme Glace Caramel 1lt(lb)" at 4500.
func (r *Resolver) mergeContinuations(items []model.RawItem) []model.RawItem {
	var out []model.RawItem
	for _, item := range items {
		if len(out) > 0 && r.isSizeOnly(item.Name) {
			prev := &out[len(out)-1]
			if priceCompatible(item.UnitPrice, prev.UnitPrice, lineTolerance) {
				prev.Name = strings.TrimSpace(prev.Name + " " + item.Name)
				if prev.UnitPrice == 0 {
					prev.UnitPrice = item.UnitPrice
				}
				if prev.TotalPrice == 0 {
					prev.TotalPrice = item.TotalPrice
				}
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// isSizeOnly reports whether a name is nothing but size/quantity text, like
// "1lt(lb)" or "18.9 L Recharge".
func (r *Resolver) isSizeOnly(name string) bool {
	size, remainder := r.sizes.Extract(name)
	if size == "" {
		return false
	}
	remainder = strings.ToLower(remainder)
	for _, word := range strings.FieldsFunc(remainder, func(c rune) bool {
		return !('a' <= c && c <= 'z' || '0' <= c && c <= '9')
	}) {
		if len(word) <= 2 {
			continue
		}
		if _, filler := continuationFillers[word]; !filler {
			return false
		}
	}
	return true
}

// mergeDuplicates collapses lines the OCR read twice: near-equal unit price
// (within 1%) and similar names. The longer, more descriptive name wins.
func (r *Resolver) mergeDuplicates(items []model.RawItem) []model.RawItem {
	var out []model.RawItem
	for _, item := range items {
		merged := false
		for i := range out {
			if !priceCompatible(item.UnitPrice, out[i].UnitPrice, priceTolerance) {
				continue
			}
			if !r.similarNames(item.Name, out[i].Name, duplicateOverlap) {
				continue
			}
			if len(item.Name) > len(out[i].Name) {
				out[i].Name = item.Name
			}
			if item.Quantity > out[i].Quantity {
				out[i].Quantity = item.Quantity
			}
			if item.TotalPrice > out[i].TotalPrice {
				out[i].TotalPrice = item.TotalPrice
			}
			merged = true
			break
		}
		if !merged {
			out = append(out, item)
		}
	}
	return out
}

// similarNames applies the ordered-character overlap rule: names are similar
// when one normalized form contains the other, or when their longest common
// subsequence (spaces removed) covers at least the given share of the longer
// name.
func (r *Resolver) similarNames(a, b string, threshold float64) bool {
	na := strings.ReplaceAll(r.norm.Normalize(a), " ", "")
	nb := strings.ReplaceAll(r.norm.Normalize(b), " ", "")
	if na == "" || nb == "" {
		return false
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return orderedOverlap(na, nb) >= threshold
}

// orderedOverlap is the LCS length divided by the longer string's length.
func orderedOverlap(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return float64(lcsLength(a, b)) / float64(longest)
}

func lcsLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	return prev[len(b)]
}

// priceCompatible reports whether two unit prices are equal within the given
// relative tolerance, treating zero as always compatible.
func priceCompatible(a, b, tolerance float64) bool {
	if a == 0 || b == 0 {
		return true
	}
	larger := a
	if b > larger {
		larger = b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff/larger <= tolerance
}

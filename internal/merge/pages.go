package merge

import (
	"strings"

	"github.com/ntalo/ntalo/internal/common"
	"github.com/ntalo/ntalo/internal/model"
)

// DuplicatePageChecker answers whether two pages are images of the same
// physical page. The real implementation is an image-similarity collaborator;
// this core only consumes the boolean.
type DuplicatePageChecker interface {
	IsDuplicatePage(a, b int) bool
}

// NoDuplicates is the default checker: treats every page as distinct.
type NoDuplicates struct{}

// IsDuplicatePage always returns false.
func (NoDuplicates) IsDuplicatePage(_, _ int) bool { return false }

// MergePages combines the pages of a multi-image receipt into one item list.
// Pages carrying a usable store name must agree on it; disagreement means the
// user photographed different receipts, which is rejected. Near-duplicate
// items across pages (the same product caught on two overlapping shots) are
// reconciled by summing quantities and totals.
func (r *Resolver) MergePages(pages []model.ReceiptPage, dup DuplicatePageChecker) (model.ReceiptPage, error) {
	if dup == nil {
		dup = NoDuplicates{}
	}

	var out model.ReceiptPage
	seen := -1
	for i, page := range pages {
		if skipDuplicate(i, seen, dup) {
			continue
		}

		if usableStoreName(page.StoreName) {
			if usableStoreName(out.StoreName) && !strings.EqualFold(strings.TrimSpace(out.StoreName), strings.TrimSpace(page.StoreName)) {
				return model.ReceiptPage{}, common.ErrMultipleReceipts
			}
			if !usableStoreName(out.StoreName) {
				out.StoreName = strings.TrimSpace(page.StoreName)
			}
		}
		if out.Currency == "" {
			out.Currency = page.Currency
		}

		for _, item := range r.Resolve(page.Items) {
			out.Items = reconcileItem(r, out.Items, item)
		}
		seen = i
	}

	return out, nil
}

func skipDuplicate(i, lastKept int, dup DuplicatePageChecker) bool {
	if lastKept < 0 {
		return false
	}
	return dup.IsDuplicatePage(lastKept, i)
}

// reconcileItem appends an item to the accumulated list, or folds it into an
// existing near-duplicate (ordered-character overlap at the cross-page
// threshold) by summing quantities and totals.
func reconcileItem(r *Resolver, items []model.RawItem, item model.RawItem) []model.RawItem {
	for i := range items {
		if !r.similarNames(item.Name, items[i].Name, pageOverlap) {
			continue
		}
		if !priceCompatible(item.UnitPrice, items[i].UnitPrice, lineTolerance) {
			continue
		}
		if len(item.Name) > len(items[i].Name) {
			items[i].Name = item.Name
		}
		items[i].Quantity += item.Quantity
		items[i].TotalPrice += item.TotalPrice
		if items[i].UnitPrice == 0 {
			items[i].UnitPrice = item.UnitPrice
		}
		return items
	}
	return append(items, item)
}

func usableStoreName(name string) bool {
	return !model.IsUnknownName(name)
}

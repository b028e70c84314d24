// Package model defines the core domain types shared across the application.
package model

import (
	"strings"
	"time"
)

// RawItem is a single line item as extracted from a receipt by the OCR
// collaborator. It is ephemeral: consumed once per receipt and never stored.
type RawItem struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit,omitempty"`
	Category   string  `json:"category,omitempty"`
	Currency   string  `json:"currency,omitempty"`
	Quantity   float64 `json:"quantity,omitempty"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice,omitempty"`
}

// Receipt is a fully reconciled receipt ready for aggregation.
type Receipt struct {
	Date      time.Time
	ID        string
	UserID    string
	City      string
	StoreName string
	Currency  string
	Items     []RawItem
}

// ReceiptPage holds the items extracted from one image of a multi-image
// receipt before page reconciliation.
type ReceiptPage struct {
	StoreName string
	Currency  string
	Items     []RawItem
}

// UnknownSentinels are the placeholder values the OCR collaborator emits when
// it cannot read a name. Matching is case-insensitive and substring based.
var UnknownSentinels = []string{
	"unknown",
	"inconnu",
	"unavailable name",
	"nom indisponible",
	"n/a",
}

// IsUnknownName reports whether a name is an OCR placeholder rather than a
// real product or store name.
func IsUnknownName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "-" {
		return true
	}
	for _, s := range UnknownSentinels {
		if strings.Contains(n, s) {
			return true
		}
	}
	return false
}

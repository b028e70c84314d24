package model

import "time"

// PriceObservation records one purchase of one canonical product.
// UserID is populated only on community observations.
type PriceObservation struct {
	Timestamp    time.Time `json:"timestamp"`
	StoreName    string    `json:"storeName"`
	OriginalName string    `json:"originalName"`
	Currency     string    `json:"currency"`
	ReceiptID    string    `json:"receiptId"`
	UserID       string    `json:"userId,omitempty"`
	Price        float64   `json:"price"`
}

// PriceStats are derived from the retained observation list. They are always
// recomputed in full, never adjusted incrementally.
type PriceStats struct {
	LastPurchaseDate time.Time `json:"lastPurchaseDate"`
	PrimaryCurrency  string    `json:"primaryCurrency"`
	MinPrice         float64   `json:"minPrice"`
	MaxPrice         float64   `json:"maxPrice"`
	AvgPrice         float64   `json:"avgPrice"`
	StoreCount       int       `json:"storeCount"`
	TotalPurchases   int       `json:"totalPurchases"`
}

// PersonalAggregate is a user-owned price ledger entry for one canonical key.
// It is created on first valid purchase and deleted when its observation list
// becomes empty.
type PersonalAggregate struct {
	UserID       string             `json:"userId"`
	CanonicalKey string             `json:"canonicalKey"`
	DisplayName  string             `json:"displayName"`
	Observations []PriceObservation `json:"observations"`
	Stats        PriceStats         `json:"stats"`
}

// StoreStats is a per-store sub-aggregate within a community entry.
type StoreStats struct {
	LastSeen time.Time `json:"lastSeen"`
	MinPrice float64   `json:"minPrice"`
	MaxPrice float64   `json:"maxPrice"`
	AvgPrice float64   `json:"avgPrice"`
	Count    int       `json:"count"`
}

// CommunityAggregate is the shared, city-scoped ledger entry for one canonical
// key. It is append-mostly: valid purchases and administrative backfill update
// it, personal-data deletion never does.
type CommunityAggregate struct {
	City               string                `json:"city"`
	CanonicalKey       string                `json:"canonicalKey"`
	DisplayName        string                `json:"displayName"`
	Category           string                `json:"category"`
	SearchKeywords     []string              `json:"searchKeywords"`
	UserIDs            []string              `json:"userIds"`
	Observations       []PriceObservation    `json:"observations"`
	StoreStats         map[string]StoreStats `json:"storeStats"`
	Stats              PriceStats            `json:"stats"`
	UserCount          int                   `json:"userCount"`
	PriceVolatility    float64               `json:"priceVolatility"`
	PriceChangePercent float64               `json:"priceChangePercent"`
	PopularityScore    float64               `json:"popularityScore"`
	FirstSeen          time.Time             `json:"firstSeen"`
}

// RankedItem is one community entry scored against a search query.
type RankedItem struct {
	Entry CommunityAggregate `json:"entry"`
	Score float64            `json:"score"`
}

// SearchResult is a paginated page of ranked community entries.
type SearchResult struct {
	Items   []RankedItem `json:"items"`
	Total   int          `json:"total"`
	HasMore bool         `json:"hasMore"`
}

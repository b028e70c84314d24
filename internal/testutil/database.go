// Package testutil provides shared test helpers: in-memory databases and
// receipt fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ntalo/ntalo/internal/model"
	"github.com/ntalo/ntalo/internal/service"
	"github.com/ntalo/ntalo/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store and registers its
// cleanup with the test.
func SetupTestDB(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// ReceiptBuilder assembles receipt fixtures with sensible defaults.
type ReceiptBuilder struct {
	receipt model.Receipt
}

// NewReceipt starts a builder for the given user.
func NewReceipt(userID string) *ReceiptBuilder {
	return &ReceiptBuilder{receipt: model.Receipt{
		ID:        "receipt-1",
		UserID:    userID,
		City:      "kinshasa",
		StoreName: "Kin Marche",
		Currency:  "CDF",
		Date:      time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}}
}

// WithID sets the receipt ID.
func (b *ReceiptBuilder) WithID(id string) *ReceiptBuilder {
	b.receipt.ID = id
	return b
}

// WithCity sets the city, or clears it when empty.
func (b *ReceiptBuilder) WithCity(city string) *ReceiptBuilder {
	b.receipt.City = city
	return b
}

// WithStore sets the store name.
func (b *ReceiptBuilder) WithStore(store string) *ReceiptBuilder {
	b.receipt.StoreName = store
	return b
}

// WithDate sets the receipt date.
func (b *ReceiptBuilder) WithDate(date time.Time) *ReceiptBuilder {
	b.receipt.Date = date
	return b
}

// WithItem appends a named item at a unit price.
func (b *ReceiptBuilder) WithItem(name string, unitPrice float64) *ReceiptBuilder {
	b.receipt.Items = append(b.receipt.Items, model.RawItem{
		Name:      name,
		Quantity:  1,
		UnitPrice: unitPrice,
	})
	return b
}

// Build returns the assembled receipt.
func (b *ReceiptBuilder) Build() *model.Receipt {
	r := b.receipt
	return &r
}

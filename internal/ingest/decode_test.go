package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntalo/ntalo/internal/lexicon"
)

func TestDecode(t *testing.T) {
	d := NewDecoder(lexicon.Default())

	payload := []byte(`{
		"receiptId": "r-1",
		"userId": "user-1",
		"city": "Kinshasa",
		"storeName": " Kin Marche ",
		"currency": "FC",
		"date": "2026-08-01",
		"items": [
			{"name": "Sucre 5kg", "quantity": 1, "unitPrice": 4500, "totalPrice": 4500},
			{"name": "Coca Cola", "quantity": 2, "unitPrice": "1,500.00", "totalPrice": "3,000.00", "currency": "$"}
		]
	}`)

	receipt, err := d.Decode(payload)
	require.NoError(t, err)

	assert.Equal(t, "r-1", receipt.ID)
	assert.Equal(t, "user-1", receipt.UserID)
	assert.Equal(t, "kinshasa", receipt.City, "city is lowercased")
	assert.Equal(t, "Kin Marche", receipt.StoreName)
	assert.Equal(t, "CDF", receipt.Currency)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), receipt.Date)

	require.Len(t, receipt.Items, 2)
	assert.Equal(t, 4500.0, receipt.Items[0].UnitPrice)
	assert.Equal(t, "CDF", receipt.Items[0].Currency, "receipt currency is the fallback")
	assert.Equal(t, 1500.0, receipt.Items[1].UnitPrice, "numeric strings with separators parse")
	assert.Equal(t, "USD", receipt.Items[1].Currency)
}

func TestDecodeDefensive(t *testing.T) {
	d := NewDecoder(lexicon.Default())

	t.Run("missing receipt id gets generated", func(t *testing.T) {
		receipt, err := d.Decode([]byte(`{"userId": "u", "items": [{"name": "Sucre"}]}`))
		require.NoError(t, err)
		assert.NotEmpty(t, receipt.ID)
	})

	t.Run("numeric name becomes its string form", func(t *testing.T) {
		receipt, err := d.Decode([]byte(`{"items": [{"name": 404}]}`))
		require.NoError(t, err)
		require.Len(t, receipt.Items, 1)
		assert.Equal(t, "404", receipt.Items[0].Name)
	})

	t.Run("null and empty prices become zero", func(t *testing.T) {
		receipt, err := d.Decode([]byte(`{"items": [{"name": "Sucre", "unitPrice": null, "totalPrice": ""}]}`))
		require.NoError(t, err)
		require.Len(t, receipt.Items, 1)
		assert.Equal(t, 0.0, receipt.Items[0].UnitPrice)
		assert.Equal(t, 0.0, receipt.Items[0].TotalPrice)
	})

	t.Run("garbage price becomes zero", func(t *testing.T) {
		receipt, err := d.Decode([]byte(`{"items": [{"name": "Sucre", "unitPrice": "gratuit"}]}`))
		require.NoError(t, err)
		assert.Equal(t, 0.0, receipt.Items[0].UnitPrice)
	})

	t.Run("unparseable date is left zero", func(t *testing.T) {
		receipt, err := d.Decode([]byte(`{"date": "hier", "items": []}`))
		require.NoError(t, err)
		assert.True(t, receipt.Date.IsZero())
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		_, err := d.Decode([]byte(`{`))
		assert.Error(t, err)
	})
}

func TestDecodeDates(t *testing.T) {
	d := NewDecoder(lexicon.Default())

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-08-01", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"01/08/2026", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-08-01T10:30:00Z", time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)},
		{"2026-08-01 10:30:00", time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, d.parseDate(tt.raw), "date %q", tt.raw)
	}
}

func TestFoldCurrency(t *testing.T) {
	d := NewDecoder(lexicon.Default())

	tests := []struct {
		raw  string
		want string
	}{
		{"FC", "CDF"},
		{"fc", "CDF"},
		{"$", "USD"},
		{"francs", "CDF"},
		{"fcfa", "XAF"},
		{"gbp", "GBP"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, d.foldCurrency(tt.raw), "currency %q", tt.raw)
	}
}

func TestDecodePages(t *testing.T) {
	d := NewDecoder(lexicon.Default())

	payload := []byte(`{
		"receiptId": "r-1",
		"userId": "user-1",
		"city": "Kinshasa",
		"pages": [
			{"storeName": "Kin Marche", "currency": "FC", "items": [{"name": "Sucre 5kg", "unitPrice": 4500}]},
			{"storeName": "Kin Marche", "items": [{"name": "Riz 5kg", "unitPrice": 6000}]}
		]
	}`)

	receipt, pages, err := d.DecodePages(payload)
	require.NoError(t, err)
	assert.Equal(t, "r-1", receipt.ID)
	assert.Empty(t, receipt.Items, "pages are returned unreconciled")

	require.Len(t, pages, 2)
	assert.Equal(t, "Kin Marche", pages[0].StoreName)
	assert.Equal(t, "CDF", pages[0].Currency)
	require.Len(t, pages[0].Items, 1)
	assert.Equal(t, "CDF", pages[0].Items[0].Currency)
}

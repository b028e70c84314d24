package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntalo/ntalo/internal/common"
	"github.com/ntalo/ntalo/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func samplePersonal(userID, key string) *model.PersonalAggregate {
	return &model.PersonalAggregate{
		UserID:       userID,
		CanonicalKey: key,
		DisplayName:  "sucre",
		Observations: []model.PriceObservation{{
			Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			StoreName: "Kin Marche",
			Currency:  "CDF",
			ReceiptID: "r-1",
			Price:     4500,
		}},
		Stats: model.PriceStats{
			MinPrice:       4500,
			MaxPrice:       4500,
			AvgPrice:       4500,
			StoreCount:     1,
			TotalPurchases: 1,
		},
	}
}

func sampleCommunity(city, key string) *model.CommunityAggregate {
	return &model.CommunityAggregate{
		City:           city,
		CanonicalKey:   key,
		DisplayName:    "sucre",
		Category:       "epicerie",
		SearchKeywords: []string{"sucre", "sugar"},
		UserIDs:        []string{"user-1"},
		UserCount:      1,
		Observations: []model.PriceObservation{{
			Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			StoreName: "Kin Marche",
			Currency:  "CDF",
			UserID:    "user-1",
			Price:     4500,
		}},
		StoreStats: map[string]model.StoreStats{
			"Kin Marche": {MinPrice: 4500, MaxPrice: 4500, AvgPrice: 4500, Count: 1},
		},
		FirstSeen: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestPersonalAggregateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	agg := samplePersonal("user-1", "sucre_5kg")
	require.NoError(t, store.SavePersonalAggregate(ctx, agg))

	got, err := store.GetPersonalAggregate(ctx, "user-1", "sucre_5kg")
	require.NoError(t, err)
	assert.Equal(t, agg, got)

	// Upsert replaces the document.
	agg.Observations = append(agg.Observations, model.PriceObservation{
		Timestamp: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		ReceiptID: "r-2",
		Price:     4600,
	})
	require.NoError(t, store.SavePersonalAggregate(ctx, agg))

	got, err = store.GetPersonalAggregate(ctx, "user-1", "sucre_5kg")
	require.NoError(t, err)
	assert.Len(t, got.Observations, 2)
}

func TestPersonalAggregateNotFound(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetPersonalAggregate(ctx, "user-1", "never")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeletePersonalAggregate(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SavePersonalAggregate(ctx, samplePersonal("user-1", "sucre_5kg")))
	require.NoError(t, store.DeletePersonalAggregate(ctx, "user-1", "sucre_5kg"))

	_, err := store.GetPersonalAggregate(ctx, "user-1", "sucre_5kg")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetPersonalAggregatesByUser(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SavePersonalAggregate(ctx, samplePersonal("user-1", "sucre_5kg")))
	require.NoError(t, store.SavePersonalAggregate(ctx, samplePersonal("user-1", "riz_1kg")))
	require.NoError(t, store.SavePersonalAggregate(ctx, samplePersonal("user-2", "sucre_5kg")))

	aggs, err := store.GetPersonalAggregatesByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, aggs, 2)

	for _, agg := range aggs {
		assert.Equal(t, "user-1", agg.UserID)
	}
}

func TestCommunityAggregateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	agg := sampleCommunity("kinshasa", "sucre_5kg")
	require.NoError(t, store.SaveCommunityAggregate(ctx, agg))

	got, err := store.GetCommunityAggregate(ctx, "kinshasa", "sucre_5kg")
	require.NoError(t, err)
	assert.Equal(t, agg, got)

	_, err = store.GetCommunityAggregate(ctx, "lubumbashi", "sucre_5kg")
	assert.ErrorIs(t, err, common.ErrNotFound, "entries are city scoped")
}

func TestListCommunityAggregates(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveCommunityAggregate(ctx, sampleCommunity("kinshasa", "sucre_5kg")))
	require.NoError(t, store.SaveCommunityAggregate(ctx, sampleCommunity("kinshasa", "riz_1kg")))
	require.NoError(t, store.SaveCommunityAggregate(ctx, sampleCommunity("lubumbashi", "sucre_5kg")))

	entries, err := store.ListCommunityAggregates(ctx, "kinshasa")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "riz_1kg", entries[0].CanonicalKey, "listed in key order")
	assert.Equal(t, "sucre_5kg", entries[1].CanonicalKey)
}

func TestTransactionCommit(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.SavePersonalAggregate(ctx, samplePersonal("user-1", "sucre_5kg")))
	require.NoError(t, tx.SaveCommunityAggregate(ctx, sampleCommunity("kinshasa", "sucre_5kg")))
	require.NoError(t, tx.Commit())

	_, err = store.GetPersonalAggregate(ctx, "user-1", "sucre_5kg")
	assert.NoError(t, err)
	_, err = store.GetCommunityAggregate(ctx, "kinshasa", "sucre_5kg")
	assert.NoError(t, err)
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.SavePersonalAggregate(ctx, samplePersonal("user-1", "sucre_5kg")))
	require.NoError(t, tx.Rollback())

	_, err = store.GetPersonalAggregate(ctx, "user-1", "sucre_5kg")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.Migrate(ctx))

	var version int
	err := store.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	//nolint:staticcheck // deliberately nil context
	_, err := store.GetPersonalAggregate(nil, "user-1", "sucre_5kg")
	assert.Error(t, err)

	_, err = store.GetPersonalAggregate(ctx, "", "sucre_5kg")
	assert.Error(t, err)

	err = store.SavePersonalAggregate(ctx, nil)
	assert.Error(t, err)

	err = store.SaveCommunityAggregate(ctx, &model.CommunityAggregate{City: "kinshasa"})
	assert.Error(t, err, "missing canonical key")
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ntalo/ntalo/internal/common"
	"github.com/ntalo/ntalo/internal/model"
)

// GetCommunityAggregate retrieves one community ledger entry.
func (s *SQLiteStorage) GetCommunityAggregate(ctx context.Context, city, canonicalKey string) (*model.CommunityAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(city, "city"); err != nil {
		return nil, err
	}
	if err := validateString(canonicalKey, "canonicalKey"); err != nil {
		return nil, err
	}
	return getCommunityTx(ctx, s.db, city, canonicalKey)
}

func (t *sqliteTransaction) GetCommunityAggregate(ctx context.Context, city, canonicalKey string) (*model.CommunityAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getCommunityTx(ctx, t.tx, city, canonicalKey)
}

func getCommunityTx(ctx context.Context, q queryable, city, canonicalKey string) (*model.CommunityAggregate, error) {
	var doc string
	err := q.QueryRowContext(ctx, `
		SELECT document
		FROM community_aggregates
		WHERE city = ? AND canonical_key = ?
	`, city, canonicalKey).Scan(&doc)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get community aggregate: %w", err)
	}

	var agg model.CommunityAggregate
	if err := json.Unmarshal([]byte(doc), &agg); err != nil {
		return nil, fmt.Errorf("failed to decode community aggregate: %w", err)
	}
	return &agg, nil
}

// SaveCommunityAggregate creates or replaces a community ledger entry.
func (s *SQLiteStorage) SaveCommunityAggregate(ctx context.Context, agg *model.CommunityAggregate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCommunityAggregate(agg); err != nil {
		return err
	}
	return saveCommunityTx(ctx, s.db, agg)
}

func (t *sqliteTransaction) SaveCommunityAggregate(ctx context.Context, agg *model.CommunityAggregate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCommunityAggregate(agg); err != nil {
		return err
	}
	return saveCommunityTx(ctx, t.tx, agg)
}

func saveCommunityTx(ctx context.Context, q queryable, agg *model.CommunityAggregate) error {
	doc, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("failed to encode community aggregate: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO community_aggregates (city, canonical_key, display_name, category, document, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(city, canonical_key) DO UPDATE SET
			display_name = excluded.display_name,
			category = excluded.category,
			document = excluded.document,
			updated_at = excluded.updated_at
	`, agg.City, agg.CanonicalKey, agg.DisplayName, agg.Category, string(doc), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to save community aggregate: %w", err)
	}
	return nil
}

// ListCommunityAggregates returns every community entry for a city.
func (s *SQLiteStorage) ListCommunityAggregates(ctx context.Context, city string) ([]model.CommunityAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(city, "city"); err != nil {
		return nil, err
	}
	return listCommunityTx(ctx, s.db, city)
}

func (t *sqliteTransaction) ListCommunityAggregates(ctx context.Context, city string) ([]model.CommunityAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listCommunityTx(ctx, t.tx, city)
}

func listCommunityTx(ctx context.Context, q queryable, city string) ([]model.CommunityAggregate, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT document
		FROM community_aggregates
		WHERE city = ?
		ORDER BY canonical_key
	`, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list community aggregates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var aggs []model.CommunityAggregate
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan community aggregate: %w", err)
		}
		var agg model.CommunityAggregate
		if err := json.Unmarshal([]byte(doc), &agg); err != nil {
			return nil, fmt.Errorf("failed to decode community aggregate: %w", err)
		}
		aggs = append(aggs, agg)
	}
	return aggs, rows.Err()
}

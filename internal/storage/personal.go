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

// GetPersonalAggregate retrieves one personal ledger entry.
func (s *SQLiteStorage) GetPersonalAggregate(ctx context.Context, userID, canonicalKey string) (*model.PersonalAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(canonicalKey, "canonicalKey"); err != nil {
		return nil, err
	}
	return getPersonalTx(ctx, s.db, userID, canonicalKey)
}

func (t *sqliteTransaction) GetPersonalAggregate(ctx context.Context, userID, canonicalKey string) (*model.PersonalAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getPersonalTx(ctx, t.tx, userID, canonicalKey)
}

func getPersonalTx(ctx context.Context, q queryable, userID, canonicalKey string) (*model.PersonalAggregate, error) {
	var doc string
	err := q.QueryRowContext(ctx, `
		SELECT document
		FROM personal_aggregates
		WHERE user_id = ? AND canonical_key = ?
	`, userID, canonicalKey).Scan(&doc)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get personal aggregate: %w", err)
	}

	var agg model.PersonalAggregate
	if err := json.Unmarshal([]byte(doc), &agg); err != nil {
		return nil, fmt.Errorf("failed to decode personal aggregate: %w", err)
	}
	return &agg, nil
}

// SavePersonalAggregate creates or replaces a personal ledger entry.
func (s *SQLiteStorage) SavePersonalAggregate(ctx context.Context, agg *model.PersonalAggregate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePersonalAggregate(agg); err != nil {
		return err
	}
	return savePersonalTx(ctx, s.db, agg)
}

func (t *sqliteTransaction) SavePersonalAggregate(ctx context.Context, agg *model.PersonalAggregate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePersonalAggregate(agg); err != nil {
		return err
	}
	return savePersonalTx(ctx, t.tx, agg)
}

func savePersonalTx(ctx context.Context, q queryable, agg *model.PersonalAggregate) error {
	doc, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("failed to encode personal aggregate: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO personal_aggregates (user_id, canonical_key, display_name, document, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, canonical_key) DO UPDATE SET
			display_name = excluded.display_name,
			document = excluded.document,
			updated_at = excluded.updated_at
	`, agg.UserID, agg.CanonicalKey, agg.DisplayName, string(doc), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to save personal aggregate: %w", err)
	}
	return nil
}

// DeletePersonalAggregate removes a personal ledger entry entirely.
func (s *SQLiteStorage) DeletePersonalAggregate(ctx context.Context, userID, canonicalKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return deletePersonalTx(ctx, s.db, userID, canonicalKey)
}

func (t *sqliteTransaction) DeletePersonalAggregate(ctx context.Context, userID, canonicalKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return deletePersonalTx(ctx, t.tx, userID, canonicalKey)
}

func deletePersonalTx(ctx context.Context, q queryable, userID, canonicalKey string) error {
	_, err := q.ExecContext(ctx, `
		DELETE FROM personal_aggregates
		WHERE user_id = ? AND canonical_key = ?
	`, userID, canonicalKey)
	if err != nil {
		return fmt.Errorf("failed to delete personal aggregate: %w", err)
	}
	return nil
}

// GetPersonalAggregatesByUser returns every personal ledger entry for a user.
func (s *SQLiteStorage) GetPersonalAggregatesByUser(ctx context.Context, userID string) ([]model.PersonalAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	return getPersonalByUserTx(ctx, s.db, userID)
}

func (t *sqliteTransaction) GetPersonalAggregatesByUser(ctx context.Context, userID string) ([]model.PersonalAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getPersonalByUserTx(ctx, t.tx, userID)
}

func getPersonalByUserTx(ctx context.Context, q queryable, userID string) ([]model.PersonalAggregate, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT document
		FROM personal_aggregates
		WHERE user_id = ?
		ORDER BY canonical_key
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal aggregates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var aggs []model.PersonalAggregate
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan personal aggregate: %w", err)
		}
		var agg model.PersonalAggregate
		if err := json.Unmarshal([]byte(doc), &agg); err != nil {
			return nil, fmt.Errorf("failed to decode personal aggregate: %w", err)
		}
		aggs = append(aggs, agg)
	}
	return aggs, rows.Err()
}

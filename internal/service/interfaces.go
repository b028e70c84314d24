// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ntalo/ntalo/internal/model"
)

// Storage defines the contract the aggregation engine requires from the
// persistence layer: point reads, upserts, and atomic multi-document commits
// via transactions. Lookups that find nothing return common.ErrNotFound.
type Storage interface {
	// Personal ledger operations.
	GetPersonalAggregate(ctx context.Context, userID, canonicalKey string) (*model.PersonalAggregate, error)
	SavePersonalAggregate(ctx context.Context, agg *model.PersonalAggregate) error
	DeletePersonalAggregate(ctx context.Context, userID, canonicalKey string) error
	GetPersonalAggregatesByUser(ctx context.Context, userID string) ([]model.PersonalAggregate, error)

	// Community ledger operations.
	GetCommunityAggregate(ctx context.Context, city, canonicalKey string) (*model.CommunityAggregate, error)
	SaveCommunityAggregate(ctx context.Context, agg *model.CommunityAggregate) error
	ListCommunityAggregates(ctx context.Context, city string) ([]model.CommunityAggregate, error)

	// Database management.
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a storage transaction. All Storage methods called
// through it see and produce uncommitted state until Commit.
type Transaction interface {
	Commit() error
	Rollback() error
	Storage
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

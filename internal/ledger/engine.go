package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ntalo/ntalo/internal/common"
	"github.com/ntalo/ntalo/internal/lexicon"
	"github.com/ntalo/ntalo/internal/merge"
	"github.com/ntalo/ntalo/internal/model"
	"github.com/ntalo/ntalo/internal/normalize"
	"github.com/ntalo/ntalo/internal/service"
)

// Engine drives receipt aggregation into the personal and community ledgers.
// Each receipt is processed inside a single storage transaction and retried
// on transient failure, so concurrent receipts touching the same canonical
// key cannot lose each other's observations.
type Engine struct {
	storage  service.Storage
	lex      *lexicon.Lexicon
	norm     *normalize.Normalizer
	canon    *normalize.Canonicalizer
	resolver *merge.Resolver
	retry    service.RetryOptions
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRetryOptions overrides the transaction retry policy.
func WithRetryOptions(opts service.RetryOptions) Option {
	return func(e *Engine) { e.retry = opts }
}

// New creates an aggregation engine over the given storage and lexicon.
func New(storage service.Storage, lex *lexicon.Lexicon, opts ...Option) *Engine {
	norm := normalize.New(lex)
	e := &Engine{
		storage:  storage,
		lex:      lex,
		norm:     norm,
		canon:    normalize.NewCanonicalizer(lex, norm),
		resolver: merge.NewResolver(norm),
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolver exposes the receipt merge resolver, for page reconciliation ahead
// of processing.
func (e *Engine) Resolver() *merge.Resolver {
	return e.resolver
}

// Lexicon exposes the lexicon the engine normalizes with.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// ProcessReceipt aggregates every valid item of a receipt into the owner's
// personal ledger and, when the receipt carries a city, the community ledger.
// Per-item failures are logged and skipped; they never abort the rest of the
// receipt. The whole update commits atomically.
func (e *Engine) ProcessReceipt(ctx context.Context, receipt *model.Receipt) error {
	if receipt == nil || receipt.UserID == "" || receipt.ID == "" {
		return common.ErrInvalidConfig
	}
	if len(receipt.Items) == 0 {
		return common.ErrEmptyReceipt
	}

	items := e.resolver.Resolve(receipt.Items)

	return common.WithRetry(ctx, func() error {
		return e.processOnce(ctx, receipt, items)
	}, e.retry)
}

func (e *Engine) processOnce(ctx context.Context, receipt *model.Receipt, items []model.RawItem) error {
	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	defer func() { _ = tx.Rollback() }()

	processed := 0
	for _, item := range items {
		err := e.aggregateItem(ctx, tx, receipt, item)
		if errors.Is(err, errInvalidItem) {
			common.LogError(err, "skipping item", common.Fields{
				"receipt": receipt.ID,
				"item":    item.Name,
			})
			continue
		}
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		processed++
	}

	if processed == 0 {
		return &common.RetryableError{Err: common.ErrNoValidItems, Retryable: false}
	}

	if err := tx.Commit(); err != nil {
		return &common.RetryableError{Err: err, Retryable: true}
	}

	common.LogInfo("receipt aggregated", common.Fields{
		"receipt": receipt.ID,
		"user":    receipt.UserID,
		"items":   processed,
	})
	return nil
}

// errInvalidItem marks per-item validation failures. Invalid items are
// skipped; any other error from aggregateItem aborts the whole receipt so
// the transaction retry can see it.
var errInvalidItem = errors.New("invalid item")

// aggregateItem updates both ledgers for one raw item.
func (e *Engine) aggregateItem(ctx context.Context, tx service.Transaction, receipt *model.Receipt, item model.RawItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: item has no name", errInvalidItem)
	}

	name, size := e.canon.CanonicalName(item.Name)
	key := canonicalKey(name, size)
	if !normalize.ValidName(key) {
		return fmt.Errorf("%w: name %q failed validity filter", errInvalidItem, item.Name)
	}

	obs := model.PriceObservation{
		StoreName:    strings.TrimSpace(receipt.StoreName),
		OriginalName: item.Name,
		Price:        item.UnitPrice,
		Currency:     e.itemCurrency(item, receipt),
		Timestamp:    receipt.Date,
		ReceiptID:    receipt.ID,
	}
	if obs.Timestamp.IsZero() {
		obs.Timestamp = e.now()
	}

	if err := e.updatePersonal(ctx, tx, receipt.UserID, key, name, obs); err != nil {
		return err
	}

	if receipt.City == "" {
		return nil
	}
	if reason := communityGateReason(item, obs); reason != "" {
		common.LogDebug("community ledger skipped", common.Fields{
			"item":   item.Name,
			"reason": reason,
		})
		return nil
	}
	return e.updateCommunity(ctx, tx, receipt, key, name, item, obs)
}

func (e *Engine) updatePersonal(ctx context.Context, tx service.Transaction, userID, key, name string, obs model.PriceObservation) error {
	agg, err := tx.GetPersonalAggregate(ctx, userID, key)
	if errors.Is(err, common.ErrNotFound) {
		agg = &model.PersonalAggregate{
			UserID:       userID,
			CanonicalKey: key,
			DisplayName:  displayName(name, key),
		}
	} else if err != nil {
		return err
	}

	agg.Observations = capObservations(append(agg.Observations, obs), PersonalObservationCap)
	agg.Stats = computeStats(agg.Observations)

	return tx.SavePersonalAggregate(ctx, agg)
}

func (e *Engine) updateCommunity(ctx context.Context, tx service.Transaction, receipt *model.Receipt, key, name string, item model.RawItem, obs model.PriceObservation) error {
	agg, err := tx.GetCommunityAggregate(ctx, receipt.City, key)
	if errors.Is(err, common.ErrNotFound) {
		agg = &model.CommunityAggregate{
			City:         receipt.City,
			CanonicalKey: key,
			DisplayName:  displayName(name, key),
			FirstSeen:    obs.Timestamp,
		}
	} else if err != nil {
		return err
	}

	obs.UserID = receipt.UserID
	agg.Observations = capObservations(append(agg.Observations, obs), CommunityObservationCap)
	agg.UserIDs = appendUnique(agg.UserIDs, receipt.UserID)
	agg.UserCount = len(agg.UserIDs)
	if agg.FirstSeen.IsZero() || obs.Timestamp.Before(agg.FirstSeen) {
		agg.FirstSeen = obs.Timestamp
	}

	agg.Stats = computeStats(agg.Observations)
	agg.PriceVolatility = priceVolatility(agg.Observations)
	agg.PriceChangePercent = priceChangePercent(agg.Observations)
	agg.StoreStats = computeStoreStats(agg.Observations)
	agg.PopularityScore = popularityScore(agg, e.now())

	display := displayName(name, key)
	if agg.Category == "" {
		if category := strings.TrimSpace(item.Category); category != "" {
			agg.Category = strings.ToLower(category)
		} else {
			agg.Category = e.lex.DetectCategory(display)
		}
	}
	if len(agg.SearchKeywords) == 0 {
		agg.SearchKeywords = e.lex.SearchKeywords(display)
	}

	return tx.SaveCommunityAggregate(ctx, agg)
}

// DeleteReceipt removes the receipt's observations from the owner's personal
// ledger. Entries whose observation list becomes empty are deleted. The
// community ledger is never touched by this path.
func (e *Engine) DeleteReceipt(ctx context.Context, userID, receiptID string) error {
	if userID == "" || receiptID == "" {
		return common.ErrInvalidConfig
	}

	return common.WithRetry(ctx, func() error {
		return e.deleteOnce(ctx, userID, receiptID)
	}, e.retry)
}

func (e *Engine) deleteOnce(ctx context.Context, userID, receiptID string) error {
	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	defer func() { _ = tx.Rollback() }()

	aggs, err := tx.GetPersonalAggregatesByUser(ctx, userID)
	if err != nil {
		return err
	}

	touched := 0
	for i := range aggs {
		agg := &aggs[i]
		kept := agg.Observations[:0]
		for _, obs := range agg.Observations {
			if obs.ReceiptID != receiptID {
				kept = append(kept, obs)
			}
		}
		if len(kept) == len(agg.Observations) {
			continue
		}
		touched++

		if len(kept) == 0 {
			if err := tx.DeletePersonalAggregate(ctx, agg.UserID, agg.CanonicalKey); err != nil {
				return err
			}
			continue
		}
		agg.Observations = kept
		agg.Stats = computeStats(agg.Observations)
		if err := tx.SavePersonalAggregate(ctx, agg); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return &common.RetryableError{Err: err, Retryable: true}
	}

	common.LogInfo("receipt observations removed", common.Fields{
		"receipt": receiptID,
		"user":    userID,
		"entries": touched,
	})
	return nil
}

// Backfill recomputes category and search keywords for every community entry
// in a city with the same detector used at write time. Existing values are
// kept unless force is set. Returns the number of entries updated; onEntry,
// when non-nil, is called once per scanned entry for progress reporting.
func (e *Engine) Backfill(ctx context.Context, city string, force bool, onEntry func()) (int, error) {
	entries, err := e.storage.ListCommunityAggregates(ctx, city)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range entries {
		if onEntry != nil {
			onEntry()
		}
		agg := &entries[i]
		display := agg.DisplayName
		if display == "" {
			display = normalize.StripSizeSuffix(agg.CanonicalKey)
		}

		changed := false
		if category := e.lex.DetectCategory(display); category != "" && (force || agg.Category == "") {
			if agg.Category != category {
				agg.Category = category
				changed = true
			}
		}
		if keywords := e.lex.SearchKeywords(display); len(keywords) > 0 && (force || len(agg.SearchKeywords) == 0) {
			if !equalStrings(agg.SearchKeywords, keywords) {
				agg.SearchKeywords = keywords
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := e.storage.SaveCommunityAggregate(ctx, agg); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// communityGateReason returns a non-empty reason when an item must not enter
// the community ledger: non-positive or non-finite price, or unknown-sentinel
// item/store names. The gate is a silent skip, not an error.
func communityGateReason(item model.RawItem, obs model.PriceObservation) string {
	if item.UnitPrice <= 0 {
		return "non-positive price"
	}
	if math.IsNaN(item.UnitPrice) || math.IsInf(item.UnitPrice, 0) {
		return "non-finite price"
	}
	if model.IsUnknownName(item.Name) {
		return "unknown item name"
	}
	if obs.StoreName != "" && model.IsUnknownName(obs.StoreName) {
		return "unknown store name"
	}
	return ""
}

func (e *Engine) itemCurrency(item model.RawItem, receipt *model.Receipt) string {
	if item.Currency != "" {
		return item.Currency
	}
	return receipt.Currency
}

// canonicalKey joins a canonical name and size suffix into the final key.
func canonicalKey(name, size string) string {
	key := strings.ReplaceAll(name, " ", "")
	switch {
	case key == "":
		return size
	case size == "":
		return key
	default:
		return key + "_" + size
	}
}

// displayName keeps the spaced canonical name where available, falling back
// to the key.
func displayName(name, key string) string {
	if name != "" {
		return name
	}
	return key
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Package search ranks community ledger entries against free-text queries.
package search

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ntalo/ntalo/internal/common"
	"github.com/ntalo/ntalo/internal/model"
	"github.com/ntalo/ntalo/internal/normalize"
	"github.com/ntalo/ntalo/internal/service"
)

// Relevance scoring weights. An entry with no relevance signal at all scores
// zero and is excluded: popularity and recency never promote an otherwise
// irrelevant item.
const (
	exactMatchScore  = 100.0
	prefixMatchScore = 50.0
	substringScore   = 25.0
	keywordScore     = 30.0
	categoryScore    = 15.0
	fuzzyWeight      = 20.0
	wordOverlapScore = 10.0

	fuzzyThreshold = 0.7
	minFuzzyLength = 4
	minQueryLength = 2

	recencyBoostMax  = 5.0
	recencyDecayDays = 50.0
)

// Ranker scores and paginates community entries for a query.
type Ranker struct {
	storage service.Storage
	now     func() time.Time
}

// NewRanker creates a ranker reading from the given storage.
func NewRanker(storage service.Storage) *Ranker {
	return &Ranker{storage: storage, now: time.Now}
}

// WithClock overrides the ranker's time source, for tests.
func (r *Ranker) WithClock(now func() time.Time) *Ranker {
	r.now = now
	return r
}

// Search returns the ranked, paginated community entries of a city matching
// the query. Queries shorter than two characters return an empty result
// without scanning. Internal failures are logged and produce an empty result
// rather than an error, so a ranking bug never blocks the caller.
func (r *Ranker) Search(ctx context.Context, city, query string, page, pageSize int) model.SearchResult {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength || city == "" {
		return model.SearchResult{Items: []model.RankedItem{}}
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if page < 0 {
		page = 0
	}

	entries, err := r.storage.ListCommunityAggregates(ctx, city)
	if err != nil {
		common.LogError(err, "search failed, returning empty result", common.Fields{
			"city":  city,
			"query": query,
		})
		return model.SearchResult{Items: []model.RankedItem{}}
	}

	ranked := Rank(entries, query, r.now())

	total := len(ranked)
	start := page * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return model.SearchResult{
		Items:   ranked[start:end],
		Total:   total,
		HasMore: end < total,
	}
}

// Rank scores all entries against the query and returns the relevant ones in
// descending score order. Exported so callers with an in-memory entry set can
// rank without storage.
func Rank(entries []model.CommunityAggregate, query string, now time.Time) []model.RankedItem {
	q := normalizeQuery(query)
	if q == "" {
		return []model.RankedItem{}
	}
	qWords := strings.Fields(q)

	ranked := make([]model.RankedItem, 0, len(entries))
	for _, entry := range entries {
		relevance := relevanceScore(entry, q, qWords)
		if relevance <= 0 {
			continue
		}
		score := relevance + boostScore(entry, now)
		ranked = append(ranked, model.RankedItem{Entry: entry, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Entry.CanonicalKey < ranked[j].Entry.CanonicalKey
	})
	return ranked
}

// relevanceScore sums the pure text-match signals for one entry.
func relevanceScore(entry model.CommunityAggregate, q string, qWords []string) float64 {
	name := normalizeQuery(entry.DisplayName)
	if name == "" {
		name = normalizeQuery(normalize.StripSizeSuffix(entry.CanonicalKey))
	}

	score := 0.0
	switch {
	case name == q:
		score += exactMatchScore
	case strings.HasPrefix(name, q):
		score += prefixMatchScore
	case strings.Contains(name, q):
		score += substringScore
	}

	for _, kw := range entry.SearchKeywords {
		if strings.Contains(normalizeQuery(kw), q) {
			score += keywordScore
			break
		}
	}

	if entry.Category != "" && strings.Contains(normalizeQuery(entry.Category), q) {
		score += categoryScore
	}

	if len(q) >= minFuzzyLength && len(name) >= minFuzzyLength {
		if sim := normalize.Similarity(q, name); sim > fuzzyThreshold {
			score += sim * fuzzyWeight
		}
	}

	nameWords := strings.Fields(name)
	for _, qw := range qWords {
		for _, nw := range nameWords {
			if qw == nw {
				score += wordOverlapScore
				break
			}
		}
	}

	return score
}

// boostScore adds the popularity, recency and trust boosts for entries that
// already passed the relevance gate.
func boostScore(entry model.CommunityAggregate, now time.Time) float64 {
	boost := math.Log1p(float64(entry.Stats.TotalPurchases)) * 2

	if !entry.Stats.LastPurchaseDate.IsZero() {
		days := now.Sub(entry.Stats.LastPurchaseDate).Hours() / 24
		if days < 0 {
			days = 0
		}
		boost += recencyBoostMax * math.Exp(-days/recencyDecayDays)
	}

	boost += math.Log1p(float64(entry.UserCount))

	return boost
}

// normalizeQuery lowercases and strips diacritics so queries match the
// normalized names stored in the ledger.
func normalizeQuery(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return normalize.StripDiacritics(s)
}

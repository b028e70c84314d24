// Package ledger implements the dual-ledger aggregation engine: every valid
// receipt item updates the owner's personal ledger and, when permitted, the
// city's community ledger.
package ledger

import (
	"math"
	"sort"
	"time"

	"github.com/ntalo/ntalo/internal/model"
)

// Observation retention caps. Statistics are derived from the retained list
// only, so the caps bound both storage and recompute cost.
const (
	PersonalObservationCap  = 50
	CommunityObservationCap = 100
)

// recencyHalfLifeDays controls the popularity decay: an entry last purchased
// ~50 days ago has essentially no recency weight left.
const recencyHalfLifeDays = 50.0

// computeStats fully recomputes price statistics from a retained observation
// list. It is never incremental: recomputing from scratch avoids drift when
// observations are evicted or deleted.
func computeStats(observations []model.PriceObservation) model.PriceStats {
	stats := model.PriceStats{TotalPurchases: len(observations)}
	if len(observations) == 0 {
		return stats
	}

	stores := make(map[string]struct{})
	currencies := make(map[string]int)
	currencyOrder := make([]string, 0, 4)
	sum := 0.0
	stats.MinPrice = observations[0].Price
	stats.MaxPrice = observations[0].Price

	for _, obs := range observations {
		if obs.Price < stats.MinPrice {
			stats.MinPrice = obs.Price
		}
		if obs.Price > stats.MaxPrice {
			stats.MaxPrice = obs.Price
		}
		sum += obs.Price
		if obs.StoreName != "" {
			stores[obs.StoreName] = struct{}{}
		}
		if obs.Currency != "" {
			if _, seen := currencies[obs.Currency]; !seen {
				currencyOrder = append(currencyOrder, obs.Currency)
			}
			currencies[obs.Currency]++
		}
		if obs.Timestamp.After(stats.LastPurchaseDate) {
			stats.LastPurchaseDate = obs.Timestamp
		}
	}

	stats.AvgPrice = sum / float64(len(observations))
	stats.StoreCount = len(stores)

	// Most frequent currency wins; ties go to the earlier one in list order.
	best := -1
	for _, currency := range currencyOrder {
		if currencies[currency] > best {
			best = currencies[currency]
			stats.PrimaryCurrency = currency
		}
	}

	return stats
}

// priceVolatility is the coefficient of variation of the retained prices.
func priceVolatility(observations []model.PriceObservation) float64 {
	if len(observations) < 2 {
		return 0
	}
	mean := 0.0
	for _, obs := range observations {
		mean += obs.Price
	}
	mean /= float64(len(observations))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, obs := range observations {
		d := obs.Price - mean
		variance += d * d
	}
	variance /= float64(len(observations))

	return math.Sqrt(variance) / mean
}

// priceChangePercent compares the oldest and newest retained observations.
func priceChangePercent(observations []model.PriceObservation) float64 {
	if len(observations) < 2 {
		return 0
	}
	oldest := observations[0]
	newest := observations[0]
	for _, obs := range observations[1:] {
		if obs.Timestamp.Before(oldest.Timestamp) {
			oldest = obs
		}
		if obs.Timestamp.After(newest.Timestamp) {
			newest = obs
		}
	}
	if oldest.Price == 0 {
		return 0
	}
	return (newest.Price - oldest.Price) / oldest.Price * 100
}

// computeStoreStats builds the per-store sub-aggregates of a community entry.
func computeStoreStats(observations []model.PriceObservation) map[string]model.StoreStats {
	stats := make(map[string]model.StoreStats)
	sums := make(map[string]float64)

	for _, obs := range observations {
		if obs.StoreName == "" {
			continue
		}
		entry, exists := stats[obs.StoreName]
		if !exists {
			entry = model.StoreStats{MinPrice: obs.Price, MaxPrice: obs.Price}
		}
		if obs.Price < entry.MinPrice {
			entry.MinPrice = obs.Price
		}
		if obs.Price > entry.MaxPrice {
			entry.MaxPrice = obs.Price
		}
		if obs.Timestamp.After(entry.LastSeen) {
			entry.LastSeen = obs.Timestamp
		}
		entry.Count++
		sums[obs.StoreName] += obs.Price
		stats[obs.StoreName] = entry
	}

	for store, entry := range stats {
		entry.AvgPrice = sums[store] / float64(entry.Count)
		stats[store] = entry
	}
	return stats
}

// popularityScore combines distinct-user count, weekly purchase rate and a
// recency decay into one ranking signal.
func popularityScore(agg *model.CommunityAggregate, now time.Time) float64 {
	users := math.Log1p(float64(agg.UserCount)) * 3

	weekly := 0.0
	if !agg.FirstSeen.IsZero() {
		weeks := now.Sub(agg.FirstSeen).Hours() / (24 * 7)
		if weeks < 1 {
			weeks = 1
		}
		weekly = float64(agg.Stats.TotalPurchases) / weeks * 2
	}

	recency := 0.0
	if !agg.Stats.LastPurchaseDate.IsZero() {
		days := now.Sub(agg.Stats.LastPurchaseDate).Hours() / 24
		if days < 0 {
			days = 0
		}
		recency = 5 * math.Exp(-days/recencyHalfLifeDays)
	}

	return users + weekly + recency
}

// capObservations keeps only the most recent n observations by timestamp,
// preserving insertion order among the survivors.
func capObservations(observations []model.PriceObservation, n int) []model.PriceObservation {
	if len(observations) <= n {
		return observations
	}

	// Find the cutoff by selecting the n latest timestamps.
	cutoffs := make([]time.Time, len(observations))
	for i, obs := range observations {
		cutoffs[i] = obs.Timestamp
	}
	sort.Slice(cutoffs, func(i, j int) bool { return cutoffs[i].Before(cutoffs[j]) })
	cutoff := cutoffs[len(cutoffs)-n]

	kept := make([]model.PriceObservation, 0, n)
	// Older duplicates of the cutoff timestamp may push us over n; drop from
	// the front since earlier entries are older arrivals.
	for _, obs := range observations {
		if !obs.Timestamp.Before(cutoff) {
			kept = append(kept, obs)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return kept
}

// Package stats collects and formats search statistics.
package stats

import (
	"sync/atomic"
	"time"

	"github.com/Veraticus/rkmatch/pkg/matcher"
)

// Collector records the outcome of every search.
type Collector interface {
	RecordSearch(res matcher.Result, err error)
}

// NoopCollector discards everything.
type NoopCollector struct{}

// RecordSearch implements Collector.
func (NoopCollector) RecordSearch(matcher.Result, error) {}

// BasicCollector accumulates totals in memory. It is safe for concurrent use.
type BasicCollector struct {
	Searches                atomic.Int64
	Errors                  atomic.Int64
	Matches                 atomic.Int64
	Characters              atomic.Int64
	HashComparisons         atomic.Int64
	VerificationComparisons atomic.Int64
	SpuriousHits            atomic.Int64
	TotalNanos              atomic.Int64
}

// Ensure BasicCollector implements Collector
var _ Collector = (*BasicCollector)(nil)

// RecordSearch implements Collector.
func (b *BasicCollector) RecordSearch(res matcher.Result, err error) {
	b.Searches.Add(1)
	if err != nil {
		b.Errors.Add(1)
		return
	}
	b.Matches.Add(int64(len(res.Offsets)))
	b.Characters.Add(int64(res.TextLength))
	b.HashComparisons.Add(int64(res.HashComparisons))
	b.VerificationComparisons.Add(int64(res.VerificationComparisons))
	b.SpuriousHits.Add(int64(res.SpuriousHits))
	b.TotalNanos.Add(res.Elapsed.Nanoseconds())
}

// Snapshot is a point-in-time copy of the collected totals.
type Snapshot struct {
	Searches                int64
	Errors                  int64
	Matches                 int64
	Characters              int64
	HashComparisons         int64
	VerificationComparisons int64
	SpuriousHits            int64
	Elapsed                 time.Duration
}

// Snapshot returns the current totals.
func (b *BasicCollector) Snapshot() Snapshot {
	return Snapshot{
		Searches:                b.Searches.Load(),
		Errors:                  b.Errors.Load(),
		Matches:                 b.Matches.Load(),
		Characters:              b.Characters.Load(),
		HashComparisons:         b.HashComparisons.Load(),
		VerificationComparisons: b.VerificationComparisons.Load(),
		SpuriousHits:            b.SpuriousHits.Load(),
		Elapsed:                 time.Duration(b.TotalNanos.Load()),
	}
}

// CollisionRate is the share of hash agreements that failed verification.
func (s Snapshot) CollisionRate() float64 {
	candidates := s.Matches + s.SpuriousHits
	if candidates == 0 {
		return 0
	}
	return float64(s.SpuriousHits) / float64(candidates)
}

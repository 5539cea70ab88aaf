// Package cache layers the recency semantics on top of the journal: touch
// (append, most recent wins), the "K most recent distinct entries" query,
// and the compaction policy that keeps the log file bounded.
package cache

import (
	"unicode/utf8"

	"github.com/nwtnni/goldfish/internal/journal"
)

// Cache wraps one open journal together with the policy knobs.
type Cache struct {
	log       *journal.Log
	threshold int64
}

// New wraps log. threshold is the number of stale bytes a query may leave
// behind before it rewrites the file.
func New(log *journal.Log, threshold int64) *Cache {
	return &Cache{log: log, threshold: threshold}
}

// Touch appends the given entries in order and makes them durable with a
// single sync.
func (c *Cache) Touch(entries ...string) error {
	for _, entry := range entries {
		if err := c.log.Append([]byte(entry)); err != nil {
			return err
		}
	}

	return c.log.Sync()
}

// MostRecent returns up to k distinct entries, most recent first. An
// entry's rank is decided by its newest occurrence. Records that are not
// valid UTF-8 are consumed and skipped; one bad record never fails the
// query.
//
// When the walk leaves more than the configured threshold of stale bytes
// behind (records older than the returned window), the log is compacted
// down to exactly the returned entries before MostRecent returns.
func (c *Cache) MostRecent(k int) ([]string, error) {
	recent, stale, err := c.walk(k)
	if err != nil {
		return nil, err
	}

	if stale > c.threshold {
		if err := c.rewrite(recent); err != nil {
			return nil, err
		}
	}

	return recent, nil
}

// Prune rewrites the log to hold only the n most recent distinct entries,
// regardless of the compaction threshold. n <= 0 empties the cache.
func (c *Cache) Prune(n int) error {
	if n <= 0 {
		if err := c.log.Clear(); err != nil {
			return err
		}

		return c.log.Sync()
	}

	recent, _, err := c.walk(n)
	if err != nil {
		return err
	}

	return c.rewrite(recent)
}

// walk runs the backward dedup scan: up to k distinct valid entries, most
// recent first, plus the cursor's final position (the stale byte count).
func (c *Cache) walk(k int) ([]string, int64, error) {
	cur := c.log.ReverseCursor()
	seen := newHashedSet()

	var recent []string

	for len(recent) < k && cur.Prev() {
		raw := cur.Bytes()
		if !utf8.Valid(raw) {
			continue
		}

		if entry, added := seen.add(raw); added {
			recent = append(recent, entry)
		}
	}

	if err := cur.Err(); err != nil {
		return nil, 0, err
	}

	return recent, cur.Position(), nil
}

// rewrite replaces the log's contents with the given most-recent-first
// entries, re-appended in chronological order.
//
// Clear-then-repopulate is not crash-atomic: a crash between the truncate
// and the sync can lose entries. The cache is disposable data.
func (c *Cache) rewrite(recentFirst []string) error {
	if err := c.log.Clear(); err != nil {
		return err
	}

	for i := len(recentFirst) - 1; i >= 0; i-- {
		if err := c.log.Append([]byte(recentFirst[i])); err != nil {
			return err
		}
	}

	return c.log.Sync()
}

package source

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"pricecheck-service/internal/fileio"
)

// Fetcher is the uncached fetch.
type Fetcher interface {
	Fetch(ctx context.Context, datasetID, sheet string) (*fileio.Table, error)
}

type cacheKey struct {
	datasetID string
	sheet     string
}

func (k cacheKey) String() string { return k.datasetID + "\x00" + k.sheet }

type cacheEntry struct {
	table     *fileio.Table
	fetchedAt time.Time
}

// Cache memoizes fetched tables per (dataset, sheet) for ttl. Cached tables are shared
// between callers and must be treated as read-only. Failures are not cached.
type Cache struct {
	next    Fetcher
	ttl     time.Duration
	entries *expirable.LRU[cacheKey, cacheEntry]
	group   singleflight.Group
	now     func() time.Time
	log     zerolog.Logger
}

func NewCache(next Fetcher, size int, ttl time.Duration, logger zerolog.Logger) *Cache {
	if size <= 0 {
		size = 16
	}
	return &Cache{
		next:    next,
		ttl:     ttl,
		entries: expirable.NewLRU[cacheKey, cacheEntry](size, nil, ttl),
		now:     time.Now,
		log:     logger,
	}
}

func (c *Cache) Fetch(ctx context.Context, datasetID, sheet string) (*fileio.Table, error) {
	key := cacheKey{datasetID: datasetID, sheet: sheet}
	if e, ok := c.entries.Get(key); ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.log.Debug().Str("dataset", datasetID).Str("sheet", sheet).Time("fetched_at", e.fetchedAt).Msg("cache hit")
		return e.table, nil
	}

	// the fetch is shared by every waiting caller, so one caller going away must not cancel it
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key.String(), func() (any, error) {
		tbl, err := c.next.Fetch(fetchCtx, datasetID, sheet)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, cacheEntry{table: tbl, fetchedAt: c.now()})
		return tbl, nil
	})
	if err != nil {
		c.log.Error().Err(err).Str("dataset", datasetID).Str("sheet", sheet).Msg("fetch failed")
		return nil, err
	}
	if shared {
		c.log.Debug().Str("dataset", datasetID).Msg("fetch shared with concurrent caller")
	}
	return v.(*fileio.Table), nil
}

// Invalidate drops every cached table.
func (c *Cache) Invalidate() { c.entries.Purge() }

func (c *Cache) Len() int { return c.entries.Len() }

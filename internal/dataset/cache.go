// Package dataset holds the in-memory price table, fetched once per process.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/couchcryptid/market-prices-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Source fetches every row of the price table.
type Source interface {
	Fetch(ctx context.Context) ([]domain.PriceRecord, error)
}

// Dataset is the loaded price table. It is read-only once published.
type Dataset struct {
	Records  []domain.PriceRecord
	Options  domain.Options
	LoadedAt time.Time
}

// Cache wraps a Source and fetches from it at most once successfully. There
// is no eviction and no TTL. A failed fetch is not cached.
type Cache struct {
	source  Source
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	// sem admits one fetch at a time. Waiters select on it with their own
	// context so a cancelled request stops waiting.
	sem     chan struct{}
	dataset atomic.Pointer[Dataset]
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the time source used for LoadedAt and load duration.
func WithClock(c clockwork.Clock) Option {
	return func(cache *Cache) { cache.clock = c }
}

// NewCache creates a memoizing loader around source.
func NewCache(source Source, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Cache {
	c := &Cache{
		source:  source,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
		metrics: metrics,
		sem:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the dataset, fetching it on first use. Concurrent callers
// wait for a single fetch, or return ctx.Err() if ctx ends first.
func (c *Cache) Load(ctx context.Context) (*Dataset, error) {
	if ds := c.dataset.Load(); ds != nil {
		return ds, nil
	}

	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-c.sem }()

	if ds := c.dataset.Load(); ds != nil {
		return ds, nil
	}

	start := c.clock.Now()
	records, err := c.source.Fetch(ctx)
	if err != nil {
		c.metrics.DatasetLoadErrors.WithLabelValues(errorKind(err)).Inc()
		c.logger.Error("dataset load failed", "error", err, "kind", errorKind(err))
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	domain.NormalizeRecords(records)
	ds := &Dataset{
		Records:  records,
		Options:  domain.DistinctOptions(records),
		LoadedAt: c.clock.Now(),
	}

	c.metrics.DatasetLoadDuration.Observe(c.clock.Since(start).Seconds())
	c.metrics.DatasetRows.Set(float64(len(records)))
	c.logger.Info("dataset loaded",
		"rows", len(records),
		"commodities", len(ds.Options.Commodities),
		"duration", c.clock.Since(start),
	)

	c.dataset.Store(ds)
	return ds, nil
}

// Loaded reports whether the dataset has been fetched.
func (c *Cache) Loaded() bool {
	return c.dataset.Load() != nil
}

// CheckReadiness returns nil once the dataset is in memory.
func (c *Cache) CheckReadiness(_ context.Context) error {
	if !c.Loaded() {
		return errors.New("price dataset has not been loaded yet")
	}
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrConnection):
		return "connection"
	case errors.Is(err, domain.ErrSchema):
		return "schema"
	default:
		return "other"
	}
}

package dashboard

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/market-prices-dashboard/internal/dataset"
	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/couchcryptid/market-prices-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Loader returns the in-memory price table.
type Loader interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// QueryEvent records one selection and what it produced.
type QueryEvent struct {
	Selection    Selection `json:"selection"`
	ResultRows   int       `json:"result_rows"`
	MappableRows int       `json:"mappable_rows"`
	MapShown     bool      `json:"map_shown"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher sends query events somewhere for later analysis.
type Publisher interface {
	Publish(ctx context.Context, event QueryEvent) error
}

// Service runs the filter and geo-join pipeline for each request.
type Service struct {
	loader    Loader
	locator   domain.Locator
	match     domain.MatchOptions
	publisher Publisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sends a QueryEvent for every successful query.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMatchOptions overrides the per-field case folding.
func WithMatchOptions(m domain.MatchOptions) Option {
	return func(s *Service) { s.match = m }
}

// WithClock sets the time source for event timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// NewService creates a Service. Query events are only sent with WithPublisher.
func NewService(loader Loader, locator domain.Locator, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		loader:  loader,
		locator: locator,
		match:   domain.DefaultMatchOptions(),
		clock:   clockwork.NewRealClock(),
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is a rendered view plus the dataset it was built from.
type Result struct {
	View
	Options  OptionLists `json:"options"`
	LoadedAt time.Time   `json:"loaded_at"`
}

// Query loads the dataset (first call only) and builds the view for c.
func (s *Service) Query(ctx context.Context, c domain.Criteria) (Result, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		s.metrics.Queries.WithLabelValues("error").Inc()
		return Result{}, err
	}

	lists := NewOptionLists(ds.Options)
	v := Build(ds.Records, c, s.locator, s.match)
	v.Selection = canonicalSelection(v.Selection, lists, s.match)
	s.record(v)
	s.publish(ctx, v)

	return Result{
		View:     v,
		Options:  lists,
		LoadedAt: ds.LoadedAt,
	}, nil
}

// canonicalSelection swaps a case-folded selection for the stored spelling,
// so "june" is echoed as the "June" option it matched.
func canonicalSelection(sel Selection, lists OptionLists, match domain.MatchOptions) Selection {
	if match.CommodityFoldCase {
		sel.Commodity = canonicalLabel(sel.Commodity, lists.Commodities)
	}
	if match.MonthFoldCase {
		sel.Month = canonicalLabel(sel.Month, lists.Months)
	}
	return sel
}

func canonicalLabel(label string, options []string) string {
	for _, o := range options {
		if strings.EqualFold(o, label) {
			return o
		}
	}
	return label
}

// Options returns the selectable values for each control.
func (s *Service) Options(ctx context.Context) (OptionLists, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return OptionLists{}, err
	}
	return NewOptionLists(ds.Options), nil
}

func (s *Service) record(v View) {
	outcome := "ok"
	if v.Empty() {
		outcome = "empty"
	}
	s.metrics.Queries.WithLabelValues(outcome).Inc()
	s.metrics.ResultRows.Observe(float64(len(v.Rows)))
	s.metrics.GeoLookups.WithLabelValues("hit").Add(float64(len(v.Markers)))
	s.metrics.GeoLookups.WithLabelValues("miss").Add(float64(v.Unmapped))

	if v.Empty() {
		return
	}
	state := "suppressed"
	if v.ShowMap {
		state = "shown"
	}
	s.metrics.MapRenders.WithLabelValues(state).Inc()
}

// publish sends the query event. Failures are logged and never reach the user.
func (s *Service) publish(ctx context.Context, v View) {
	if s.publisher == nil {
		return
	}
	event := QueryEvent{
		Selection:    v.Selection,
		ResultRows:   len(v.Rows),
		MappableRows: len(v.Markers),
		MapShown:     v.ShowMap,
		OccurredAt:   s.clock.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("publish query event failed", "error", err)
		return
	}
	s.metrics.EventsPublished.WithLabelValues("success").Inc()
}

// CountInvalid records a query rejected before reaching the pipeline.
func (s *Service) CountInvalid() {
	s.metrics.Queries.WithLabelValues("invalid").Inc()
}

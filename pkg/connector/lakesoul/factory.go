// Package lakesoul implements the LakeSoul table connector factory. It turns a
// host table definition and session into the descriptors LakeSoul readers and
// writers are built from.
package lakesoul

import (
	"context"
	"strings"

	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
	"github.com/ajitpratap0/lakesoul-connector/pkg/filter"
	"github.com/ajitpratap0/lakesoul-connector/pkg/logger"
	"github.com/ajitpratap0/lakesoul-connector/pkg/metrics"
	"github.com/ajitpratap0/lakesoul-connector/pkg/observability"
	"github.com/ajitpratap0/lakesoul-connector/pkg/storage"
)

// Identifier selects this factory in the connector option
const Identifier = "lakesoul"

var (
	_ core.SinkFactory   = (*Factory)(nil)
	_ core.SourceFactory = (*Factory)(nil)
)

// Factory resolves LakeSoul sink and source descriptors. It holds no mutable
// state besides the optional cache and is safe for concurrent use.
type Factory struct {
	defaults config.Options
	logger   *zap.Logger
	cache    *DescriptorCache
	metrics  *metrics.Collector
}

// Option configures a Factory
type Option func(*Factory)

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(f *Factory) { f.logger = l }
}

// WithCache enables descriptor caching
func WithCache(c *DescriptorCache) Option {
	return func(f *Factory) { f.cache = c }
}

// WithMetrics sets the metrics collector. metrics.Default is used otherwise.
func WithMetrics(c *metrics.Collector) Option {
	return func(f *Factory) { f.metrics = c }
}

// NewFactory creates a factory. defaults are the process-wide options, copied
// on entry and never modified.
func NewFactory(defaults config.Options, opts ...Option) *Factory {
	f := &Factory{defaults: defaults.Clone()}
	for _, opt := range opts {
		opt(f)
	}
	if f.metrics == nil {
		f.metrics = metrics.Default()
	}
	return f
}

// Identifier returns "lakesoul"
func (f *Factory) Identifier() string {
	return Identifier
}

// RequiredOptions returns the storage location and data format keys
func (f *Factory) RequiredOptions() []string {
	return []string{config.KeyCatalogPath, config.KeyFormat}
}

// OptionalOptions returns no keys. Unknown keys still reach the descriptors.
func (f *Factory) OptionalOptions() []string {
	return []string{}
}

// CreateSink resolves the descriptor a writer needs for the table in c
func (f *Factory) CreateSink(ctx context.Context, c core.Context) (desc *core.SinkDescriptor, err error) {
	id := c.ObjectIdentifier()
	ctx = withResolution(ctx, id, metrics.DirectionSink)
	ctx, span := observability.StartSpan(ctx, "lakesoul.CreateSink",
		observability.AttrConnector.String(Identifier),
		observability.AttrTable.String(id.SummaryString()),
		observability.AttrDirection.String(metrics.DirectionSink),
	)
	timer := metrics.NewTimer()
	log := f.log(ctx)
	defer func() {
		f.finish(log, metrics.DirectionSink, timer, err)
		observability.EndSpan(span, err)
	}()

	effective, table, err := f.prepare(c, log)
	if err != nil {
		return nil, err
	}

	key := cacheKey{Direction: metrics.DirectionSink, Identifier: id, Options: effective, Table: table}
	cached, fp := f.lookup(key, log, span)
	if cached != nil {
		return cached.(*core.SinkDescriptor).Clone(), nil
	}

	s3, err := storage.S3SettingsFrom(effective)
	if err != nil {
		return nil, err
	}

	desc = BuildSinkDescriptor(
		id,
		effective,
		PhysicalSchema(table),
		PrimaryKeyColumns(table),
		PartitionColumns(table),
		table,
		s3,
	)
	if fp != nil {
		f.cache.put(*fp, desc.Clone())
	}
	return desc, nil
}

// CreateSource resolves the descriptor a reader needs for the table in c. The
// session runtime mode decides whether the read is bounded; AUTOMATIC is
// rejected with an execution mode error.
func (f *Factory) CreateSource(ctx context.Context, c core.Context) (desc *core.SourceDescriptor, err error) {
	id := c.ObjectIdentifier()
	ctx = withResolution(ctx, id, metrics.DirectionSource)
	ctx, span := observability.StartSpan(ctx, "lakesoul.CreateSource",
		observability.AttrConnector.String(Identifier),
		observability.AttrTable.String(id.SummaryString()),
		observability.AttrDirection.String(metrics.DirectionSource),
	)
	timer := metrics.NewTimer()
	log := f.log(ctx)
	defer func() {
		f.finish(log, metrics.DirectionSource, timer, err)
		observability.EndSpan(span, err)
	}()

	effective, table, err := f.prepare(c, log)
	if err != nil {
		return nil, err
	}

	mode, err := core.RuntimeModeFrom(c.Configuration())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(observability.AttrRuntimeMode.String(string(mode)))
	boundedness, err := core.ResolveMode(mode)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(observability.AttrBoundedness.String(string(boundedness)))

	key := cacheKey{
		Direction:   metrics.DirectionSource,
		Identifier:  id,
		Options:     effective,
		Table:       table,
		Boundedness: boundedness,
	}
	cached, fp := f.lookup(key, log, span)
	if cached != nil {
		return cached.(*core.SourceDescriptor).Clone(), nil
	}

	row := SourceRowType(table)
	expr, err := sourceFilter(effective, row)
	if err != nil {
		return nil, err
	}

	s3, err := storage.S3SettingsFrom(effective)
	if err != nil {
		return nil, err
	}

	desc = BuildSourceDescriptor(
		id.TableID(),
		row,
		boundedness,
		PrimaryKeyColumns(table),
		PartitionColumns(table),
		table,
		effective.ToMap(),
		expr,
		s3,
	)
	if fp != nil {
		f.cache.put(*fp, desc.Clone())
	}
	return desc, nil
}

// prepare runs the steps shared by both directions: required options, the
// effective configuration and the table definition check.
func (f *Factory) prepare(c core.Context, log *zap.Logger) (config.Options, *catalog.ResolvedTable, error) {
	statement := c.StatementOptions()
	if err := core.ValidateRequiredOptions(f, statement); err != nil {
		return nil, nil, err
	}

	if err := c.ObjectIdentifier().Validate(); err != nil {
		return nil, nil, err
	}

	session, err := config.SessionOverrides(c.Configuration())
	if err != nil {
		return nil, nil, err
	}
	effective := config.Merge(f.defaults, session, statement)
	log.Debug("effective configuration", zap.Any("options", effective.Redacted()))

	table := c.CatalogTable()
	if table == nil {
		return nil, nil, errors.New(errors.ErrorTypeValidation, "catalog table is missing")
	}
	if err := table.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeValidation, "malformed table definition").
			WithDetail("table", c.ObjectIdentifier().SummaryString())
	}

	return effective, table, nil
}

// sourceFilter parses the optional source.filter option and checks that it
// only references columns of the produced row, nested ROW fields included.
func sourceFilter(effective config.Options, row catalog.RowType) (filter.Expr, error) {
	raw, ok := effective.Get(config.KeySourceFilter)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	expr, err := filter.Parse(raw)
	if err != nil {
		return nil, err
	}
	for _, col := range filter.Columns(expr) {
		if _, ok := row.FieldPath(col); !ok {
			return nil, errors.New(errors.ErrorTypeValidation, "filter references an unknown column").
				WithDetail("column", col).
				WithDetail("key", config.KeySourceFilter)
		}
	}
	return expr, nil
}

// lookup consults the cache. A non-nil fingerprint is returned on a miss so
// that the caller can store a copy of the descriptor it builds. Hits are
// returned to callers as copies too.
func (f *Factory) lookup(key cacheKey, log *zap.Logger, span trace.Span) (interface{}, *xxh3.Uint128) {
	if f.cache == nil {
		return nil, nil
	}

	fp, err := key.fingerprint()
	if err != nil {
		log.Warn("descriptor cache bypassed", zap.Error(err))
		return nil, nil
	}

	v, hit := f.cache.get(fp)
	f.metrics.ObserveCache(hit)
	span.SetAttributes(observability.AttrCacheHit.Bool(hit))
	if hit {
		return v, nil
	}
	return nil, &fp
}

func (f *Factory) log(ctx context.Context) *zap.Logger {
	base := f.logger
	if base == nil {
		base = logger.Get()
	}
	return base.With(logger.Fields(ctx)...)
}

func (f *Factory) finish(log *zap.Logger, direction string, timer *metrics.Timer, err error) {
	elapsed := timer.Stop()
	f.metrics.ObserveResolution(direction, metrics.StatusOf(err), elapsed)
	if err != nil {
		log.Warn("descriptor resolution rejected", zap.Error(err), zap.Duration("elapsed", elapsed))
		return
	}
	log.Debug("descriptor resolved", zap.Duration("elapsed", elapsed))
}

func withResolution(ctx context.Context, id catalog.ObjectIdentifier, direction string) context.Context {
	ctx = context.WithValue(ctx, logger.TableKey, id.SummaryString())
	return context.WithValue(ctx, logger.DirectionKey, direction)
}

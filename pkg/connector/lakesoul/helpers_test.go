package lakesoul

import (
	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/metrics"
)

func plainTable() *catalog.ResolvedTable {
	return &catalog.ResolvedTable{
		Columns: []catalog.Column{
			{Name: "id", Type: catalog.BigInt().NotNull()},
			{Name: "name", Type: catalog.String()},
		},
	}
}

func keyedTable() *catalog.ResolvedTable {
	return &catalog.ResolvedTable{
		Columns: []catalog.Column{
			{Name: "region", Type: catalog.String().NotNull()},
			{Name: "order_id", Type: catalog.BigInt().NotNull()},
			{Name: "amount", Type: catalog.Decimal(12, 2)},
			{Name: "amount_x2", Type: catalog.Decimal(13, 2), Kind: catalog.ColumnComputed, Expression: "amount * 2"},
			{Name: "row_kind", Type: catalog.String(), Kind: catalog.ColumnMetadata, MetadataKey: "rowKinds", Virtual: true},
		},
		PrimaryKey:    &catalog.UniqueConstraint{Name: "pk", Columns: []string{"order_id", "region"}},
		PartitionKeys: []string{"region"},
	}
}

func testContext(table *catalog.ResolvedTable, statement, session config.Options) *core.StaticContext {
	return &core.StaticContext{
		Identifier: catalog.ObjectIdentifier{Catalog: "lakesoul", Database: "default", Object: "t1"},
		Table:      table,
		Statement:  statement,
		Session:    session,
	}
}

func scenarioStatement() config.Options {
	return config.Options{config.KeyCatalogPath: "/lake/t1", config.KeyFormat: "parquet"}
}

func newTestFactory(defaults config.Options, opts ...Option) (*Factory, *metrics.Collector) {
	collector := metrics.NewCollector()
	opts = append([]Option{WithMetrics(collector)}, opts...)
	return NewFactory(defaults, opts...), collector
}

package lakesoul

import (
	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/filter"
	"github.com/ajitpratap0/lakesoul-connector/pkg/storage"
)

// PhysicalSchema returns the columns a writer stores, in declared order with
// declared nullability. Computed and metadata columns are left out.
func PhysicalSchema(t *catalog.ResolvedTable) catalog.RowType {
	return t.PhysicalRowType()
}

// SourceRowType returns the row a reader produces. The row itself is never
// null; each column keeps its own nullability.
func SourceRowType(t *catalog.ResolvedTable) catalog.RowType {
	return t.SourceRowType().NotNull()
}

// PrimaryKeyColumns returns the primary key columns in declared order, or an
// empty list when the table has no primary key.
func PrimaryKeyColumns(t *catalog.ResolvedTable) []string {
	if t.PrimaryKey == nil {
		return []string{}
	}
	return append([]string{}, t.PrimaryKey.Columns...)
}

// PartitionColumns returns the partition keys as declared
func PartitionColumns(t *catalog.ResolvedTable) []string {
	return append([]string{}, t.PartitionKeys...)
}

// BuildSinkDescriptor assembles a sink descriptor from resolved values
func BuildSinkDescriptor(
	id catalog.ObjectIdentifier,
	effective config.Options,
	physical catalog.RowType,
	primaryKeys, partitionKeys []string,
	resolved *catalog.ResolvedTable,
	s3 *storage.S3Settings,
) *core.SinkDescriptor {
	return &core.SinkDescriptor{
		TableName:       id.SummaryString(),
		ObjectName:      id.ObjectName(),
		PhysicalRowType: physical,
		PrimaryKeys:     primaryKeys,
		PartitionKeys:   partitionKeys,
		Options:         effective,
		ResolvedSchema:  resolved,
		Storage:         s3,
	}
}

// BuildSourceDescriptor assembles a source descriptor from resolved values.
// The effective configuration is handed over as a flat map.
func BuildSourceDescriptor(
	tableID catalog.TableID,
	row catalog.RowType,
	boundedness core.Boundedness,
	primaryKeys, partitionKeys []string,
	table *catalog.ResolvedTable,
	options map[string]string,
	expr filter.Expr,
	s3 *storage.S3Settings,
) *core.SourceDescriptor {
	return &core.SourceDescriptor{
		TableID:       tableID,
		RowType:       row,
		Boundedness:   boundedness,
		PrimaryKeys:   primaryKeys,
		PartitionKeys: partitionKeys,
		Table:         table,
		Options:       options,
		Filter:        expr,
		Storage:       s3,
	}
}

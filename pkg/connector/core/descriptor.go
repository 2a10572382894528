package core

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/filter"
	"github.com/ajitpratap0/lakesoul-connector/pkg/storage"
)

// SinkDescriptor is everything a LakeSoul writer needs to start writing a table
type SinkDescriptor struct {
	// TableName is the fully qualified display name
	TableName string `json:"table_name"`
	// ObjectName is the bare table name
	ObjectName      string                 `json:"object_name"`
	PhysicalRowType catalog.RowType        `json:"physical_row_type"`
	PrimaryKeys     []string               `json:"primary_keys"`
	PartitionKeys   []string               `json:"partition_keys"`
	Options         config.Options         `json:"options"`
	ResolvedSchema  *catalog.ResolvedTable `json:"resolved_schema"`
	Storage         *storage.S3Settings    `json:"storage,omitempty"`
}

// IsPrimaryKeyTable reports whether writes are upserts on a primary key
func (d *SinkDescriptor) IsPrimaryKeyTable() bool {
	return len(d.PrimaryKeys) > 0
}

// IsPartitioned reports whether the table has range partitions
func (d *SinkDescriptor) IsPartitioned() bool {
	return len(d.PartitionKeys) > 0
}

// Clone returns a deep copy. Callers receive clones of cached descriptors so
// that no two resolutions share mutable state.
func (d *SinkDescriptor) Clone() *SinkDescriptor {
	out := *d
	out.PhysicalRowType = d.PhysicalRowType.Clone()
	out.PrimaryKeys = copyStrings(d.PrimaryKeys)
	out.PartitionKeys = copyStrings(d.PartitionKeys)
	out.Options = d.Options.Clone()
	out.ResolvedSchema = d.ResolvedSchema.Clone()
	out.Storage = cloneStorage(d.Storage)
	return &out
}

// ArrowSchema returns the written row as an Arrow schema
func (d *SinkDescriptor) ArrowSchema() (*arrow.Schema, error) {
	return d.PhysicalRowType.ToArrowSchema(d.Options.GetOrDefault(config.KeyTimeZone, "UTC"))
}

// SourceDescriptor is everything a LakeSoul reader needs to start reading a table
type SourceDescriptor struct {
	TableID       catalog.TableID        `json:"table_id"`
	RowType       catalog.RowType        `json:"row_type"`
	Boundedness   Boundedness            `json:"boundedness"`
	PrimaryKeys   []string               `json:"primary_keys"`
	PartitionKeys []string               `json:"partition_keys"`
	Table         *catalog.ResolvedTable `json:"table"`
	Options       map[string]string      `json:"options"`
	Filter        filter.Expr            `json:"-"`
	Storage       *storage.S3Settings    `json:"storage,omitempty"`
}

// Bounded reports whether the read terminates
func (d *SourceDescriptor) Bounded() bool {
	return d.Boundedness.IsBounded()
}

// IsPrimaryKeyTable reports whether the reader must merge rows by primary key
func (d *SourceDescriptor) IsPrimaryKeyTable() bool {
	return len(d.PrimaryKeys) > 0
}

// IsPartitioned reports whether the table has range partitions
func (d *SourceDescriptor) IsPartitioned() bool {
	return len(d.PartitionKeys) > 0
}

// Clone returns a deep copy
func (d *SourceDescriptor) Clone() *SourceDescriptor {
	out := *d
	out.RowType = d.RowType.Clone()
	out.PrimaryKeys = copyStrings(d.PrimaryKeys)
	out.PartitionKeys = copyStrings(d.PartitionKeys)
	out.Table = d.Table.Clone()
	out.Options = config.Options(d.Options).ToMap()
	if d.Filter != nil {
		out.Filter = filter.Clone(d.Filter)
	}
	out.Storage = cloneStorage(d.Storage)
	return &out
}

// FilterString returns the canonical filter expression, or "" without a filter
func (d *SourceDescriptor) FilterString() string {
	if d.Filter == nil {
		return ""
	}
	return d.Filter.String()
}

// ArrowSchema returns the produced row as an Arrow schema
func (d *SourceDescriptor) ArrowSchema() (*arrow.Schema, error) {
	tz, ok := d.Options[config.KeyTimeZone]
	if !ok {
		tz = "UTC"
	}
	return d.RowType.ToArrowSchema(tz)
}

func copyStrings(s []string) []string {
	return append(s[:0:0], s...)
}

func cloneStorage(s *storage.S3Settings) *storage.S3Settings {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

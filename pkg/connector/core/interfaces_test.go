package core

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
	"github.com/ajitpratap0/lakesoul-connector/pkg/filter"
)

type fakeFactory struct{ required []string }

func (f fakeFactory) Identifier() string        { return "fake" }
func (f fakeFactory) RequiredOptions() []string { return f.required }
func (f fakeFactory) OptionalOptions() []string { return nil }

func TestValidateRequiredOptions(t *testing.T) {
	f := fakeFactory{required: []string{"format", "catalog_path"}}

	require.NoError(t, ValidateRequiredOptions(f, config.Options{"catalog_path": "/p", "format": "lakesoul"}))

	err := ValidateRequiredOptions(f, config.Options{"other": "x"})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
	assert.Contains(t, err.Error(), "catalog_path, format")

	missing, ok := errors.Detail(err, "missing")
	require.True(t, ok)
	assert.Equal(t, []string{"catalog_path", "format"}, missing)

	err = ValidateRequiredOptions(f, nil)
	assert.True(t, errors.IsConfig(err))
}

func TestStaticContext(t *testing.T) {
	table := &catalog.ResolvedTable{Columns: []catalog.Column{{Name: "id", Type: catalog.BigInt()}}}
	c := &StaticContext{
		Identifier: catalog.ObjectIdentifier{Catalog: "c", Database: "d", Object: "t"},
		Table:      table,
		Statement:  config.Options{"format": "lakesoul"},
		Session:    config.Options{config.SessionRuntimeMode: "BATCH"},
	}

	var _ Context = c
	assert.Equal(t, "c.d.t", c.ObjectIdentifier().SummaryString())
	assert.Same(t, table, c.CatalogTable())
	assert.Equal(t, "lakesoul", c.StatementOptions()["format"])
	assert.Equal(t, "BATCH", c.Configuration()[config.SessionRuntimeMode])
}

func TestDescriptorHelpers(t *testing.T) {
	row := catalog.RowType{Fields: []catalog.RowField{
		{Name: "id", Type: catalog.BigInt().NotNull()},
		{Name: "ts", Type: catalog.TimestampLTZ(6)},
	}}

	sink := &SinkDescriptor{
		PhysicalRowType: row,
		PrimaryKeys:     []string{"id"},
		PartitionKeys:   []string{},
		Options:         config.Options{config.KeyTimeZone: "Europe/Paris"},
	}
	assert.True(t, sink.IsPrimaryKeyTable())
	assert.False(t, sink.IsPartitioned())

	schema, err := sink.ArrowSchema()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", schema.Field(1).Type.(*arrow.TimestampType).TimeZone)

	expr, err := filter.Parse("eq(id,1)")
	require.NoError(t, err)
	source := &SourceDescriptor{
		RowType:       row.NotNull(),
		Boundedness:   Bounded,
		PrimaryKeys:   []string{},
		PartitionKeys: []string{"id"},
		Options:       map[string]string{},
		Filter:        expr,
	}
	assert.True(t, source.Bounded())
	assert.False(t, source.IsPrimaryKeyTable())
	assert.True(t, source.IsPartitioned())
	assert.Equal(t, "eq(id,1)", source.FilterString())

	schema, err = source.ArrowSchema()
	require.NoError(t, err)
	assert.Equal(t, "UTC", schema.Field(1).Type.(*arrow.TimestampType).TimeZone)

	source.Filter = nil
	assert.Equal(t, "", source.FilterString())
}

package catalog

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

func ordersTable() *ResolvedTable {
	return &ResolvedTable{
		Columns: []Column{
			{Name: "order_id", Type: BigInt().NotNull()},
			{Name: "region", Type: String().NotNull()},
			{Name: "amount", Type: Decimal(12, 2)},
			{Name: "amount_x2", Type: Decimal(13, 2), Kind: ColumnComputed, Expression: "amount * 2"},
			{Name: "op", Type: String(), Kind: ColumnMetadata, MetadataKey: "rowKinds", Virtual: true},
			{Name: "created_at", Type: TimestampLTZ(3)},
		},
		PrimaryKey:    &UniqueConstraint{Name: "pk_orders", Columns: []string{"region", "order_id"}},
		PartitionKeys: []string{"region"},
	}
}

func TestPhysicalRowType(t *testing.T) {
	row := ordersTable().PhysicalRowType()

	assert.Equal(t, []string{"order_id", "region", "amount", "created_at"}, row.FieldNames())
	assert.True(t, row.Nullable)

	f, ok := row.Field("amount")
	require.True(t, ok)
	assert.True(t, f.Type.Nullable)
	f, ok = row.Field("order_id")
	require.True(t, ok)
	assert.False(t, f.Type.Nullable)
}

func TestSourceRowType(t *testing.T) {
	row := ordersTable().SourceRowType()

	assert.Equal(t, []string{"order_id", "region", "amount", "op", "created_at"}, row.FieldNames())

	notNull := row.NotNull()
	assert.False(t, notNull.Nullable)
	assert.True(t, row.Nullable, "NotNull must not modify the receiver")
	for i := range row.Fields {
		assert.Equal(t, row.Fields[i].Type.Nullable, notNull.Fields[i].Type.Nullable)
	}
}

func TestValidateAcceptsWellFormedTable(t *testing.T) {
	require.NoError(t, ordersTable().Validate())

	noKeys := &ResolvedTable{Columns: []Column{{Name: "v", Type: Int()}}}
	require.NoError(t, noKeys.Validate())
}

func TestValidateRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ResolvedTable)
		column string
	}{
		{name: "no columns", mutate: func(t *ResolvedTable) { t.Columns = nil }},
		{name: "duplicate column", mutate: func(t *ResolvedTable) {
			t.Columns = append(t.Columns, Column{Name: "region", Type: String()})
		}, column: "region"},
		{name: "empty column name", mutate: func(t *ResolvedTable) {
			t.Columns[0].Name = ""
		}},
		{name: "unknown pk column", mutate: func(t *ResolvedTable) {
			t.PrimaryKey.Columns = []string{"order_id", "missing"}
		}, column: "missing"},
		{name: "pk on computed column", mutate: func(t *ResolvedTable) {
			t.PrimaryKey.Columns = []string{"amount_x2"}
		}, column: "amount_x2"},
		{name: "pk on metadata column", mutate: func(t *ResolvedTable) {
			t.PrimaryKey.Columns = []string{"op"}
		}, column: "op"},
		{name: "empty pk", mutate: func(t *ResolvedTable) {
			t.PrimaryKey.Columns = []string{}
		}},
		{name: "duplicate pk column", mutate: func(t *ResolvedTable) {
			t.PrimaryKey.Columns = []string{"order_id", "order_id"}
		}, column: "order_id"},
		{name: "unknown partition column", mutate: func(t *ResolvedTable) {
			t.PartitionKeys = []string{"day"}
		}, column: "day"},
		{name: "computed without expression", mutate: func(t *ResolvedTable) {
			t.Columns[3].Expression = " "
		}, column: "amount_x2"},
		{name: "unknown kind", mutate: func(t *ResolvedTable) {
			t.Columns[0].Kind = "VIRTUAL"
		}, column: "order_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ordersTable()
			tt.mutate(table)

			err := table.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			if tt.column != "" {
				col, ok := errors.Detail(err, "column")
				require.True(t, ok)
				assert.Equal(t, tt.column, col)
			}
		})
	}
}

func TestToArrowSchema(t *testing.T) {
	schema, err := ordersTable().PhysicalRowType().ToArrowSchema("Asia/Shanghai")
	require.NoError(t, err)

	require.Equal(t, 4, len(schema.Fields()))
	assert.Equal(t, arrow.PrimitiveTypes.Int64, schema.Field(0).Type)
	assert.False(t, schema.Field(0).Nullable)
	assert.Equal(t, arrow.BinaryTypes.String, schema.Field(1).Type)
	assert.Equal(t, &arrow.Decimal128Type{Precision: 12, Scale: 2}, schema.Field(2).Type)
	assert.True(t, schema.Field(2).Nullable)
	assert.Equal(t, &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "Asia/Shanghai"}, schema.Field(3).Type)
}

func TestToArrowTypeUnits(t *testing.T) {
	tests := []struct {
		in   LogicalType
		want arrow.DataType
	}{
		{in: Time(0), want: &arrow.Time32Type{Unit: arrow.Second}},
		{in: Time(3), want: &arrow.Time32Type{Unit: arrow.Millisecond}},
		{in: Time(6), want: &arrow.Time64Type{Unit: arrow.Microsecond}},
		{in: Timestamp(9), want: &arrow.TimestampType{Unit: arrow.Nanosecond}},
		{in: Bytes(), want: arrow.BinaryTypes.Binary},
		{in: Date(), want: arrow.FixedWidthTypes.Date32},
		{in: Boolean(), want: arrow.FixedWidthTypes.Boolean},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got, err := ToArrowType(tt.in, "UTC")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToArrowTypeNestedRow(t *testing.T) {
	nested := Row(RowField{Name: "x", Type: Int().NotNull()}, RowField{Name: "y", Type: Double()})

	got, err := ToArrowType(nested, "UTC")
	require.NoError(t, err)

	st, ok := got.(*arrow.StructType)
	require.True(t, ok)
	require.Equal(t, 2, st.NumFields())
	assert.Equal(t, "x", st.Field(0).Name)
	assert.False(t, st.Field(0).Nullable)

	_, err = ToArrowType(LogicalType{Kind: "GEOMETRY"}, "UTC")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	kind, _ := errors.Detail(err, "type")
	assert.Contains(t, kind, "GEOMETRY")

	_, err = ToArrowType(Row(RowField{Name: "shape", Type: LogicalType{Kind: "GEOMETRY"}}), "UTC")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	field, _ := errors.Detail(err, "field")
	assert.Equal(t, "shape", field)
}

func TestRowTypeFieldPath(t *testing.T) {
	row := RowType{Fields: []RowField{
		{Name: "id", Type: BigInt()},
		{Name: "a", Type: Row(
			RowField{Name: "b", Type: Double()},
			RowField{Name: "c", Type: Row(RowField{Name: "d", Type: String()})},
		)},
		{Name: "x.y", Type: Int()},
	}}

	tests := []struct {
		path string
		kind Kind
		ok   bool
	}{
		{path: "id", kind: KindBigInt, ok: true},
		{path: "a", kind: KindRow, ok: true},
		{path: "a.b", kind: KindDouble, ok: true},
		{path: "a.c.d", kind: KindVarChar, ok: true},
		{path: "x.y", kind: KindInt, ok: true},
		{path: "a.z"},
		{path: "id.b"},
		{path: "a."},
		{path: "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, ok := row.FieldPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, f.Type.Kind)
			}
		})
	}
}

func TestResolvedTableClone(t *testing.T) {
	table := ordersTable()
	table.Columns = append(table.Columns, Column{Name: "geo", Type: Row(RowField{Name: "lat", Type: Double()})})
	table.Options = map[string]string{"k": "v"}

	clone := table.Clone()
	require.Equal(t, table, clone)

	clone.Columns[0].Name = "changed"
	clone.Columns[6].Type.Fields[0].Name = "changed"
	clone.PrimaryKey.Columns[0] = "changed"
	clone.PartitionKeys[0] = "changed"
	clone.Options["k"] = "changed"

	assert.Equal(t, ordersTable().Columns[0], table.Columns[0])
	assert.Equal(t, "lat", table.Columns[6].Type.Fields[0].Name)
	assert.Equal(t, []string{"region", "order_id"}, table.PrimaryKey.Columns)
	assert.Equal(t, []string{"region"}, table.PartitionKeys)
	assert.Equal(t, "v", table.Options["k"])

	var missing *ResolvedTable
	assert.Nil(t, missing.Clone())
}

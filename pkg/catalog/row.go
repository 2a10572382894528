package catalog

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// RowType is an ordered list of named fields plus the nullability of the row itself
type RowType struct {
	Fields   []RowField `json:"fields"`
	Nullable bool       `json:"nullable"`
}

// NotNull returns a copy whose row is never null. Field nullability is kept.
func (r RowType) NotNull() RowType {
	return RowType{Fields: r.copyFields(), Nullable: false}
}

// FieldNames returns the field names in order
func (r RowType) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Field looks a field up by name
func (r RowType) Field(name string) (RowField, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return RowField{}, false
}

// FieldPath resolves a dotted reference such as a.b.c through nested ROW
// fields. A field whose own name contains dots is matched as a whole.
func (r RowType) FieldPath(path string) (RowField, bool) {
	return lookupPath(r.Fields, path)
}

func lookupPath(fields []RowField, path string) (RowField, bool) {
	for _, f := range fields {
		if f.Name == path {
			return f, true
		}
		if f.Type.Kind == KindRow && strings.HasPrefix(path, f.Name+".") {
			if nested, ok := lookupPath(f.Type.Fields, path[len(f.Name)+1:]); ok {
				return nested, true
			}
		}
	}
	return RowField{}, false
}

// AsLogicalType returns the row as a ROW logical type
func (r RowType) AsLogicalType() LogicalType {
	return LogicalType{Kind: KindRow, Nullable: r.Nullable, Fields: r.copyFields()}
}

// String renders the row in SQL form
func (r RowType) String() string {
	return r.AsLogicalType().String()
}

// ToArrowSchema converts the row to an Arrow schema. The time zone is applied
// to TIMESTAMP WITH LOCAL TIME ZONE fields.
func (r RowType) ToArrowSchema(timeZone string) (*arrow.Schema, error) {
	fields, err := toArrowFields(r.Fields, timeZone)
	if err != nil {
		return nil, err
	}
	return arrow.NewSchema(fields, nil), nil
}

// Clone returns a deep copy of the row
func (r RowType) Clone() RowType {
	return RowType{Fields: r.copyFields(), Nullable: r.Nullable}
}

func (r RowType) copyFields() []RowField {
	return cloneFields(r.Fields)
}

func cloneFields(fields []RowField) []RowField {
	if fields == nil {
		return nil
	}
	out := make([]RowField, len(fields))
	for i, f := range fields {
		out[i] = f
		out[i].Type = f.Type.Clone()
	}
	return out
}

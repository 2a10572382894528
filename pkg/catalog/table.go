package catalog

import (
	"strings"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// ColumnKind distinguishes stored columns from derived ones
type ColumnKind string

const (
	// ColumnPhysical is a column stored in the table files
	ColumnPhysical ColumnKind = "PHYSICAL"
	// ColumnComputed is derived from an expression over other columns
	ColumnComputed ColumnKind = "COMPUTED"
	// ColumnMetadata exposes connector metadata such as a change kind
	ColumnMetadata ColumnKind = "METADATA"
)

// Column is a column of a resolved table
type Column struct {
	Name        string      `json:"name" yaml:"name"`
	Type        LogicalType `json:"type" yaml:"type"`
	Kind        ColumnKind  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Expression  string      `json:"expression,omitempty" yaml:"expression,omitempty"`
	MetadataKey string      `json:"metadata_key,omitempty" yaml:"metadata_key,omitempty"`
	Virtual     bool        `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	Comment     string      `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// IsPhysical reports whether the column is stored. An empty kind means physical.
func (c Column) IsPhysical() bool {
	return c.Kind == "" || c.Kind == ColumnPhysical
}

// UniqueConstraint is a primary key declaration
type UniqueConstraint struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
}

// ResolvedTable is a table definition as resolved by the host catalog. The
// factory reads it and never modifies it.
type ResolvedTable struct {
	Columns       []Column          `json:"columns" yaml:"columns"`
	PrimaryKey    *UniqueConstraint `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	PartitionKeys []string          `json:"partition_keys,omitempty" yaml:"partition_keys,omitempty"`
	Comment       string            `json:"comment,omitempty" yaml:"comment,omitempty"`
	Options       map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Clone returns a deep copy of the table definition
func (t *ResolvedTable) Clone() *ResolvedTable {
	if t == nil {
		return nil
	}
	out := *t
	if t.Columns != nil {
		out.Columns = make([]Column, len(t.Columns))
		for i, c := range t.Columns {
			out.Columns[i] = c
			out.Columns[i].Type = c.Type.Clone()
		}
	}
	if t.PrimaryKey != nil {
		pk := *t.PrimaryKey
		pk.Columns = append(t.PrimaryKey.Columns[:0:0], t.PrimaryKey.Columns...)
		out.PrimaryKey = &pk
	}
	out.PartitionKeys = append(t.PartitionKeys[:0:0], t.PartitionKeys...)
	if t.Options != nil {
		out.Options = make(map[string]string, len(t.Options))
		for k, v := range t.Options {
			out.Options[k] = v
		}
	}
	return &out
}

// Column looks a column up by name
func (t *ResolvedTable) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PhysicalRowType returns the stored columns in declared order. Column
// nullability is kept as declared.
func (t *ResolvedTable) PhysicalRowType() RowType {
	fields := make([]RowField, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.IsPhysical() {
			fields = append(fields, RowField{Name: c.Name, Type: c.Type, Description: c.Comment})
		}
	}
	return RowType{Fields: fields, Nullable: true}
}

// SourceRowType returns the row a reader produces: physical and metadata
// columns in declared order. Computed columns are evaluated by the host.
func (t *ResolvedTable) SourceRowType() RowType {
	fields := make([]RowField, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Kind == ColumnComputed {
			continue
		}
		fields = append(fields, RowField{Name: c.Name, Type: c.Type, Description: c.Comment})
	}
	return RowType{Fields: fields, Nullable: true}
}

// Validate checks the invariants the host catalog is expected to guarantee.
// Key columns must name physical columns; nothing is dropped silently.
func (t *ResolvedTable) Validate() error {
	if len(t.Columns) == 0 {
		return errors.New(errors.ErrorTypeValidation, "table has no columns")
	}

	physical := make(map[string]bool, len(t.Columns))
	seen := make(map[string]bool, len(t.Columns))
	for i, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return errors.New(errors.ErrorTypeValidation, "column has an empty name").
				WithDetail("position", i)
		}
		if seen[c.Name] {
			return errors.New(errors.ErrorTypeValidation, "duplicate column").
				WithDetail("column", c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case "", ColumnPhysical:
			physical[c.Name] = true
		case ColumnComputed:
			if strings.TrimSpace(c.Expression) == "" {
				return errors.New(errors.ErrorTypeValidation, "computed column has no expression").
					WithDetail("column", c.Name)
			}
		case ColumnMetadata:
		default:
			return errors.Newf(errors.ErrorTypeValidation, "unknown column kind %q", c.Kind).
				WithDetail("column", c.Name)
		}
	}

	if t.PrimaryKey != nil {
		if len(t.PrimaryKey.Columns) == 0 {
			return errors.New(errors.ErrorTypeValidation, "primary key has no columns")
		}
		if err := checkKeyColumns("primary key", t.PrimaryKey.Columns, physical); err != nil {
			return err
		}
	}

	return checkKeyColumns("partition key", t.PartitionKeys, physical)
}

func checkKeyColumns(what string, columns []string, physical map[string]bool) error {
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if !physical[name] {
			return errors.Newf(errors.ErrorTypeValidation, "%s references unknown physical column", what).
				WithDetail("column", name)
		}
		if seen[name] {
			return errors.Newf(errors.ErrorTypeValidation, "%s lists a column twice", what).
				WithDetail("column", name)
		}
		seen[name] = true
	}
	return nil
}

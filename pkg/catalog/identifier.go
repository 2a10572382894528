package catalog

import (
	"strings"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// ObjectIdentifier addresses a table in the host engine's catalog
type ObjectIdentifier struct {
	Catalog  string `json:"catalog" yaml:"catalog"`
	Database string `json:"database" yaml:"database"`
	Object   string `json:"object" yaml:"object"`
}

// NewObjectIdentifier creates an identifier, rejecting empty parts
func NewObjectIdentifier(catalogName, database, object string) (ObjectIdentifier, error) {
	id := ObjectIdentifier{Catalog: catalogName, Database: database, Object: object}
	if err := id.Validate(); err != nil {
		return ObjectIdentifier{}, err
	}
	return id, nil
}

// Validate checks that every part is present
func (id ObjectIdentifier) Validate() error {
	for _, part := range []struct{ name, value string }{
		{"catalog", id.Catalog},
		{"database", id.Database},
		{"object", id.Object},
	} {
		if strings.TrimSpace(part.value) == "" {
			return errors.Newf(errors.ErrorTypeValidation, "table identifier is missing its %s name", part.name)
		}
	}
	return nil
}

// SummaryString renders the identifier as catalog.database.object
func (id ObjectIdentifier) SummaryString() string {
	return id.Catalog + "." + id.Database + "." + id.Object
}

// ObjectName returns the short table name
func (id ObjectIdentifier) ObjectName() string {
	return id.Object
}

// TableID maps the identifier onto the storage-side id part by part. Object
// names that contain dots are kept whole.
func (id ObjectIdentifier) TableID() TableID {
	return TableID{Catalog: id.Catalog, Schema: id.Database, Table: id.Object}
}

// String implements fmt.Stringer
func (id ObjectIdentifier) String() string {
	return id.SummaryString()
}

// TableID is the storage-side table identifier, parsed from the flattened
// summary form of an ObjectIdentifier.
type TableID struct {
	Catalog string `json:"catalog,omitempty"`
	Schema  string `json:"schema,omitempty"`
	Table   string `json:"table"`
}

// ParseTableID parses a dotted table name. Parts are assigned from the right:
// "t" is a table, "s.t" a schema and table, "c.s.t" a catalog, schema and table.
func ParseTableID(s string) (TableID, error) {
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if p == "" {
			return TableID{}, errors.Newf(errors.ErrorTypeValidation, "malformed table id %q", s)
		}
	}

	switch len(parts) {
	case 1:
		return TableID{Table: parts[0]}, nil
	case 2:
		return TableID{Schema: parts[0], Table: parts[1]}, nil
	case 3:
		return TableID{Catalog: parts[0], Schema: parts[1], Table: parts[2]}, nil
	default:
		return TableID{}, errors.Newf(errors.ErrorTypeValidation, "table id %q has too many parts", s).
			WithDetail("parts", len(parts))
	}
}

// String joins the non-empty parts with '.'
func (t TableID) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{t.Catalog, t.Schema, t.Table} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

package core

import (
	"context"
	"sort"
	"strings"

	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// ConfigurationProvider exposes the host session configuration. It is the only
// capability the factory needs from the host to read session settings.
type ConfigurationProvider interface {
	Configuration() config.Options
}

// Context is everything the host hands to a factory for one table
type Context interface {
	ConfigurationProvider

	// ObjectIdentifier is the fully qualified name of the table
	ObjectIdentifier() catalog.ObjectIdentifier
	// CatalogTable is the resolved table definition. It must not be modified.
	CatalogTable() *catalog.ResolvedTable
	// StatementOptions are the options written in the table's WITH clause
	StatementOptions() config.Options
}

// StaticContext is a Context backed by plain values
type StaticContext struct {
	Identifier catalog.ObjectIdentifier
	Table      *catalog.ResolvedTable
	Statement  config.Options
	Session    config.Options
}

// Configuration returns the session settings
func (c *StaticContext) Configuration() config.Options { return c.Session }

// ObjectIdentifier returns the table's catalog identifier
func (c *StaticContext) ObjectIdentifier() catalog.ObjectIdentifier { return c.Identifier }

// CatalogTable returns the table definition
func (c *StaticContext) CatalogTable() *catalog.ResolvedTable { return c.Table }

// StatementOptions returns the table's statement options
func (c *StaticContext) StatementOptions() config.Options { return c.Statement }

// TableFactory describes a connector the host can discover by identifier
type TableFactory interface {
	// Identifier is the value of the connector option selecting this factory
	Identifier() string
	// RequiredOptions must all be present in the statement options
	RequiredOptions() []string
	// OptionalOptions are understood by the factory. Other keys are passed through.
	OptionalOptions() []string
}

// SinkFactory builds write descriptors
type SinkFactory interface {
	TableFactory
	CreateSink(ctx context.Context, c Context) (*SinkDescriptor, error)
}

// SourceFactory builds read descriptors
type SourceFactory interface {
	TableFactory
	CreateSource(ctx context.Context, c Context) (*SourceDescriptor, error)
}

// ValidateRequiredOptions checks that every required option of f is present
// in the statement options. All missing keys are reported in one error.
func ValidateRequiredOptions(f TableFactory, statement config.Options) error {
	var missing []string
	for _, key := range f.RequiredOptions() {
		if !statement.Contains(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return errors.Newf(errors.ErrorTypeConfig, "missing required options: %s", strings.Join(missing, ", ")).
		WithDetail("connector", f.Identifier()).
		WithDetail("missing", missing)
}

// Package lakesoulconnector resolves the descriptors a LakeSoul table reader
// or writer is started from.
//
// A host engine hands the factory a table definition, the statement options
// and its session settings. The factory merges the configuration in three
// layers (process defaults, then session, then statement), checks the
// required options, resolves the physical schema, primary keys and partition
// keys, maps the session runtime mode onto the boundedness of a read and
// returns a sink or source descriptor.
//
// # Quick Start
//
//	import (
//	    "github.com/ajitpratap0/lakesoul-connector/pkg/config"
//	    "github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
//	    "github.com/ajitpratap0/lakesoul-connector/pkg/connector/registry"
//	    _ "github.com/ajitpratap0/lakesoul-connector/pkg/connector/lakesoul"
//	)
//
//	defaults, _ := config.LoadGlobal("")
//	source, _ := registry.DiscoverSource("lakesoul", defaults)
//	desc, err := source.CreateSource(ctx, &core.StaticContext{
//	    Identifier: id,
//	    Table:      table,
//	    Statement:  config.Options{"catalog_path": "s3://lake/orders", "format": "parquet"},
//	    Session:    config.Options{"execution.runtime-mode": "BATCH"},
//	})
//
// # Key Packages
//
//	pkg/connector/lakesoul  - The LakeSoul table factory
//	pkg/connector/core      - Factory interfaces, runtime modes and descriptors
//	pkg/connector/registry  - Connector discovery by identifier
//	pkg/catalog             - Table definitions, logical types and Arrow mapping
//	pkg/config              - Option maps, layered merge and process defaults
//	pkg/filter              - Source filter expressions
//	pkg/storage             - S3 settings and client construction
//	pkg/errors              - Structured error types
//	pkg/logger              - Structured logging
//	pkg/metrics             - Resolution metrics
//	pkg/observability       - Resolution tracing
//
// The lsconn command under cmd/lsconn resolves descriptors from YAML table
// files and prints them as JSON.
package lakesoulconnector

package connector_test

import (
	"context"
	"fmt"
	"log"

	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/registry"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"

	// Import connectors to register them
	_ "github.com/ajitpratap0/lakesoul-connector/pkg/connector/lakesoul"
)

func ordersContext(session config.Options) *core.StaticContext {
	return &core.StaticContext{
		Identifier: catalog.ObjectIdentifier{Catalog: "lakesoul", Database: "default", Object: "orders"},
		Table: &catalog.ResolvedTable{
			Columns: []catalog.Column{
				{Name: "order_id", Type: catalog.BigInt().NotNull()},
				{Name: "region", Type: catalog.String().NotNull()},
				{Name: "amount", Type: catalog.Decimal(12, 2)},
			},
			PrimaryKey:    &catalog.UniqueConstraint{Columns: []string{"order_id"}},
			PartitionKeys: []string{"region"},
		},
		Statement: config.Options{
			config.KeyCatalogPath: "s3://lake/orders",
			config.KeyFormat:      "parquet",
		},
		Session: session,
	}
}

// Example demonstrates resolving a source descriptor through the registry.
func Example() {
	source, err := registry.DiscoverSource("lakesoul", nil)
	if err != nil {
		log.Fatal(err)
	}

	desc, err := source.CreateSource(context.Background(),
		ordersContext(config.Options{config.SessionRuntimeMode: "BATCH"}))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(desc.TableID)
	fmt.Println(desc.Boundedness)
	fmt.Println(desc.PrimaryKeys, desc.PartitionKeys)
	// Output:
	// lakesoul.default.orders
	// BOUNDED
	// [order_id] [region]
}

// Example_sink demonstrates resolving a sink descriptor.
func Example_sink() {
	sink, err := registry.DiscoverSink("lakesoul", config.Options{"lakesoul.io.threads": "4"})
	if err != nil {
		log.Fatal(err)
	}

	desc, err := sink.CreateSink(context.Background(),
		ordersContext(config.Options{config.SessionLocalTimeZone: "UTC"}))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(desc.TableName)
	fmt.Println(desc.PhysicalRowType)
	fmt.Println(desc.Options["lakesoul.io.threads"], desc.Options[config.KeyTimeZone])
	// Output:
	// lakesoul.default.orders
	// ROW<`order_id` BIGINT NOT NULL, `region` STRING NOT NULL, `amount` DECIMAL(12, 2)>
	// 4 UTC
}

// Example_automaticMode shows the error returned for an unresolved runtime mode.
func Example_automaticMode() {
	source, err := registry.DiscoverSource("lakesoul", nil)
	if err != nil {
		log.Fatal(err)
	}

	_, err = source.CreateSource(context.Background(),
		ordersContext(config.Options{config.SessionRuntimeMode: "AUTOMATIC"}))
	fmt.Println(errors.IsModeAmbiguity(err))
	// Output:
	// true
}

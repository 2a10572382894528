package lakesoul

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/registry"
	"github.com/ajitpratap0/lakesoul-connector/pkg/testutil"
)

type ResolutionSuite struct {
	testutil.ConnectorSuite
	defaults config.Options
}

func TestResolutionSuite(t *testing.T) {
	suite.Run(t, new(ResolutionSuite))
}

func (s *ResolutionSuite) SetupSuite() {
	s.ConnectorSuite.SetupSuite()
	s.WriteConf("lakesoul-conf.yaml", `lakesoul:
  io:
    threads: 8
format: orc
s3:
  endpoint: http://minio:9000
  path-style-access: true
`)

	defaults, err := config.LoadGlobal(s.ConfDir())
	s.Require().NoError(err)
	s.defaults = defaults
}

func (s *ResolutionSuite) TestDefaultsFlowIntoSink() {
	sink, err := registry.DiscoverSink(Identifier, s.defaults)
	s.Require().NoError(err)

	desc, err := sink.CreateSink(s.Context(), testContext(keyedTable(), scenarioStatement(),
		config.Options{config.SessionLocalTimeZone: "Europe/Berlin"}))
	s.Require().NoError(err)

	s.Equal("8", desc.Options["lakesoul.io.threads"])
	s.Equal("parquet", desc.Options[config.KeyFormat], "statement beats defaults")
	s.Equal("Europe/Berlin", desc.Options[config.KeyTimeZone])
	s.Require().NotNil(desc.Storage)
	s.Equal("http://minio:9000", desc.Storage.Endpoint)
	s.True(desc.Storage.PathStyle)

	schema, err := desc.ArrowSchema()
	s.Require().NoError(err)
	s.Equal(3, len(schema.Fields()))
}

func (s *ResolutionSuite) TestSessionModeDrivesSource() {
	source, err := registry.DiscoverSource(Identifier, s.defaults)
	s.Require().NoError(err)

	for mode, want := range map[string]core.Boundedness{
		"BATCH":     core.Bounded,
		"STREAMING": core.Unbounded,
	} {
		desc, err := source.CreateSource(s.Context(), testContext(keyedTable(), scenarioStatement(),
			config.Options{config.SessionRuntimeMode: mode}))
		s.Require().NoError(err, mode)
		s.Equal(want, desc.Boundedness, mode)
		s.Equal([]string{"region", "order_id", "amount", "row_kind"}, desc.RowType.FieldNames())
		s.False(desc.RowType.Nullable)
	}
}

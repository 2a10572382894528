package testutil

import (
	"context"
	"os"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConnectorSuite provides a configuration directory and a bounded context
// for tests that resolve descriptors end to end
type ConnectorSuite struct {
	suite.Suite
	ctx       context.Context
	cancel    context.CancelFunc
	confDir   string
	startTime time.Time
}

// SetupSuite runs before all tests in the suite
func (s *ConnectorSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), time.Minute)
	s.startTime = time.Now()

	dir, err := os.MkdirTemp("", "lakesoul-conf-*")
	require.NoError(s.T(), err)
	s.confDir = dir
}

// TearDownSuite runs after all tests in the suite
func (s *ConnectorSuite) TearDownSuite() {
	s.cancel()
	if s.confDir != "" {
		_ = os.RemoveAll(s.confDir)
	}
	s.T().Logf("suite completed in %v", time.Since(s.startTime))
}

// Context returns the suite context
func (s *ConnectorSuite) Context() context.Context {
	return s.ctx
}

// ConfDir returns the directory configuration files are written to
func (s *ConnectorSuite) ConfDir() string {
	return s.confDir
}

// WriteConf writes a file into the configuration directory
func (s *ConnectorSuite) WriteConf(name, content string) string {
	return WriteFile(s.T(), s.confDir, name, content)
}

package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

func TestS3SettingsFromNoKeys(t *testing.T) {
	s, err := S3SettingsFrom(config.Options{config.KeyCatalogPath: "s3://bucket/t"})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestS3SettingsFrom(t *testing.T) {
	s, err := S3SettingsFrom(config.Options{
		config.KeyS3Endpoint:  "http://minio:9000",
		config.KeyS3Region:    "us-east-1",
		config.KeyS3AccessKey: "AKIA",
		config.KeyS3SecretKey: "secret",
		config.KeyS3PathStyle: "true",
		config.KeyS3Bucket:    "lake",
	})
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "http://minio:9000", s.Endpoint)
	assert.Equal(t, "lake", s.Bucket)
	assert.True(t, s.PathStyle)
	assert.True(t, s.HasStaticCredentials())

	redacted := s.Redacted()
	assert.Equal(t, "******", redacted[config.KeyS3AccessKey])
	assert.Equal(t, "******", redacted[config.KeyS3SecretKey])
	assert.Equal(t, "us-east-1", redacted[config.KeyS3Region])
}

func TestS3SettingsFromErrors(t *testing.T) {
	tests := []struct {
		name string
		opts config.Options
	}{
		{name: "access key only", opts: config.Options{config.KeyS3AccessKey: "AKIA"}},
		{name: "secret key only", opts: config.Options{config.KeyS3SecretKey: "secret"}},
		{name: "bad path style", opts: config.Options{config.KeyS3PathStyle: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := S3SettingsFrom(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err))
		})
	}
}

func TestAWSConfig(t *testing.T) {
	s := &S3Settings{Endpoint: "http://minio:9000", Region: "eu-west-1", AccessKey: "AKIA", SecretKey: "secret"}

	cfg := s.AWSConfig()
	assert.Equal(t, "eu-west-1", cfg.Region)
	require.NotNil(t, cfg.BaseEndpoint)
	assert.Equal(t, "http://minio:9000", *cfg.BaseEndpoint)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIA", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)

	anonymous := (&S3Settings{Region: "eu-west-1"}).AWSConfig()
	assert.Nil(t, anonymous.Credentials)
	assert.Nil(t, anonymous.BaseEndpoint)
}

func TestLoadAWSConfigAppliesOverrides(t *testing.T) {
	s := &S3Settings{Endpoint: "http://minio:9000", Region: "ap-south-1", AccessKey: "AKIA", SecretKey: "secret"}

	cfg, err := s.LoadAWSConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", cfg.Region)
	assert.Equal(t, "http://minio:9000", *cfg.BaseEndpoint)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIA", creds.AccessKeyID)
}

func TestClientOptions(t *testing.T) {
	var o s3.Options
	(&S3Settings{PathStyle: true}).ClientOptions()(&o)
	assert.True(t, o.UsePathStyle)

	client := (&S3Settings{PathStyle: true}).NewClient((&S3Settings{Region: "us-east-1"}).AWSConfig())
	assert.NotNil(t, client)
}

// Package storage resolves the object store settings a LakeSoul reader or
// writer needs from the effective connector configuration.
package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// S3Settings holds the endpoint and credentials of an S3 compatible store
type S3Settings struct {
	Endpoint  string `json:"endpoint,omitempty"`
	Region    string `json:"region,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"-"`
	Bucket    string `json:"bucket,omitempty"`
	PathStyle bool   `json:"path_style,omitempty"`
}

// S3SettingsFrom reads the storage keys from opts. It returns nil when none
// of them is set, in which case the reader falls back to the default chain.
func S3SettingsFrom(opts config.Options) (*S3Settings, error) {
	found := false
	for _, k := range config.S3Keys {
		if opts.Contains(k) {
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	s := &S3Settings{
		Endpoint:  opts.GetOrDefault(config.KeyS3Endpoint, ""),
		Region:    opts.GetOrDefault(config.KeyS3Region, ""),
		AccessKey: opts.GetOrDefault(config.KeyS3AccessKey, ""),
		SecretKey: opts.GetOrDefault(config.KeyS3SecretKey, ""),
		Bucket:    opts.GetOrDefault(config.KeyS3Bucket, ""),
	}

	if (s.AccessKey == "") != (s.SecretKey == "") {
		return nil, errors.New(errors.ErrorTypeConfig, "s3 access key and secret key must be set together").
			WithDetail("keys", []string{config.KeyS3AccessKey, config.KeyS3SecretKey})
	}

	pathStyle, _, err := opts.GetBool(config.KeyS3PathStyle)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid boolean option").
			WithDetail("key", config.KeyS3PathStyle)
	}
	s.PathStyle = pathStyle

	return s, nil
}

// HasStaticCredentials reports whether an access key pair is configured
func (s *S3Settings) HasStaticCredentials() bool {
	return s.AccessKey != "" && s.SecretKey != ""
}

// AWSConfig builds an aws.Config from the settings alone, without consulting
// the environment or shared config files.
func (s *S3Settings) AWSConfig() aws.Config {
	cfg := aws.Config{Region: s.Region}
	if s.HasStaticCredentials() {
		cfg.Credentials = credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, "")
	}
	if s.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(s.Endpoint)
	}
	return cfg
}

// LoadAWSConfig resolves the default AWS configuration chain and applies the
// settings on top of it.
func (s *S3Settings) LoadAWSConfig(ctx context.Context) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if s.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(s.Region))
	}
	if s.HasStaticCredentials() {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, errors.ErrorTypeConfig, "failed to load aws configuration")
	}
	if s.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(s.Endpoint)
	}
	return cfg, nil
}

// ClientOptions returns the s3 client options implied by the settings
func (s *S3Settings) ClientOptions() func(*s3.Options) {
	return func(o *s3.Options) {
		o.UsePathStyle = s.PathStyle
	}
}

// NewClient builds an s3 client. No request is sent.
func (s *S3Settings) NewClient(cfg aws.Config) *s3.Client {
	return s3.NewFromConfig(cfg, s.ClientOptions())
}

// Redacted returns the settings as options with credentials masked
func (s *S3Settings) Redacted() map[string]string {
	out := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	set(config.KeyS3Endpoint, s.Endpoint)
	set(config.KeyS3Region, s.Region)
	set(config.KeyS3Bucket, s.Bucket)
	if s.AccessKey != "" {
		out[config.KeyS3AccessKey] = "******"
	}
	if s.SecretKey != "" {
		out[config.KeyS3SecretKey] = "******"
	}
	if s.PathStyle {
		out[config.KeyS3PathStyle] = "true"
	}
	return out
}

// Package s3 provides client initialization and configuration.
package s3

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"

	"github.com/dendrasystems/aws-utils/s3/errors"
	"github.com/dendrasystems/aws-utils/s3/internal/s3api"
)

// defaultDirConcurrency is the worker count for directory uploads.
const defaultDirConcurrency = 20

// Client wraps the AWS SDK S3 client with the utility operations of this
// module. It is safe for concurrent use.
type Client struct {
	// api is the underlying AWS SDK S3 client, behind an interface for testing
	api s3api.S3API

	// config holds the resolved AWS configuration
	config aws.Config

	// clientCfg holds the applied client options
	clientCfg ClientConfig

	// fs is the filesystem abstraction for file operations
	fs afero.Fs
}

// New creates a new S3 client with the provided options.
// It loads AWS credentials using the default credential chain
// and applies the specified configuration options.
//
// Example:
//
//	client, err := s3.New(ctx,
//	    s3.WithRegion("us-west-2"),
//	    s3.WithMaxRetries(3),
//	)
func New(ctx context.Context, opts ...Option) (*Client, error) {
	clientCfg := &ClientConfig{
		MaxRetries:  3,
		Concurrency: defaultDirConcurrency,
	}

	for _, opt := range opts {
		opt(clientCfg)
	}

	var cfg aws.Config
	var err error

	if clientCfg.CustomAWSConfig != nil {
		cfg = *clientCfg.CustomAWSConfig
	} else {
		cfg, err = config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.NewError("client initialization", err)
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1" // AWS default region
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)

	if clientCfg.Endpoint != "" {
		endpoint := clientCfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	// Path style is required for S3-compatible stores and LocalStack
	if clientCfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if clientCfg.HTTPClient != nil {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = clientCfg.HTTPClient
		})
	} else if clientCfg.Timeout > 0 {
		httpClient := &http.Client{
			Timeout: clientCfg.Timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	filesystem := clientCfg.Filesystem
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}

	return &Client{
		api:       s3.NewFromConfig(cfg, s3Opts...),
		config:    cfg,
		clientCfg: *clientCfg,
		fs:        filesystem,
	}, nil
}

// NewWithClient creates a new S3 client with a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithClient(api s3api.S3API, opts ...Option) *Client {
	clientCfg := &ClientConfig{
		Concurrency: defaultDirConcurrency,
	}
	for _, opt := range opts {
		opt(clientCfg)
	}

	filesystem := clientCfg.Filesystem
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}

	return &Client{
		api:       api,
		config:    aws.Config{},
		clientCfg: *clientCfg,
		fs:        filesystem,
	}
}

// Region returns the AWS region the client resolved at construction time.
func (c *Client) Region() string {
	return c.config.Region
}

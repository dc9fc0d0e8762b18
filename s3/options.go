// Package s3 provides functional options for configuring client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package s3

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/afero"
)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) Option {
	return func(c *ClientConfig) {
		c.Region = region
	}
}

// WithMaxRetries sets the maximum number of retry attempts for failed operations.
// Default is 3 retries.
func WithMaxRetries(maxRetries int) Option {
	return func(c *ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout for individual S3 operations.
// Default is no timeout (0).
func WithTimeout(timeout time.Duration) Option {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithConcurrency sets the default number of concurrent uploads used by
// directory uploads. Default is 20.
func WithConcurrency(concurrency int) Option {
	return func(c *ClientConfig) {
		if concurrency > 0 {
			c.Concurrency = concurrency
		}
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(c *ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
func WithAWSConfig(config *aws.Config) Option {
	return func(c *ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts and proxies.
func WithHTTPClient(client *http.Client) Option {
	return func(c *ClientConfig) {
		c.HTTPClient = client
	}
}

// WithFilesystem sets a custom filesystem implementation for file operations.
// This allows using in-memory filesystems for testing.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem afero.Fs) Option {
	return func(c *ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithContentType sets the content type for upload operations.
// When unset, the content type is detected from the file content and extension.
func WithContentType(contentType string) UploadOption {
	return func(c *UploadOptionConfig) {
		c.ContentType = contentType
	}
}

// WithContentDisposition sets the Content-Disposition attribute for upload operations.
func WithContentDisposition(contentDisposition string) UploadOption {
	return func(c *UploadOptionConfig) {
		c.ContentDisposition = contentDisposition
	}
}

// WithMetadata sets user-defined metadata for upload operations.
func WithMetadata(metadata map[string]string) UploadOption {
	return func(c *UploadOptionConfig) {
		if c.Metadata == nil {
			c.Metadata = make(map[string]string)
		}
		for k, v := range metadata {
			c.Metadata[k] = v
		}
	}
}

// WithUploadConcurrency sets the number of concurrent uploads for a directory
// upload. This overrides the client-level default for this specific call.
func WithUploadConcurrency(concurrency int) UploadOption {
	return func(c *UploadOptionConfig) {
		if concurrency > 0 {
			c.Concurrency = concurrency
		}
	}
}

// WithDelimiter groups list results by a common delimiter (e.g., "/" for directories).
func WithDelimiter(delimiter string) ListOption {
	return func(c *ListOptionConfig) {
		c.Delimiter = delimiter
	}
}

// WithStartAfter starts listing after the given key.
func WithStartAfter(startAfter string) ListOption {
	return func(c *ListOptionConfig) {
		c.StartAfter = startAfter
	}
}

// WithPageSize sets the ListObjectsV2 page size (1-1000, default 1000).
func WithPageSize(pageSize int32) ListOption {
	return func(c *ListOptionConfig) {
		if pageSize > 0 {
			c.PageSize = pageSize
		}
	}
}

// WithMaxKeys caps the total number of keys yielded by IterKeys.
// Zero (the default) means no limit.
func WithMaxKeys(maxKeys int64) ListOption {
	return func(c *ListOptionConfig) {
		if maxKeys > 0 {
			c.MaxKeys = maxKeys
		}
	}
}

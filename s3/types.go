package s3

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/afero"
)

// Object represents an S3 object with its basic metadata.
type Object struct {
	// Key is the S3 object key (path)
	Key string

	// Size is the object size in bytes
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the S3 entity tag for the object
	ETag string

	// StorageClass is the S3 storage class
	StorageClass string
}

// ListResult contains the result of a single-page list operation.
type ListResult struct {
	// Objects contains the listed objects
	Objects []Object

	// IsTruncated indicates if the results were truncated
	IsTruncated bool

	// NextContinuationToken is the token for the next page of results
	NextContinuationToken string

	// Duration is how long the operation took
	Duration time.Duration
}

// UploadResult contains the result of an upload operation.
type UploadResult struct {
	// Key is the S3 object key that was uploaded
	Key string

	// Size is the size of the uploaded object in bytes
	Size int64

	// ETag is the S3 entity tag for the uploaded object
	ETag string

	// Duration is how long the upload took
	Duration time.Duration
}

// DirUploadResult contains the result of a directory upload operation.
type DirUploadResult struct {
	// FilesUploaded is the number of files uploaded
	FilesUploaded int

	// BytesUploaded is the total bytes uploaded
	BytesUploaded int64

	// Errors contains per-file failures; the remaining files are still uploaded
	Errors []UploadError

	// Duration is how long the operation took
	Duration time.Duration
}

// UploadError represents a single file failure during a directory upload.
type UploadError struct {
	// Path is the local file path that failed
	Path string

	// Key is the destination object key
	Key string

	// Message is the error message
	Message string
}

// ClientConfig holds configuration for the S3 client.
type ClientConfig struct {
	Region          string
	Endpoint        string
	MaxRetries      int
	Timeout         time.Duration
	Concurrency     int
	ForcePathStyle  bool
	CustomAWSConfig *aws.Config
	HTTPClient      *http.Client
	Filesystem      afero.Fs
}

// UploadOptionConfig holds configuration for upload operations via functional options.
type UploadOptionConfig struct {
	ContentType        string
	ContentDisposition string
	Metadata           map[string]string
	Concurrency        int
}

// ListOptionConfig holds configuration for list operations via functional options.
type ListOptionConfig struct {
	Delimiter  string
	StartAfter string
	PageSize   int32
	MaxKeys    int64
}

// Option is a functional option for configuring the S3 client.
type (
	Option func(*ClientConfig)
	// UploadOption is a functional option for configuring S3 upload operations.
	UploadOption func(*UploadOptionConfig)
	// ListOption is a functional option for configuring S3 list operations.
	ListOption func(*ListOptionConfig)
)

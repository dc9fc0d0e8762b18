// Package s3 provides file and directory upload operations.
package s3

import (
	"context"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	s3errors "github.com/dendrasystems/aws-utils/s3/errors"
	"github.com/dendrasystems/aws-utils/s3/internal/validation"
)

// DefaultContentType is the default content type used when detection fails
const DefaultContentType = "application/octet-stream"

// UploadFile uploads a file from the local filesystem to S3, setting the
// ContentType and ContentDisposition attributes if supplied.
// When no content type is given, it is detected by sniffing the file content
// and falling back to the extension.
//
// Returns:
//   - *UploadResult: Contains the uploaded object's metadata including ETag and duration
//   - error: Returns an error if the upload fails
//
// Example:
//
//	result, err := client.UploadFile(ctx, "my-bucket", "docs/report.pdf", "/path/to/report.pdf",
//	    s3.WithContentType("application/pdf"),
//	    s3.WithContentDisposition("attachment"),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Uploaded %d bytes in %v\n", result.Size, result.Duration)
func (c *Client) UploadFile(
	ctx context.Context,
	bucket, key, filePath string,
	opts ...UploadOption,
) (*UploadResult, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3errors.NewError("uploadFile", s3errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return nil, s3errors.NewError("uploadFile", s3errors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}
	if filePath == "" {
		return nil, s3errors.NewError("uploadFile", s3errors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("filepath cannot be empty")
	}

	info, err := c.fs.Stat(filePath)
	if err != nil {
		return nil, s3errors.NewError("uploadFile", err).WithBucket(bucket).WithKey(key)
	}
	if info.IsDir() {
		return nil, s3errors.NewError("uploadFile", s3errors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("filepath points to a directory, not a file")
	}

	config := &UploadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.ContentType == "" {
		config.ContentType = c.detectContentType(filePath)
	}

	file, err := c.fs.Open(filePath)
	if err != nil {
		return nil, s3errors.NewError("uploadFile", err).WithBucket(bucket).WithKey(key)
	}
	defer file.Close()

	startTime := time.Now()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(config.ContentType),
	}
	if config.ContentDisposition != "" {
		input.ContentDisposition = aws.String(config.ContentDisposition)
	}
	if len(config.Metadata) > 0 {
		input.Metadata = config.Metadata
	}

	output, err := c.api.PutObject(ctx, input)
	if err != nil {
		return nil, s3errors.NewError("uploadFile", c.convertAWSError(err)).WithBucket(bucket).WithKey(key)
	}

	return &UploadResult{
		Key:      key,
		Size:     info.Size(),
		ETag:     aws.ToString(output.ETag),
		Duration: time.Since(startTime),
	}, nil
}

// UploadDir uploads all files in a directory tree to the specified bucket and
// prefix. Each file is uploaded to prefix/<path relative to dir>, with keys
// always using forward slashes. Files are uploaded concurrently with a bounded
// worker pool; individual failures are collected in the result rather than
// aborting the remaining uploads.
//
// Returns:
//   - *DirUploadResult: Upload counts, total bytes, and per-file errors
//   - error: Returns an error if the directory cannot be walked
//
// Example:
//
//	result, err := client.UploadDir(ctx, "my-bucket", "assets/", "./public",
//	    s3.WithUploadConcurrency(10),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Uploaded %d files (%d bytes)\n", result.FilesUploaded, result.BytesUploaded)
func (c *Client) UploadDir(
	ctx context.Context,
	bucket, prefix, dir string,
	opts ...UploadOption,
) (*DirUploadResult, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3errors.NewError("uploadDir", s3errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage(err.Error())
	}
	if dir == "" {
		return nil, s3errors.NewError("uploadDir", s3errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("directory cannot be empty")
	}

	info, err := c.fs.Stat(dir)
	if err != nil {
		return nil, s3errors.NewError("uploadDir", err).WithBucket(bucket)
	}
	if !info.IsDir() {
		return nil, s3errors.NewError("uploadDir", s3errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("path is not a directory")
	}

	config := &UploadOptionConfig{
		Concurrency: c.clientCfg.Concurrency,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.Concurrency <= 0 {
		config.Concurrency = defaultDirConcurrency
	}

	type uploadJob struct {
		path string
		key  string
	}

	var jobs []uploadJob
	err = afero.Walk(c.fs, dir, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, filePath)
		if err != nil {
			return err
		}
		jobs = append(jobs, uploadJob{
			path: filePath,
			key:  path.Join(prefix, filepath.ToSlash(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, s3errors.NewError("uploadDir", err).WithBucket(bucket)
	}

	startTime := time.Now()
	result := &DirUploadResult{}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Concurrency)

	for _, job := range jobs {
		g.Go(func() error {
			uploaded, err := c.UploadFile(gctx, bucket, job.key, job.path, opts...)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, UploadError{
					Path:    job.path,
					Key:     job.key,
					Message: err.Error(),
				})
				return nil
			}
			result.FilesUploaded++
			result.BytesUploaded += uploaded.Size
			return nil
		})
	}

	// Workers never return errors; failures are collected per file.
	_ = g.Wait()

	result.Duration = time.Since(startTime)
	return result, nil
}

// detectContentType determines the content type using mimetype where possible,
// falling back to extension-based lookup when the path cannot be read.
func (c *Client) detectContentType(filePath string) string {
	info, err := c.fs.Stat(filePath)
	if err != nil || info.IsDir() {
		return detectContentTypeFromExtension(filePath)
	}

	file, err := c.fs.Open(filePath)
	if err != nil {
		return detectContentTypeFromExtension(filePath)
	}
	defer file.Close()

	// Read the first 512 bytes for content sniffing
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			return mt.String()
		}
	}

	return detectContentTypeFromExtension(filePath)
}

// detectContentTypeFromExtension detects content type from the file extension.
func detectContentTypeFromExtension(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	return DefaultContentType
}

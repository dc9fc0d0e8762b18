// Package s3 provides object listing operations.
package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/dendrasystems/aws-utils/s3/errors"
	"github.com/dendrasystems/aws-utils/s3/internal/validation"
)

// objectFromSDK converts an SDK listing entry to an Object.
func objectFromSDK(obj types.Object) Object {
	return Object{
		Key:          aws.ToString(obj.Key),
		Size:         aws.ToInt64(obj.Size),
		LastModified: aws.ToTime(obj.LastModified),
		ETag:         aws.ToString(obj.ETag),
		StorageClass: string(obj.StorageClass),
	}
}

// defaultPageSize is the maximum ListObjectsV2 page size.
const defaultPageSize = 1000

// List lists a single page of objects in an S3 bucket under the given prefix.
// Pagination is left to the caller via the returned continuation token;
// use IterKeys to stream the full listing instead.
//
// Returns:
//   - *ListResult: Contains the objects and pagination information
//   - error: Returns an error if the listing fails
//
// Example:
//
//	result, err := client.List(ctx, "my-bucket", "photos/", s3.WithPageSize(100))
//	if err != nil {
//	    return err
//	}
//	for _, obj := range result.Objects {
//	    fmt.Printf("%s (%d bytes)\n", obj.Key, obj.Size)
//	}
func (c *Client) List(
	ctx context.Context,
	bucket, prefix string,
	opts ...ListOption,
) (*ListResult, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3errors.NewError("list", s3errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage(err.Error())
	}

	config := &ListOptionConfig{
		PageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(config)
	}

	startTime := time.Now()

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(config.PageSize),
	}
	if config.Delimiter != "" {
		input.Delimiter = aws.String(config.Delimiter)
	}
	if config.StartAfter != "" {
		input.StartAfter = aws.String(config.StartAfter)
	}

	result, err := c.api.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, s3errors.NewError("list", c.convertAWSError(err)).WithBucket(bucket)
	}

	listResult := &ListResult{
		Objects:     make([]Object, 0, len(result.Contents)),
		IsTruncated: aws.ToBool(result.IsTruncated),
		Duration:    time.Since(startTime),
	}
	if result.NextContinuationToken != nil {
		listResult.NextContinuationToken = aws.ToString(result.NextContinuationToken)
	}

	for _, obj := range result.Contents {
		listResult.Objects = append(listResult.Objects, objectFromSDK(obj))
	}

	return listResult, nil
}

// IterKeys streams all objects in an S3 bucket under the given prefix using
// channel-based pagination. It follows ListObjectsV2 continuation tokens and
// sends each object through the returned channel, which is closed when the
// listing is exhausted, an error occurs, or the total cap set via WithMaxKeys
// is reached.
//
// The second return value reports whether the listing terminated early; it
// must only be called after the channel has been closed. A canceled context
// is reported as the context's error.
//
// Always consume the channel completely or cancel the context to avoid
// goroutine leaks.
//
// Example:
//
//	keys, iterErr := client.IterKeys(ctx, "my-bucket", "images/", s3.WithMaxKeys(500))
//	for obj := range keys {
//	    fmt.Printf("%s (%d bytes)\n", obj.Key, obj.Size)
//	}
//	if err := iterErr(); err != nil {
//	    return err
//	}
func (c *Client) IterKeys(ctx context.Context, bucket, prefix string, opts ...ListOption) (<-chan Object, func() error) {
	config := &ListOptionConfig{
		PageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(config)
	}

	objectChan := make(chan Object, 100) // buffered so slow consumers don't stall paging

	// iterErr is written by the paging goroutine before it closes the channel,
	// so reading it after the channel closes is race-free.
	var iterErr error

	if err := validation.ValidateBucketName(bucket); err != nil {
		iterErr = s3errors.NewError("iterKeys", s3errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage(err.Error())
		close(objectChan)
		return objectChan, func() error { return iterErr }
	}

	go func() {
		defer close(objectChan)

		var continuationToken *string
		var keyCount int64

		for {
			select {
			case <-ctx.Done():
				iterErr = ctx.Err()
				return
			default:
			}

			input := &s3.ListObjectsV2Input{
				Bucket:  aws.String(bucket),
				Prefix:  aws.String(prefix),
				MaxKeys: aws.Int32(config.PageSize),
			}
			if continuationToken != nil {
				input.ContinuationToken = continuationToken
			}

			result, err := c.api.ListObjectsV2(ctx, input)
			if err != nil {
				iterErr = s3errors.NewError("iterKeys", c.convertAWSError(err)).WithBucket(bucket)
				return
			}

			if aws.ToInt32(result.KeyCount) == 0 && len(result.Contents) == 0 {
				return
			}

			for _, obj := range result.Contents {
				select {
				case objectChan <- objectFromSDK(obj):
				case <-ctx.Done():
					iterErr = ctx.Err()
					return
				}

				keyCount++
				if config.MaxKeys > 0 && keyCount >= config.MaxKeys {
					return
				}
			}

			if !aws.ToBool(result.IsTruncated) {
				return
			}
			continuationToken = result.NextContinuationToken
		}
	}()

	return objectChan, func() error { return iterErr }
}

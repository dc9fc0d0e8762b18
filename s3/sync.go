// Package s3 provides conditional object synchronization.
package s3

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3errors "github.com/dendrasystems/aws-utils/s3/errors"
	"github.com/dendrasystems/aws-utils/s3/internal/validation"
)

// SyncObject copies an object from one S3 location to another, but only if
// the source is newer than the destination or the destination does not exist.
// The copy is performed entirely server-side with CopyObject.
//
// Returns:
//   - bool: true if the object was copied, false if the destination was already up to date
//   - error: Returns an error if the comparison or copy fails
//
// Example:
//
//	copied, err := client.SyncObject(ctx,
//	    s3.URL{Bucket: "src", Key: "item.png"},
//	    s3.URL{Bucket: "dest", Key: "item.png"},
//	)
//	if err != nil {
//	    return err
//	}
//	if !copied {
//	    fmt.Println("destination already up to date")
//	}
func (c *Client) SyncObject(ctx context.Context, src, dst URL) (bool, error) {
	if err := validateLocation("syncObject", src); err != nil {
		return false, err
	}
	if err := validateLocation("syncObject", dst); err != nil {
		return false, err
	}

	dstHead, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(dst.Key),
	})
	if err == nil {
		// Destination exists; copy only when the source is strictly newer.
		srcHead, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(src.Bucket),
			Key:    aws.String(src.Key),
		})
		if err != nil {
			return false, s3errors.NewObjectError("syncObject", src.Bucket, src.Key, c.convertAWSError(err)).
				WithMessage("failed to head source object")
		}

		srcModified := aws.ToTime(srcHead.LastModified)
		dstModified := aws.ToTime(dstHead.LastModified)
		if !srcModified.After(dstModified) {
			return false, nil
		}
	}
	// A failed head is assumed to mean the destination is absent; any other
	// failure mode will surface on the copy below anyway.

	_, err = c.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dst.Bucket),
		Key:        aws.String(dst.Key),
		CopySource: aws.String(src.Bucket + "/" + src.Key),
	})
	if err != nil {
		return false, s3errors.NewObjectError("syncObject", dst.Bucket, dst.Key, c.convertAWSError(err)).
			WithMessage("failed to copy from " + src.String())
	}

	return true, nil
}

// Exists checks if an object exists in S3 using a HEAD request.
// Returns true if the object exists, false if it doesn't exist, and an error
// for other failures (network issues, permissions, etc.).
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return false, s3errors.NewError("exists", s3errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return false, s3errors.NewError("exists", s3errors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}

	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		converted := c.convertAWSError(err)
		if errors.Is(converted, s3errors.ErrObjectNotFound) {
			return false, nil
		}
		return false, s3errors.NewError("exists", converted).WithBucket(bucket).WithKey(key)
	}

	return true, nil
}

// validateLocation validates the bucket and key of an S3 location.
func validateLocation(op string, loc URL) error {
	if err := validation.ValidateBucketName(loc.Bucket); err != nil {
		return s3errors.NewError(op, s3errors.ErrInvalidBucketName).
			WithBucket(loc.Bucket).
			WithKey(loc.Key).
			WithMessage(err.Error())
	}
	if err := validation.ValidateObjectKey(loc.Key); err != nil {
		return s3errors.NewError(op, s3errors.ErrInvalidInput).
			WithBucket(loc.Bucket).
			WithKey(loc.Key).
			WithMessage(err.Error())
	}
	return nil
}

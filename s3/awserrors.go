// Package s3 maps AWS SDK failures onto this module's sentinel errors.
package s3

import (
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/dendrasystems/aws-utils/s3/errors"
)

// convertAWSError converts AWS SDK errors to our custom error types so that
// callers can check failures with errors.Is instead of matching SDK strings.
func (c *Client) convertAWSError(err error) error {
	if err == nil {
		return nil
	}

	// Check for specific AWS SDK error types
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return s3errors.ErrObjectNotFound
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return s3errors.ErrObjectNotFound
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return s3errors.ErrBucketNotFound
	}

	// Check for error messages that contain specific error codes
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "NotFound"), strings.Contains(errMsg, "NoSuchKey"):
		return s3errors.ErrObjectNotFound
	case strings.Contains(errMsg, "NoSuchBucket"):
		return s3errors.ErrBucketNotFound
	case strings.Contains(errMsg, "AccessDenied"):
		return s3errors.ErrAccessDenied
	}

	// Return the original error if we can't convert it
	return err
}

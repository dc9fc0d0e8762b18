// Package s3 provides S3 URL parsing and formatting helpers.
package s3

import (
	"fmt"
	"net/url"
	"strings"

	s3errors "github.com/dendrasystems/aws-utils/s3/errors"
)

// URL identifies an S3 object location by bucket and key.
type URL struct {
	// Bucket is the S3 bucket name
	Bucket string

	// Key is the S3 object key
	Key string
}

// ParseURL parses an S3 URL with either an s3:// or https:// scheme and
// extracts the bucket and key.
//
// Supported forms:
//   - s3://bucket/key
//   - https://bucket.s3.amazonaws.com/key (legacy virtual-hosted)
//   - https://bucket.s3.<region>.amazonaws.com/key (regional virtual-hosted)
//   - https://s3-<region>.amazonaws.com/bucket/key (legacy path-style)
//
// Returns ErrInvalidURL if the string is not a recognizable S3 URL.
func ParseURL(raw string) (URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, s3errors.NewError("parseURL", s3errors.ErrInvalidURL).
			WithMessage(fmt.Sprintf("%q is not a valid S3 URL", raw))
	}

	if u.Scheme != "s3" && u.Scheme != "https" {
		return URL{}, s3errors.NewError("parseURL", s3errors.ErrInvalidURL).
			WithMessage(fmt.Sprintf("%q is not a valid S3 URL", raw))
	}

	host := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	if u.Scheme == "s3" {
		return newURL("parseURL", raw, host, key)
	}

	switch {
	case strings.HasSuffix(host, ".s3.amazonaws.com"):
		// Legacy virtual-hosted: bucket.s3.amazonaws.com
		bucket := host[:strings.LastIndex(host, ".s3.")]
		return newURL("parseURL", raw, bucket, key)

	case strings.HasPrefix(host, "s3-") && strings.HasSuffix(host, ".amazonaws.com"):
		// Legacy path-style: s3-<region>.amazonaws.com/bucket/key
		bucket, rest, found := strings.Cut(key, "/")
		if !found {
			return URL{}, s3errors.NewError("parseURL", s3errors.ErrInvalidURL).
				WithMessage(fmt.Sprintf("%q is not a valid S3 URL", raw))
		}
		return newURL("parseURL", raw, bucket, strings.TrimLeft(rest, "/"))

	case strings.HasSuffix(host, ".amazonaws.com"):
		// Regional virtual-hosted: the first host label is the bucket
		bucket, _, _ := strings.Cut(host, ".")
		return newURL("parseURL", raw, bucket, key)
	}

	return URL{}, s3errors.NewError("parseURL", s3errors.ErrInvalidURL).
		WithMessage(fmt.Sprintf("%q is not a valid S3 URL", raw))
}

// newURL builds a URL, rejecting locations with an empty bucket.
func newURL(op, raw, bucket, key string) (URL, error) {
	if bucket == "" {
		return URL{}, s3errors.NewError(op, s3errors.ErrInvalidURL).
			WithMessage(fmt.Sprintf("%q is not a valid S3 URL", raw))
	}
	return URL{Bucket: bucket, Key: key}, nil
}

// String returns the location in s3://bucket/key form.
func (u URL) String() string {
	return fmt.Sprintf("s3://%s/%s", u.Bucket, u.Key)
}

// HTTPSURL returns the location as a regional virtual-hosted https:// URL.
func (u URL) HTTPSURL(region string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, region, u.Key)
}

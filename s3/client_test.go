package s3

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/dendrasystems/aws-utils/s3/errors"
	"github.com/dendrasystems/aws-utils/s3/internal/testutil"
)

func TestNew_WithCustomAWSConfig(t *testing.T) {
	client, err := New(context.Background(), WithAWSConfig(&aws.Config{Region: "eu-west-1"}))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", client.Region())
}

func TestNew_RegionOptionOverridesConfig(t *testing.T) {
	client, err := New(context.Background(),
		WithAWSConfig(&aws.Config{Region: "us-east-2"}),
		WithRegion("eu-central-1"),
	)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", client.Region())
}

func TestNew_DefaultRegionFallback(t *testing.T) {
	client, err := New(context.Background(), WithAWSConfig(&aws.Config{}))
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", client.Region())
}

func TestNew_AppliesClientOptions(t *testing.T) {
	httpClient := &http.Client{Timeout: time.Second}
	client, err := New(context.Background(),
		WithAWSConfig(&aws.Config{Region: "eu-west-1"}),
		WithMaxRetries(7),
		WithConcurrency(4),
		WithEndpoint("http://localhost:4566"),
		WithForcePathStyle(true),
		WithHTTPClient(httpClient),
	)
	require.NoError(t, err)
	assert.Equal(t, 7, client.clientCfg.MaxRetries)
	assert.Equal(t, 4, client.clientCfg.Concurrency)
	assert.Equal(t, "http://localhost:4566", client.clientCfg.Endpoint)
	assert.True(t, client.clientCfg.ForcePathStyle)
	assert.Same(t, httpClient, client.clientCfg.HTTPClient)
}

func TestNewWithClient_Defaults(t *testing.T) {
	client := NewWithClient(&testutil.MockS3Client{})
	assert.Equal(t, defaultDirConcurrency, client.clientCfg.Concurrency)
	assert.NotNil(t, client.fs)
}

func TestNewWithClient_WithFilesystem(t *testing.T) {
	memFs := afero.NewMemMapFs()
	client := NewWithClient(&testutil.MockS3Client{}, WithFilesystem(memFs))
	assert.Same(t, memFs, client.fs)
}

func TestConvertAWSError(t *testing.T) {
	client := NewWithClient(&testutil.MockS3Client{})
	unmapped := errors.New("api error SlowDown: Please reduce your request rate")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "typed not found", err: &types.NotFound{}, want: s3errors.ErrObjectNotFound},
		{name: "typed no such key", err: &types.NoSuchKey{}, want: s3errors.ErrObjectNotFound},
		{name: "typed no such bucket", err: &types.NoSuchBucket{}, want: s3errors.ErrBucketNotFound},
		{name: "not found message", err: errors.New("api error NotFound: Not Found"), want: s3errors.ErrObjectNotFound},
		{name: "no such bucket message", err: errors.New("NoSuchBucket: bucket missing"), want: s3errors.ErrBucketNotFound},
		{name: "access denied message", err: errors.New("api error AccessDenied: Access Denied"), want: s3errors.ErrAccessDenied},
		{name: "unmapped passes through", err: unmapped, want: unmapped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.convertAWSError(tt.err))
		})
	}
}

func TestWithConcurrency_IgnoresNonPositive(t *testing.T) {
	cfg := &ClientConfig{Concurrency: defaultDirConcurrency}
	WithConcurrency(0)(cfg)
	assert.Equal(t, defaultDirConcurrency, cfg.Concurrency)

	WithConcurrency(-3)(cfg)
	assert.Equal(t, defaultDirConcurrency, cfg.Concurrency)
}

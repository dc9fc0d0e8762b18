package s3

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/dendrasystems/aws-utils/s3/errors"
	"github.com/dendrasystems/aws-utils/s3/internal/testutil"
)

// newMemFs builds an in-memory filesystem with the given files.
func newMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	memFs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(memFs, name, []byte(content), 0o644))
	}
	return memFs
}

func TestUploadFile_SetsAttributes(t *testing.T) {
	memFs := newMemFs(t, map[string]string{
		"some/file.png": "\x89PNG\r\n\x1a\nfake image data",
	})

	mockClient := &testutil.MockS3Client{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "test", aws.ToString(params.Bucket))
			assert.Equal(t, "output/file.png", aws.ToString(params.Key))
			assert.Equal(t, "image/png", aws.ToString(params.ContentType))
			assert.Equal(t, "attachment", aws.ToString(params.ContentDisposition))

			body, err := io.ReadAll(params.Body)
			require.NoError(t, err)
			assert.EqualValues(t, aws.ToInt64(params.ContentLength), len(body))

			return &s3.PutObjectOutput{ETag: aws.String("mock-etag")}, nil
		},
	}
	client := NewWithClient(mockClient, WithFilesystem(memFs))

	result, err := client.UploadFile(context.Background(), "test", "output/file.png", "some/file.png",
		WithContentType("image/png"),
		WithContentDisposition("attachment"),
	)
	require.NoError(t, err)
	assert.Equal(t, "output/file.png", result.Key)
	assert.Equal(t, "mock-etag", result.ETag)
	assert.EqualValues(t, 1, mockClient.PutObjectCalls.Load())
}

func TestUploadFile_DetectsContentType(t *testing.T) {
	memFs := newMemFs(t, map[string]string{
		"data/report.json": `{"status": "ok"}`,
	})

	mockClient := &testutil.MockS3Client{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Contains(t, aws.ToString(params.ContentType), "json")
			return &s3.PutObjectOutput{}, nil
		},
	}
	client := NewWithClient(mockClient, WithFilesystem(memFs))

	_, err := client.UploadFile(context.Background(), "test", "report.json", "data/report.json")
	require.NoError(t, err)
}

func TestUploadFile_SetsMetadata(t *testing.T) {
	memFs := newMemFs(t, map[string]string{"file.txt": "hello"})

	mockClient := &testutil.MockS3Client{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			require.NotNil(t, params.Metadata)
			assert.Equal(t, "test-author", params.Metadata["author"])
			return &s3.PutObjectOutput{}, nil
		},
	}
	client := NewWithClient(mockClient, WithFilesystem(memFs))

	_, err := client.UploadFile(context.Background(), "test", "file.txt", "file.txt",
		WithMetadata(map[string]string{"author": "test-author"}),
	)
	require.NoError(t, err)
}

func TestUploadFile_InvalidInput(t *testing.T) {
	memFs := newMemFs(t, map[string]string{"file.txt": "hello"})

	tests := []struct {
		name        string
		bucket      string
		key         string
		path        string
		errContains string
	}{
		{
			name:        "empty bucket",
			bucket:      "",
			key:         "k",
			path:        "file.txt",
			errContains: "bucket name cannot be empty",
		},
		{
			name:        "invalid bucket name",
			bucket:      "Invalid_Bucket!",
			key:         "k",
			path:        "file.txt",
			errContains: "bucket name can only contain",
		},
		{
			name:        "empty key",
			bucket:      "test",
			key:         "",
			path:        "file.txt",
			errContains: "object key cannot be empty",
		},
		{
			name:        "empty path",
			bucket:      "test",
			key:         "k",
			path:        "",
			errContains: "filepath cannot be empty",
		},
		{
			name:        "missing file",
			bucket:      "test",
			key:         "k",
			path:        "no/such/file.txt",
			errContains: "file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &testutil.MockS3Client{}
			client := NewWithClient(mockClient, WithFilesystem(memFs))

			_, err := client.UploadFile(context.Background(), tt.bucket, tt.key, tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.EqualValues(t, 0, mockClient.PutObjectCalls.Load())
		})
	}
}

func TestUploadFile_MapsSDKErrors(t *testing.T) {
	memFs := newMemFs(t, map[string]string{"file.txt": "hello"})

	mockClient := &testutil.MockS3Client{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, errors.New("api error AccessDenied: Access Denied")
		},
	}
	client := NewWithClient(mockClient, WithFilesystem(memFs))

	_, err := client.UploadFile(context.Background(), "test", "k", "file.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, s3errors.ErrAccessDenied))
}

func TestUploadFile_RejectsDirectory(t *testing.T) {
	memFs := newMemFs(t, map[string]string{"src/file.txt": "hello"})

	client := NewWithClient(&testutil.MockS3Client{}, WithFilesystem(memFs))

	_, err := client.UploadFile(context.Background(), "test", "k", "src")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestUploadDir_UploadsAllFiles(t *testing.T) {
	memFs := newMemFs(t, map[string]string{
		"src/dir1/file1.txt": "one",
		"src/dir1/file2.txt": "two",
		"src/dir2/file3.txt": "three",
	})

	var gotKeys []string
	mockClient := &testutil.MockS3Client{}
	mockClient.PutObjectFunc = func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotKeys = append(gotKeys, aws.ToString(params.Key))
		return &s3.PutObjectOutput{}, nil
	}
	// Concurrency 1 so the mock can record keys without locking.
	client := NewWithClient(mockClient, WithFilesystem(memFs), WithConcurrency(1))

	result, err := client.UploadDir(context.Background(), "test", "output/", "src")
	require.NoError(t, err)
	assert.Equal(t, 3, result.FilesUploaded)
	assert.EqualValues(t, len("one")+len("two")+len("three"), result.BytesUploaded)
	assert.Empty(t, result.Errors)

	sort.Strings(gotKeys)
	assert.Equal(t, []string{
		"output/dir1/file1.txt",
		"output/dir1/file2.txt",
		"output/dir2/file3.txt",
	}, gotKeys)
}

func TestUploadDir_CollectsPerFileErrors(t *testing.T) {
	memFs := newMemFs(t, map[string]string{
		"src/good.txt": "fine",
		"src/bad.txt":  "broken",
	})

	mockClient := &testutil.MockS3Client{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			if aws.ToString(params.Key) == "output/bad.txt" {
				return nil, errors.New("api error AccessDenied: Access Denied")
			}
			return &s3.PutObjectOutput{}, nil
		},
	}
	client := NewWithClient(mockClient, WithFilesystem(memFs), WithConcurrency(1))

	result, err := client.UploadDir(context.Background(), "test", "output/", "src")
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesUploaded)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "output/bad.txt", result.Errors[0].Key)
	assert.Contains(t, result.Errors[0].Message, "access denied")
}

func TestUploadDir_EmptyPrefix(t *testing.T) {
	memFs := newMemFs(t, map[string]string{"src/file.txt": "hello"})

	mockClient := &testutil.MockS3Client{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "file.txt", aws.ToString(params.Key))
			return &s3.PutObjectOutput{}, nil
		},
	}
	client := NewWithClient(mockClient, WithFilesystem(memFs))

	result, err := client.UploadDir(context.Background(), "test", "", "src")
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesUploaded)
}

func TestUploadDir_InvalidBucketName(t *testing.T) {
	memFs := newMemFs(t, map[string]string{"src/file.txt": "hello"})

	mockClient := &testutil.MockS3Client{}
	client := NewWithClient(mockClient, WithFilesystem(memFs))

	_, err := client.UploadDir(context.Background(), "Invalid_Bucket!", "output/", "src")
	require.Error(t, err)
	assert.True(t, errors.Is(err, s3errors.ErrInvalidBucketName))
	assert.EqualValues(t, 0, mockClient.PutObjectCalls.Load())
}

func TestUploadDir_NotADirectory(t *testing.T) {
	memFs := newMemFs(t, map[string]string{"file.txt": "hello"})

	client := NewWithClient(&testutil.MockS3Client{}, WithFilesystem(memFs))

	_, err := client.UploadDir(context.Background(), "test", "output/", "file.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

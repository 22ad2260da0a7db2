package errors

import (
	"errors"
	"fmt"
	"testing"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "op only",
			err:  NewError("ensureBucket", cause),
			want: "labelpipe.ensureBucket: connection reset",
		},
		{
			name: "with bucket",
			err:  NewBucketError("ensureBucket", "my-bucket", cause),
			want: "labelpipe.ensureBucket bucket my-bucket: connection reset",
		},
		{
			name: "with bucket and key",
			err:  NewObjectError("uploadFile", "my-bucket", "uploads/a.jpg", cause),
			want: "labelpipe.uploadFile my-bucket/uploads/a.jpg: connection reset",
		},
		{
			name: "with key only",
			err:  NewError("detectLabels", cause).WithKey("uploads/a.jpg"),
			want: "labelpipe.detectLabels object uploads/a.jpg: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := NewObjectError("uploadFile", "my-bucket", "a.jpg", ErrAccessDenied)

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.True(t, IsAccessDenied(err))
}

func TestErrorWithMessage(t *testing.T) {
	err := NewError("uploadFile", ErrInvalidInput).
		WithBucket("my-bucket").
		WithMessage("bucket name cannot be empty")

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "bucket name cannot be empty")
}

func TestClassifyS3(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "typed not found",
			err:  &types.NotFound{},
			want: ErrBucketNotFound,
		},
		{
			name: "typed no such bucket",
			err:  &types.NoSuchBucket{},
			want: ErrBucketNotFound,
		},
		{
			name: "typed no such key",
			err:  &types.NoSuchKey{},
			want: ErrObjectNotFound,
		},
		{
			name: "typed bucket already exists",
			err:  &types.BucketAlreadyExists{},
			want: ErrBucketAlreadyExists,
		},
		{
			name: "typed bucket owned by you",
			err:  &types.BucketAlreadyOwnedByYou{},
			want: ErrBucketAlreadyExists,
		},
		{
			name: "api error code not found",
			err:  &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"},
			want: ErrBucketNotFound,
		},
		{
			name: "api error code access denied",
			err:  &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"},
			want: ErrAccessDenied,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("head bucket: %w", &smithy.GenericAPIError{Code: "NoSuchBucket"}),
			want: ErrBucketNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyS3(tt.err))
		})
	}
}

func TestClassifyS3Passthrough(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	assert.Equal(t, cause, ClassifyS3(cause))
	assert.NoError(t, ClassifyS3(nil))
}

func TestClassifyConfig(t *testing.T) {
	profileErr := awsconfig.SharedConfigProfileNotExistError{Profile: "staging"}

	err := ClassifyConfig(fmt.Errorf("loading config: %w", profileErr))
	require.ErrorIs(t, err, ErrProfileNotFound)
	assert.Contains(t, err.Error(), `"staging"`)
	assert.True(t, IsProfileNotFound(err))

	other := errors.New("some other failure")
	assert.Equal(t, other, ClassifyConfig(other))
}

func TestIsCredentials(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil",
			err:  nil,
			want: false,
		},
		{
			name: "sentinel",
			err:  fmt.Errorf("detect: %w", ErrNoCredentials),
			want: true,
		},
		{
			name: "unrecognized client",
			err:  &smithy.GenericAPIError{Code: "UnrecognizedClientException", Message: "invalid security token"},
			want: true,
		},
		{
			name: "expired token",
			err:  &smithy.GenericAPIError{Code: "ExpiredTokenException", Message: "token expired"},
			want: true,
		},
		{
			name: "resolution failure message",
			err:  errors.New("operation error Rekognition: DetectLabels, get identity: get credentials: failed to refresh cached credentials"),
			want: true,
		},
		{
			name: "unrelated api error",
			err:  &smithy.GenericAPIError{Code: "InvalidImageFormatException", Message: "bad image"},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("dial tcp: connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCredentials(tt.err))
		})
	}
}

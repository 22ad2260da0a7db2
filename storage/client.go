// Package storage provides the S3 side of the pipeline: bucket
// provisioning and batch file uploads.
//
// The Client wraps the AWS SDK S3 client behind a narrow interface so
// operations can be tested against mocks, and reads local files through a
// filesystem abstraction so tests never touch the real disk.
package storage

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/visionforge/labelpipe/internal/awsapi"
	"github.com/visionforge/labelpipe/internal/fsys"
)

// DefaultRegion is the region S3 assumes when a bucket is created without
// a location constraint. CreateBucket rejects a constraint naming it, so
// EnsureBucket omits the constraint for this region.
const DefaultRegion = "us-east-1"

// Client provides bucket provisioning and object upload operations.
type Client struct {
	// s3Client is the underlying AWS SDK S3 client
	s3Client awsapi.S3API

	// fs is the filesystem abstraction for reading upload sources
	fs fsys.Filesystem

	// logger records operation progress; nil disables logging
	logger *slog.Logger
}

// New creates a new storage client from a resolved AWS configuration.
//
// Example:
//
//	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("eu-west-1"))
//	if err != nil {
//	    return err
//	}
//	store := storage.New(cfg, storage.WithLogger(logger))
func New(cfg aws.Config, opts ...Option) *Client {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Client{
		s3Client: s3.NewFromConfig(cfg),
		fs:       options.filesystem,
		logger:   options.logger,
	}
}

// NewWithClient creates a new storage client with a custom S3API
// implementation. This is primarily used for testing with mocked clients.
func NewWithClient(s3Client awsapi.S3API, opts ...Option) *Client {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Client{
		s3Client: s3Client,
		fs:       options.filesystem,
		logger:   options.logger,
	}
}

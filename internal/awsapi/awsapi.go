// Package awsapi defines interfaces for the AWS operations used by the
// pipeline to enable testing and mocking.
package awsapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API defines the interface for the S3 operations used by the pipeline.
// This interface allows for mocking in tests and potential future implementations.
type S3API interface {
	// HeadBucket checks whether a bucket exists and is accessible
	HeadBucket(
		ctx context.Context,
		params *s3.HeadBucketInput,
		optFns ...func(*s3.Options),
	) (*s3.HeadBucketOutput, error)

	// CreateBucket creates a new S3 bucket
	CreateBucket(
		ctx context.Context,
		params *s3.CreateBucketInput,
		optFns ...func(*s3.Options),
	) (*s3.CreateBucketOutput, error)

	// PutObject uploads an object to S3
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)

	// HeadObject retrieves metadata about an object without retrieving the object itself
	HeadObject(
		ctx context.Context,
		params *s3.HeadObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.HeadObjectOutput, error)
}

// RekognitionAPI defines the interface for the Rekognition operations used
// by the pipeline.
type RekognitionAPI interface {
	// DetectLabels detects labels in an image stored in an S3 bucket
	DetectLabels(
		ctx context.Context,
		params *rekognition.DetectLabelsInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.DetectLabelsOutput, error)
}

// Verify that the AWS clients implement our interfaces
var (
	_ S3API          = (*s3.Client)(nil)
	_ RekognitionAPI = (*rekognition.Client)(nil)
)

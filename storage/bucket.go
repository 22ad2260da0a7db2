package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/internal/validation"
)

// EnsureBucket verifies that the bucket exists and creates it when the
// existence check reports not-found. It returns true when the bucket was
// created by this call.
//
// When the target region is the S3 default, the create request carries no
// location constraint; CreateBucket rejects a constraint naming us-east-1.
// Any existence-check failure other than not-found propagates unmodified:
// this method never retries and never suppresses permission errors.
//
// Returns:
//   - bool: true if the bucket was created, false if it already existed
//   - error: Returns an error if the check or creation fails
//
// Errors:
//   - ErrInvalidBucketName: If the bucket name violates S3 naming rules
//   - ErrAccessDenied: If the credentials lack permission for HeadBucket or CreateBucket
//   - Network errors or AWS SDK errors wrapped in Error type
func (c *Client) EnsureBucket(ctx context.Context, bucket, region string) (bool, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return false, err
	}

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		if c.logger != nil {
			c.logger.InfoContext(ctx, "bucket exists",
				"bucket", bucket)
		}
		return false, nil
	}

	converted := piperrors.ClassifyS3(err)
	if !piperrors.IsBucketNotFound(converted) {
		return false, piperrors.NewBucketError("ensureBucket", bucket, converted)
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "creating bucket",
			"bucket", bucket,
			"region", region)
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	if region != "" && region != DefaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	if _, err := c.s3Client.CreateBucket(ctx, input); err != nil {
		return false, piperrors.NewBucketError("ensureBucket", bucket, piperrors.ClassifyS3(err))
	}

	return true, nil
}

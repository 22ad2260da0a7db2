package errors

import (
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ClassifyS3 converts AWS SDK errors from S3 calls to this package's
// sentinel errors where a mapping exists. Errors without a mapping are
// returned unchanged.
func ClassifyS3(err error) error {
	if err == nil {
		return nil
	}

	// Check for specific AWS SDK error types
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return ErrBucketNotFound
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return ErrBucketNotFound
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return ErrObjectNotFound
	}

	var bucketAlreadyExists *types.BucketAlreadyExists
	if errors.As(err, &bucketAlreadyExists) {
		return ErrBucketAlreadyExists
	}

	var bucketAlreadyOwned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &bucketAlreadyOwned) {
		return ErrBucketAlreadyExists
	}

	// HeadBucket failures surface as generic API errors, so fall back to
	// the error code carried on the smithy error.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return ErrBucketNotFound
		case "NoSuchKey":
			return ErrObjectNotFound
		case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
			return ErrBucketAlreadyExists
		case "AccessDenied":
			return ErrAccessDenied
		}
	}

	// Return the original error if we can't convert it
	return err
}

// ClassifyConfig converts AWS shared-config loading errors to this
// package's sentinel errors. A missing named profile maps to
// ErrProfileNotFound with the profile name preserved in the message.
func ClassifyConfig(err error) error {
	if err == nil {
		return nil
	}

	var profileErr awsconfig.SharedConfigProfileNotExistError
	if errors.As(err, &profileErr) {
		return fmt.Errorf("%w: profile %q", ErrProfileNotFound, profileErr.Profile)
	}

	return err
}

// IsCredentials checks if an error indicates missing or rejected AWS
// credentials. It recognizes both credential-resolution failures (which
// the SDK reports without a typed error, so the message is matched) and
// the API error codes services return when the signing identity is
// invalid or expired.
func IsCredentials(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoCredentials) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException",
			"InvalidClientTokenId",
			"ExpiredToken",
			"ExpiredTokenException",
			"SignatureDoesNotMatch",
			"InvalidSignatureException",
			"MissingAuthenticationToken":
			return true
		}
	}

	// Resolution failures from the default credential chain carry no API
	// error code, only a message from the retrieval layer.
	msg := err.Error()
	return strings.Contains(msg, "get credentials") ||
		strings.Contains(msg, "failed to retrieve credentials") ||
		strings.Contains(msg, "no EC2 IMDS role found")
}

// Package errors provides error types and handling for pipeline operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a pipeline operation error with context about the
// operation that failed. It wraps the underlying AWS SDK or filesystem
// error with additional context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "ensureBucket", "uploadFile", "detectLabels")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("labelpipe.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("labelpipe.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("labelpipe.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("labelpipe.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for common pipeline operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("labelpipe: bucket not found")

	// ErrBucketAlreadyExists indicates that the bucket already exists
	ErrBucketAlreadyExists = errors.New("labelpipe: bucket already exists")

	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("labelpipe: object not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("labelpipe: access denied")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("labelpipe: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("labelpipe: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("labelpipe: invalid object key")

	// ErrNoCredentials indicates that AWS credentials are missing or were rejected
	ErrNoCredentials = errors.New("labelpipe: no valid credentials")

	// ErrProfileNotFound indicates that the named credential profile does not exist
	ErrProfileNotFound = errors.New("labelpipe: credential profile not found")

	// ErrEmptyBatch indicates that no items were uploaded, leaving nothing to detect
	ErrEmptyBatch = errors.New("labelpipe: no files were uploaded")
)

// IsBucketNotFound checks if an error indicates that a bucket was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsAccessDenied checks if an error indicates access was denied.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsProfileNotFound checks if an error indicates the credential profile was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

// IsEmptyBatch checks if an error indicates the upload batch produced no records.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsEmptyBatch(err error) bool {
	return errors.Is(err, ErrEmptyBatch)
}

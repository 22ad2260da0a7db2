package storage

import (
	"bytes"
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/internal/validation"
)

// sniffLen bounds how many bytes of a file are handed to content sniffing.
const sniffLen = 512

// UploadRecord describes one successfully uploaded object. The ETag is
// opaque and used only for logging; it is never compared.
type UploadRecord struct {
	// Key is the object key within the bucket
	Key string

	// ETag is the entity tag reported by S3 after the upload
	ETag string

	// Size is the object size in bytes as confirmed by S3
	Size int64
}

// RemoteKey derives the object key for a local path: the file's base name
// under the given prefix, or the bare base name when the prefix is empty.
// Trailing slashes on the prefix are ignored.
func RemoteKey(prefix, path string) string {
	name := filepath.Base(path)
	if prefix == "" {
		return name
	}
	return strings.TrimRight(prefix, "/") + "/" + name
}

// UploadFile uploads a single local file to the bucket under the given
// key and confirms the transfer by re-fetching the object's metadata.
//
// The local path must resolve to a regular file. A content type is
// inferred from the filename extension, falling back to sniffing the file
// head; when neither yields a match the object is stored without a
// content-type hint.
//
// Returns:
//   - *UploadRecord: The uploaded object's key, ETag and confirmed size
//   - error: Returns an error if reading, uploading or confirming fails
//
// Errors:
//   - ErrInvalidInput: If bucket is empty or the path is not a regular file
//   - ErrInvalidObjectKey: If the derived key is invalid
//   - Filesystem errors if the file cannot be read
//   - Network errors or AWS SDK errors wrapped in Error type
func (c *Client) UploadFile(ctx context.Context, bucket, key, path string) (*UploadRecord, error) {
	if bucket == "" {
		return nil, piperrors.NewError("uploadFile", piperrors.ErrInvalidInput).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return nil, err
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		return nil, piperrors.NewObjectError("uploadFile", bucket, key, err)
	}
	if !info.Mode().IsRegular() {
		return nil, piperrors.NewObjectError("uploadFile", bucket, key, piperrors.ErrInvalidInput).
			WithMessage("path is not a regular file")
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, piperrors.NewObjectError("uploadFile", bucket, key, err)
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "uploading file",
			"path", path,
			"bucket", bucket,
			"key", key,
			"size", len(data))
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType := detectContentType(path, data); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3Client.PutObject(ctx, input); err != nil {
		return nil, piperrors.NewObjectError("uploadFile", bucket, key, piperrors.ClassifyS3(err))
	}

	// Confirm the transfer and capture the object's ETag
	head, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, piperrors.NewObjectError("uploadFile", bucket, key, piperrors.ClassifyS3(err))
	}

	record := &UploadRecord{
		Key:  key,
		ETag: aws.ToString(head.ETag),
		Size: aws.ToInt64(head.ContentLength),
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "uploaded file",
			"bucket", bucket,
			"key", key,
			"etag", record.ETag)
	}

	return record, nil
}

// UploadBatch uploads each local path in order under keys derived from
// the prefix. Paths that do not resolve to a regular file are logged as a
// warning and skipped without aborting the batch; any other failure stops
// the batch and returns the records gathered so far alongside the error.
//
// The returned slice holds one record per successful upload, in input
// order. It may be empty; callers decide whether that is fatal.
func (c *Client) UploadBatch(ctx context.Context, bucket, prefix string, paths []string) ([]UploadRecord, error) {
	records := make([]UploadRecord, 0, len(paths))

	for _, path := range paths {
		info, err := c.fs.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			if c.logger != nil {
				c.logger.WarnContext(ctx, "skipping missing file",
					"path", path)
			}
			continue
		}

		record, err := c.UploadFile(ctx, bucket, RemoteKey(prefix, path), path)
		if err != nil {
			return records, err
		}
		records = append(records, *record)
	}

	return records, nil
}

// detectContentType infers a content type for the upload, preferring the
// filename extension and falling back to sniffing the file head. An empty
// string means no match, and no content-type hint is sent.
func detectContentType(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	if mt := mimetype.Detect(data); !mt.Is("application/octet-stream") {
		return mt.String()
	}

	return ""
}

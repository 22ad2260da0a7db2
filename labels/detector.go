// Package labels provides the Rekognition side of the pipeline: per-object
// label detection normalized into ordered name/confidence pairs.
package labels

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/internal/awsapi"
)

const (
	// DefaultMaxLabels is the default bound on labels returned per object.
	DefaultMaxLabels = 25

	// DefaultMinConfidence is the default confidence threshold (0-100 scale).
	DefaultMinConfidence = 70.0
)

// Label is one detected category with its confidence score on a 0-100 scale.
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Detector detects labels for objects stored in S3 using Rekognition.
type Detector struct {
	// api is the underlying AWS SDK Rekognition client
	api awsapi.RekognitionAPI

	// maxLabels bounds how many labels a single detection call returns
	maxLabels int

	// minConfidence filters labels below this confidence (0-100 scale)
	minConfidence float64

	// logger records operation progress; nil disables logging
	logger *slog.Logger
}

// New creates a new Detector from a resolved AWS configuration.
func New(cfg aws.Config, opts ...Option) *Detector {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Detector{
		api:           rekognition.NewFromConfig(cfg),
		maxLabels:     options.maxLabels,
		minConfidence: options.minConfidence,
		logger:        options.logger,
	}
}

// NewWithClient creates a new Detector with a custom RekognitionAPI
// implementation. This is primarily used for testing with mocked clients.
func NewWithClient(api awsapi.RekognitionAPI, opts ...Option) *Detector {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Detector{
		api:           api,
		maxLabels:     options.maxLabels,
		minConfidence: options.minConfidence,
		logger:        options.logger,
	}
}

// DetectLabels invokes Rekognition for one object and normalizes the
// response into an ordered label list. Response ordering is preserved and
// only the name and confidence of each label are kept.
//
// Returns:
//   - []Label: The detected labels in response order; empty when nothing
//     cleared the confidence threshold
//   - error: Returns an error if the detection call fails
//
// Errors:
//   - ErrInvalidInput: If bucket or key is empty
//   - ErrNoCredentials: If credentials are missing or were rejected
//   - Network errors or AWS SDK errors wrapped in Error type
func (d *Detector) DetectLabels(ctx context.Context, bucket, key string) ([]Label, error) {
	if bucket == "" {
		return nil, piperrors.NewError("detectLabels", piperrors.ErrInvalidInput).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if key == "" {
		return nil, piperrors.NewError("detectLabels", piperrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("object key cannot be empty")
	}

	if d.logger != nil {
		d.logger.InfoContext(ctx, "detecting labels",
			"bucket", bucket,
			"key", key)
	}

	out, err := d.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image: &rektypes.Image{
			S3Object: &rektypes.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		MaxLabels:     aws.Int32(int32(d.maxLabels)),
		MinConfidence: aws.Float32(float32(d.minConfidence)),
	})
	if err != nil {
		if piperrors.IsCredentials(err) {
			return nil, piperrors.NewObjectError("detectLabels", bucket, key, piperrors.ErrNoCredentials)
		}
		return nil, piperrors.NewObjectError("detectLabels", bucket, key, err)
	}

	labels := make([]Label, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		labels = append(labels, Label{
			Name:       aws.ToString(l.Name),
			Confidence: confidenceValue(l.Confidence),
		})
	}

	if d.logger != nil {
		d.logger.InfoContext(ctx, "detected labels",
			"bucket", bucket,
			"key", key,
			"count", len(labels))
	}

	return labels, nil
}

// confidenceValue converts the SDK's confidence to float64. The wire value
// is float32, so it is re-parsed at that precision to keep 91.2 from
// widening into 91.19999694824219.
func confidenceValue(c *float32) float64 {
	if c == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(*c), 'f', -1, 32), 64)
	if err != nil {
		return float64(*c)
	}
	return v
}

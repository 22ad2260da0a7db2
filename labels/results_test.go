package labels

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/internal/testutil"
)

// TestDetector_DetectAll_IteratesInOrder walks a batch of keys and checks
// the iterator yields one result per key, in request order.
func TestDetector_DetectAll_IteratesInOrder(t *testing.T) {
	responses := map[string][]rektypes.Label{
		"uploads/a.jpg": {
			{Name: aws.String("Cat"), Confidence: aws.Float32(91.2)},
		},
		"uploads/b.png": {
			{Name: aws.String("Tree"), Confidence: aws.Float32(80)},
			{Name: aws.String("Plant"), Confidence: aws.Float32(75.5)},
		},
	}

	var calledKeys []string
	mockClient := &testutil.MockRekognitionClient{
		DetectLabelsFunc: func(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
			key := aws.ToString(params.Image.S3Object.Name)
			calledKeys = append(calledKeys, key)
			return &rekognition.DetectLabelsOutput{Labels: responses[key]}, nil
		},
	}

	detector := NewWithClient(mockClient)
	results := detector.DetectAll(context.Background(), "demo-bucket", []string{"uploads/a.jpg", "uploads/b.png"})

	require.True(t, results.Next())
	key, labels := results.Item()
	assert.Equal(t, "uploads/a.jpg", key)
	assert.Equal(t, []Label{{Name: "Cat", Confidence: 91.2}}, labels)

	require.True(t, results.Next())
	key, labels = results.Item()
	assert.Equal(t, "uploads/b.png", key)
	assert.Equal(t, []Label{
		{Name: "Tree", Confidence: 80},
		{Name: "Plant", Confidence: 75.5},
	}, labels)

	assert.False(t, results.Next())
	assert.NoError(t, results.Err())
	assert.Equal(t, []string{"uploads/a.jpg", "uploads/b.png"}, calledKeys)
}

// TestDetector_DetectAll_IsLazy verifies no Rekognition call happens until
// the iterator is advanced.
func TestDetector_DetectAll_IsLazy(t *testing.T) {
	calls := 0
	mockClient := &testutil.MockRekognitionClient{
		DetectLabelsFunc: func(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
			calls++
			return &rekognition.DetectLabelsOutput{}, nil
		},
	}

	detector := NewWithClient(mockClient)
	results := detector.DetectAll(context.Background(), "demo-bucket", []string{"uploads/a.jpg"})
	assert.Equal(t, 0, calls)

	require.True(t, results.Next())
	assert.Equal(t, 1, calls)
}

// TestDetector_DetectAll_StopsOnFirstFailure verifies iteration halts at the
// failing key and later keys are never requested.
func TestDetector_DetectAll_StopsOnFirstFailure(t *testing.T) {
	calls := 0
	mockClient := &testutil.MockRekognitionClient{
		DetectLabelsFunc: func(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
			calls++
			key := aws.ToString(params.Image.S3Object.Name)
			if key == "uploads/b.png" {
				return nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"}
			}
			return &rekognition.DetectLabelsOutput{
				Labels: []rektypes.Label{{Name: aws.String("Cat"), Confidence: aws.Float32(91.2)}},
			}, nil
		},
	}

	detector := NewWithClient(mockClient)
	keys := []string{"uploads/a.jpg", "uploads/b.png", "uploads/c.jpg"}
	results := detector.DetectAll(context.Background(), "demo-bucket", keys)

	require.True(t, results.Next())
	key, _ := results.Item()
	assert.Equal(t, "uploads/a.jpg", key)

	assert.False(t, results.Next())
	require.Error(t, results.Err())
	assert.Equal(t, 2, calls)

	// iteration stays stopped and the error sticks
	assert.False(t, results.Next())
	require.Error(t, results.Err())
	assert.Equal(t, 2, calls)
}

// TestDetector_DetectAll_CredentialsFailure checks a rejected token on the
// very first key surfaces through Err as a credentials error.
func TestDetector_DetectAll_CredentialsFailure(t *testing.T) {
	mockClient := &testutil.MockRekognitionClient{
		DetectLabelsFunc: func(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
			return nil, &smithy.GenericAPIError{
				Code:    "UnrecognizedClientException",
				Message: "The security token included in the request is invalid.",
			}
		},
	}

	detector := NewWithClient(mockClient)
	results := detector.DetectAll(context.Background(), "demo-bucket", []string{"uploads/a.jpg"})

	assert.False(t, results.Next())
	assert.ErrorIs(t, results.Err(), piperrors.ErrNoCredentials)
}

// TestDetector_DetectAll_EmptyKeys verifies an empty batch terminates
// immediately without error.
func TestDetector_DetectAll_EmptyKeys(t *testing.T) {
	mockClient := &testutil.MockRekognitionClient{
		DetectLabelsFunc: func(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
			t.Fatal("DetectLabels must not be called for an empty batch")
			return nil, nil
		},
	}

	detector := NewWithClient(mockClient)
	results := detector.DetectAll(context.Background(), "demo-bucket", nil)

	assert.False(t, results.Next())
	assert.NoError(t, results.Err())
}

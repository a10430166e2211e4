package rekognition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/assetflow/labelworker/internal/config"
	"github.com/assetflow/labelworker/internal/domain"
)

// Detector performs single-shot custom label detection against the
// configured model version. It makes exactly one backend call per
// invocation: there is no retry here, callers rely on queue redelivery.
type Detector struct {
	logger *slog.Logger
	client API
	config config.RekognitionConfig
}

// NewDetector creates a Detector with the provided dependencies.
func NewDetector(logger *slog.Logger, client API, cfg config.RekognitionConfig) (*Detector, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, errors.New("rekognition client cannot be nil")
	}
	if cfg.ProjectVersionARN == "" {
		return nil, errors.New("project version ARN cannot be empty")
	}

	return &Detector{
		logger: logger.With("component", "label_detector"),
		client: client,
		config: cfg,
	}, nil
}

// DetectLabels runs custom label detection for one S3-hosted image and
// returns the label names in backend order. An empty result is valid and
// means the model recognized nothing.
func (d *Detector) DetectLabels(
	ctx context.Context,
	bucketName, objectKey string,
) (domain.DetectionResult, error) {
	out, err := d.client.DetectCustomLabels(ctx, &rekognition.DetectCustomLabelsInput{
		ProjectVersionArn: aws.String(d.config.ProjectVersionARN),
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucketName),
				Name:   aws.String(objectKey),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	labels := make(domain.DetectionResult, 0, len(out.CustomLabels))
	for _, label := range out.CustomLabels {
		if label.Name != nil {
			labels = append(labels, *label.Name)
		}
	}

	d.logger.Debug("detected labels",
		"bucket", bucketName,
		"object_key", objectKey,
		"label_count", len(labels))

	return labels, nil
}

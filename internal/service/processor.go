package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/assetflow/labelworker/internal/domain"
)

// LabelDetector performs a single synchronous detection call for one image.
type LabelDetector interface {
	// DetectLabels returns the label names detected on the given S3 object.
	DetectLabels(ctx context.Context, bucketName, objectKey string) (domain.DetectionResult, error)
}

// ResultPublisher writes a detection outcome to the document store.
type ResultPublisher interface {
	// PublishLabels stores the rendered label value on a document and
	// returns the store's response status code.
	PublishLabels(ctx context.Context, documentID, value string) (int, error)
}

// Processor handles one inbound message end to end: parse, validate,
// detect, publish. Every error is caught here and converted into a Failure
// outcome; Process never returns an error and never panics the batch.
//
// At most one detection call and one publish call are made per message per
// invocation. There is no inline retry; redelivery is the queue's job.
type Processor struct {
	logger    *slog.Logger
	detector  LabelDetector
	publisher ResultPublisher
}

// NewProcessor creates a Processor with the provided dependencies.
func NewProcessor(
	logger *slog.Logger,
	detector LabelDetector,
	publisher ResultPublisher,
) (*Processor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if detector == nil {
		return nil, errors.New("detector cannot be nil")
	}
	if publisher == nil {
		return nil, errors.New("publisher cannot be nil")
	}

	return &Processor{
		logger:    logger.With("component", "message_processor"),
		detector:  detector,
		publisher: publisher,
	}, nil
}

// Process runs the pipeline for a single message and classifies the result.
func (p *Processor) Process(ctx context.Context, msg domain.InboundMessage) domain.Outcome {
	logger := p.logger.With("message_id", msg.ID)

	job, err := domain.ParseImageJob(msg.Body)
	if err != nil {
		reason := classifyParseError(err)
		logger.Error("message rejected", "reason", string(reason), "error", err)
		return domain.NewFailureOutcome(msg, reason, err)
	}

	logger = logger.With(
		"bucket", job.BucketName,
		"object_key", job.ObjectKey,
		"document_id", job.DocumentID,
	)
	logger.Info("processing message")

	labels, err := p.detector.DetectLabels(ctx, job.BucketName, job.ObjectKey)
	if err != nil {
		logger.Error("detection failed", "error", err)
		return domain.NewFailureOutcome(msg, domain.FailureBackend, err)
	}

	status, err := p.publisher.PublishLabels(ctx, job.DocumentID, labels.PublishValue())
	if err != nil {
		logger.Error("publish failed", "error", err)
		return domain.NewFailureOutcome(msg, domain.FailurePublish, err)
	}

	logger.Info("message processed", "label_count", len(labels), "publish_status", status)
	return domain.NewSuccessOutcome(job.DocumentID, labels, status)
}

// classifyParseError maps a parse/validation error onto a failure reason.
func classifyParseError(err error) domain.FailureReason {
	switch {
	case errors.Is(err, domain.ErrMalformedMessage):
		return domain.FailureMalformedMessage
	case errors.Is(err, domain.ErrMissingField):
		return domain.FailureMissingField
	default:
		return domain.FailureUnknown
	}
}

package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/assetflow/labelworker/internal/domain"
	"github.com/assetflow/labelworker/internal/platform/metrics"
	"github.com/assetflow/labelworker/internal/platform/nuxeo"
	"github.com/assetflow/labelworker/internal/platform/rekognition"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// newTestMetrics returns an unregistered metrics bundle; counters work
// without a registry.
func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics()
}

// fakeDetector implements LabelDetector for testing.
type fakeDetector struct {
	DetectFn func(ctx context.Context, bucketName, objectKey string) (domain.DetectionResult, error)
	calls    int
	lastKey  string
}

func (f *fakeDetector) DetectLabels(
	ctx context.Context,
	bucketName, objectKey string,
) (domain.DetectionResult, error) {
	f.calls++
	f.lastKey = objectKey
	if f.DetectFn != nil {
		return f.DetectFn(ctx, bucketName, objectKey)
	}
	return domain.DetectionResult{}, nil
}

// publishCall records one publisher invocation.
type publishCall struct {
	documentID string
	value      string
}

// fakePublisher implements ResultPublisher for testing.
type fakePublisher struct {
	PublishFn func(ctx context.Context, documentID, value string) (int, error)
	calls     []publishCall
}

func (f *fakePublisher) PublishLabels(ctx context.Context, documentID, value string) (int, error) {
	f.calls = append(f.calls, publishCall{documentID: documentID, value: value})
	if f.PublishFn != nil {
		return f.PublishFn(ctx, documentID, value)
	}
	return 200, nil
}

// fakeSender implements MessageSender for testing.
type fakeSender struct {
	SendFn func(ctx context.Context, body string) error
	bodies []string
}

func (f *fakeSender) Send(ctx context.Context, body string) error {
	if f.SendFn != nil {
		if err := f.SendFn(ctx, body); err != nil {
			return err
		}
	}
	f.bodies = append(f.bodies, body)
	return nil
}

// fakeProcessor implements MessageProcessor for testing.
type fakeProcessor struct {
	ProcessFn func(ctx context.Context, msg domain.InboundMessage) domain.Outcome
}

func (f *fakeProcessor) Process(ctx context.Context, msg domain.InboundMessage) domain.Outcome {
	if f.ProcessFn != nil {
		return f.ProcessFn(ctx, msg)
	}
	return domain.NewSuccessOutcome("doc", nil, 200)
}

// fakeRouter implements FailureRouter for testing.
type fakeRouter struct {
	routed []domain.Failure
}

func (f *fakeRouter) Route(_ context.Context, failure domain.Failure) {
	f.routed = append(f.routed, failure)
}

// fakeLifecycle implements ModelLifecycle for testing.
type fakeLifecycle struct {
	RunningFn    func(ctx context.Context) (rekognition.ModelState, error)
	StoppedFn    func(ctx context.Context) rekognition.ModelState
	runningCalls int
	stoppedCalls int
}

func (f *fakeLifecycle) EnsureRunning(ctx context.Context) (rekognition.ModelState, error) {
	f.runningCalls++
	if f.RunningFn != nil {
		return f.RunningFn(ctx)
	}
	return rekognition.ModelStateRunning, nil
}

func (f *fakeLifecycle) EnsureStopped(ctx context.Context) rekognition.ModelState {
	f.stoppedCalls++
	if f.StoppedFn != nil {
		return f.StoppedFn(ctx)
	}
	return rekognition.ModelStateStopping
}

// fakeSource implements MessageSource for testing, delivering the queued
// batches in order and recording deletions.
type fakeSource struct {
	batches [][]domain.InboundMessage
	deleted []string
}

func (f *fakeSource) ReceiveBatch(_ context.Context) ([]domain.InboundMessage, error) {
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeSource) Delete(_ context.Context, receiptHandle string) error {
	f.deleted = append(f.deleted, receiptHandle)
	return nil
}

// fakeGate implements BacklogGate for testing, yielding the configured
// signals in order and stopping once they run out.
type fakeGate struct {
	signals []Signal
	checks  int
}

func (f *fakeGate) Check(_ context.Context) (Signal, error) {
	f.checks++
	if len(f.signals) == 0 {
		return SignalStop, nil
	}
	signal := f.signals[0]
	f.signals = f.signals[1:]
	return signal, nil
}

// fakeNotifier implements CompletionNotifier for testing.
type fakeNotifier struct {
	NotifyFn   func(ctx context.Context, recipient, report string) error
	recipients []string
	reports    []string
}

func (f *fakeNotifier) NotifyCompletion(ctx context.Context, recipient, report string) error {
	f.recipients = append(f.recipients, recipient)
	f.reports = append(f.reports, report)
	if f.NotifyFn != nil {
		return f.NotifyFn(ctx, recipient, report)
	}
	return nil
}

// fakeLister implements DocumentLister for testing.
type fakeLister struct {
	ListFn func(ctx context.Context, collectionID string) ([]nuxeo.Document, error)
}

func (f *fakeLister) ListCollectionDocuments(
	ctx context.Context,
	collectionID string,
) ([]nuxeo.Document, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, collectionID)
	}
	return nil, nil
}

// fakeDepth implements DepthReader for testing.
type fakeDepth struct {
	DepthFn func(ctx context.Context) (int, error)
}

func (f *fakeDepth) ApproximateDepth(ctx context.Context) (int, error) {
	if f.DepthFn != nil {
		return f.DepthFn(ctx)
	}
	return 0, nil
}

// validJobBody builds a parseable queue envelope for tests.
func validJobBody(bucket, key, uid string) string {
	return `{"Records":[{"s3":{"bucket":{"name":"` + bucket + `"},"object":{"key":"` + key + `"},"documentUUID":{"uid":"` + uid + `"}}}]}`
}

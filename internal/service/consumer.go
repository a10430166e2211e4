package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/assetflow/labelworker/internal/domain"
	"github.com/assetflow/labelworker/internal/platform/metrics"
)

// MessageProcessor classifies one inbound message into an Outcome.
type MessageProcessor interface {
	Process(ctx context.Context, msg domain.InboundMessage) domain.Outcome
}

// FailureRouter forwards one failure to the dead-letter path.
type FailureRouter interface {
	Route(ctx context.Context, failure domain.Failure)
}

// reportStatusOK is the status token on a completed batch report. Batches
// always complete; only configuration errors can abort an invocation, and
// those are surfaced before any message is touched.
const reportStatusOK = "ok"

// Consumer folds a batch of inbound messages into a BatchReport. Messages
// are processed sequentially and in isolation: a failure is recorded,
// routed to the dead-letter queue, and the fold moves on. One message can
// never affect a sibling's outcome or its position in the report.
type Consumer struct {
	logger     *slog.Logger
	processor  MessageProcessor
	deadLetter FailureRouter
	metrics    *metrics.Metrics
}

// NewConsumer creates a Consumer with the provided dependencies.
func NewConsumer(
	logger *slog.Logger,
	processor MessageProcessor,
	deadLetter FailureRouter,
	m *metrics.Metrics,
) (*Consumer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if processor == nil {
		return nil, errors.New("processor cannot be nil")
	}
	if deadLetter == nil {
		return nil, errors.New("dead letter router cannot be nil")
	}
	if m == nil {
		return nil, errors.New("metrics cannot be nil")
	}

	return &Consumer{
		logger:     logger.With("component", "batch_consumer"),
		processor:  processor,
		deadLetter: deadLetter,
		metrics:    m,
	}, nil
}

// ConsumeBatch processes every message of the batch and returns the
// aggregated report. Processed + Failed always equals len(messages), and
// the success list preserves the batch's processing order.
func (c *Consumer) ConsumeBatch(ctx context.Context, messages []domain.InboundMessage) domain.BatchReport {
	report := domain.BatchReport{
		Status:    reportStatusOK,
		Successes: make([]domain.Success, 0, len(messages)),
	}

	for _, msg := range messages {
		c.metrics.MessagesReceived.Inc()
		started := time.Now()

		outcome := c.processor.Process(ctx, msg)
		c.metrics.ProcessingDuration.Observe(time.Since(started).Seconds())

		if outcome.IsSuccess() {
			report.Processed++
			report.Successes = append(report.Successes, *outcome.Success)
			c.metrics.MessagesProcessed.WithLabelValues("success").Inc()
			continue
		}

		report.Failed++
		c.metrics.MessagesProcessed.WithLabelValues("failure").Inc()

		// A processor returning a zero Outcome carries neither branch;
		// treat it as an unknown failure rather than panicking the batch.
		failure := outcome.Failure
		if failure == nil {
			failure = &domain.Failure{Reason: domain.FailureUnknown, Message: msg}
		}
		c.deadLetter.Route(ctx, *failure)
	}

	c.logger.Info("batch consumed",
		"batch_size", len(messages),
		"processed", report.Processed,
		"failed", report.Failed)

	return report
}

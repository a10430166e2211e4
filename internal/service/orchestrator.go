package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/assetflow/labelworker/internal/domain"
	"github.com/assetflow/labelworker/internal/platform/metrics"
	"github.com/assetflow/labelworker/internal/platform/rekognition"
)

// ModelLifecycle drives the detection model around a processing run.
type ModelLifecycle interface {
	EnsureRunning(ctx context.Context) (rekognition.ModelState, error)
	EnsureStopped(ctx context.Context) rekognition.ModelState
}

// MessageSource receives and deletes messages on the primary queue.
type MessageSource interface {
	ReceiveBatch(ctx context.Context) ([]domain.InboundMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// BatchConsumer folds one batch into a report.
type BatchConsumer interface {
	ConsumeBatch(ctx context.Context, messages []domain.InboundMessage) domain.BatchReport
}

// BacklogGate signals whether the loop should continue.
type BacklogGate interface {
	Check(ctx context.Context) (Signal, error)
}

// CompletionNotifier reports the end of a run.
type CompletionNotifier interface {
	NotifyCompletion(ctx context.Context, recipient, report string) error
}

// Orchestrator runs one full processing cycle: bring the model up, drain
// the backlog batch by batch, bring the model down, notify. The model
// teardown and the notification run even when the drain loop fails part
// way; a processing error must never leave the pay-per-use model running.
type Orchestrator struct {
	logger    *slog.Logger
	lifecycle ModelLifecycle
	gate      BacklogGate
	queue     MessageSource
	consumer  BatchConsumer
	notifier  CompletionNotifier
	recipient string
	metrics   *metrics.Metrics
}

// OrchestratorParams collects the orchestrator's dependencies.
type OrchestratorParams struct {
	Logger    *slog.Logger
	Lifecycle ModelLifecycle
	Gate      BacklogGate
	Queue     MessageSource
	Consumer  BatchConsumer
	Notifier  CompletionNotifier
	Recipient string
	Metrics   *metrics.Metrics
}

// NewOrchestrator creates an Orchestrator with the provided dependencies.
func NewOrchestrator(params OrchestratorParams) (*Orchestrator, error) {
	if params.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if params.Lifecycle == nil {
		return nil, errors.New("lifecycle cannot be nil")
	}
	if params.Gate == nil {
		return nil, errors.New("gate cannot be nil")
	}
	if params.Queue == nil {
		return nil, errors.New("queue cannot be nil")
	}
	if params.Consumer == nil {
		return nil, errors.New("consumer cannot be nil")
	}
	if params.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}
	if params.Metrics == nil {
		return nil, errors.New("metrics cannot be nil")
	}

	return &Orchestrator{
		logger:    params.Logger.With("component", "orchestrator"),
		lifecycle: params.Lifecycle,
		gate:      params.Gate,
		queue:     params.Queue,
		consumer:  params.Consumer,
		notifier:  params.Notifier,
		recipient: params.Recipient,
		metrics:   params.Metrics,
	}, nil
}

// Run executes one processing cycle and returns the aggregated report.
//
// A failure to bring the model up aborts the run before any message is
// touched. Failures inside the drain loop stop the loop but still fall
// through to the stop and notify steps, and are returned alongside the
// partial report.
func (o *Orchestrator) Run(ctx context.Context) (domain.BatchReport, error) {
	logger := o.logger.With("run_id", uuid.New().String())

	state, err := o.lifecycle.EnsureRunning(ctx)
	o.metrics.ModelState.Set(modelStateGaugeValue(state))
	if err != nil {
		return domain.BatchReport{}, fmt.Errorf("failed to ensure model is running: %w", err)
	}
	logger.Info("model available", "state", string(state))

	total := domain.BatchReport{Status: reportStatusOK}
	var runErr error

	for {
		if ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}

		signal, err := o.gate.Check(ctx)
		if err != nil {
			logger.Error("backlog gate failed, stopping loop", "error", err)
			runErr = err
			break
		}
		if signal == SignalStop {
			logger.Info("backlog drained")
			break
		}

		messages, err := o.queue.ReceiveBatch(ctx)
		if err != nil {
			logger.Error("failed to receive batch, stopping loop", "error", err)
			runErr = err
			break
		}
		if len(messages) == 0 {
			// The approximate count can run ahead of what the queue
			// actually delivers; let the gate re-evaluate.
			continue
		}

		report := o.consumer.ConsumeBatch(ctx, messages)
		total.Processed += report.Processed
		total.Failed += report.Failed
		total.Successes = append(total.Successes, report.Successes...)

		// Every message leaves the primary queue: successes are done and
		// failures already live on the dead-letter queue.
		for _, msg := range messages {
			if err := o.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
				logger.Error("failed to delete message",
					"message_id", msg.ID,
					"error", err)
			}
		}
	}

	// Teardown must not inherit the loop's cancellation: a shutdown signal
	// stops the drain, but the stop request and the notification still have
	// to reach their backends, or the model keeps running and billing.
	teardownCtx := context.WithoutCancel(ctx)

	state = o.lifecycle.EnsureStopped(teardownCtx)
	o.metrics.ModelState.Set(modelStateGaugeValue(state))
	logger.Info("model stop step finished", "state", string(state))

	summary := fmt.Sprintf("label recognition run finished: processed=%d failed=%d",
		total.Processed, total.Failed)
	if err := o.notifier.NotifyCompletion(teardownCtx, o.recipient, summary); err != nil {
		logger.Error("completion notification failed", "error", err)
	}

	logger.Info("run finished",
		"processed", total.Processed,
		"failed", total.Failed)

	return total, runErr
}

// modelStateGaugeValue maps a model state onto the metric encoding.
func modelStateGaugeValue(state rekognition.ModelState) float64 {
	switch state {
	case rekognition.ModelStateStopped:
		return 0
	case rekognition.ModelStateStarting:
		return 1
	case rekognition.ModelStateRunning:
		return 2
	case rekognition.ModelStateStopping:
		return 3
	default:
		return 4
	}
}

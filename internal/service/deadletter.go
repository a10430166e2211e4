package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/assetflow/labelworker/internal/domain"
	"github.com/assetflow/labelworker/internal/platform/metrics"
)

// MessageSender enqueues a raw message body on a queue.
type MessageSender interface {
	Send(ctx context.Context, body string) error
}

// DeadLetterRouter forwards failed messages, byte-identical to how they
// arrived, to the dead-letter queue for manual inspection and redrive.
type DeadLetterRouter struct {
	logger  *slog.Logger
	sender  MessageSender
	metrics *metrics.Metrics
}

// NewDeadLetterRouter creates a DeadLetterRouter with the provided
// dependencies.
func NewDeadLetterRouter(
	logger *slog.Logger,
	sender MessageSender,
	m *metrics.Metrics,
) (*DeadLetterRouter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if m == nil {
		return nil, errors.New("metrics cannot be nil")
	}

	return &DeadLetterRouter{
		logger:  logger.With("component", "dead_letter_router"),
		sender:  sender,
		metrics: m,
	}, nil
}

// Route forwards one failure's original message body to the dead-letter
// queue. The forward is best-effort: a failed enqueue is logged and
// counted, never retried and never escalated. A message can be lost on
// this double-failure path; that is a known limitation.
func (r *DeadLetterRouter) Route(ctx context.Context, failure domain.Failure) {
	if err := r.sender.Send(ctx, failure.Message.Body); err != nil {
		r.logger.Error("failed to forward message to dead-letter queue",
			"message_id", failure.Message.ID,
			"reason", string(failure.Reason),
			"error", err)
		return
	}

	r.metrics.MessagesDeadLettered.Inc()
	r.logger.Info("message forwarded to dead-letter queue",
		"message_id", failure.Message.ID,
		"reason", string(failure.Reason))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Signal is the continuation token the backlog gate hands to the
// orchestration loop.
type Signal string

// Gate signals.
const (
	SignalContinue Signal = "continue"
	SignalStop     Signal = "stop"
)

// DepthReader reads a queue's approximate visible message count.
type DepthReader interface {
	ApproximateDepth(ctx context.Context) (int, error)
}

// Gate decides whether the processing loop should keep going, based on the
// primary queue's approximate depth. The count is eventually consistent, so
// the gate is advisory: it answers "is there probably more work", never
// "exactly how much".
type Gate struct {
	logger *slog.Logger
	depth  DepthReader
}

// NewGate creates a Gate with the provided dependencies.
func NewGate(logger *slog.Logger, depth DepthReader) (*Gate, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if depth == nil {
		return nil, errors.New("depth reader cannot be nil")
	}

	return &Gate{
		logger: logger.With("component", "backlog_gate"),
		depth:  depth,
	}, nil
}

// Check reads the approximate backlog and returns SignalContinue while any
// messages appear to be available.
func (g *Gate) Check(ctx context.Context) (Signal, error) {
	count, err := g.depth.ApproximateDepth(ctx)
	if err != nil {
		return SignalStop, fmt.Errorf("backlog check failed: %w", err)
	}

	g.logger.Info("backlog checked", "approximate_count", count)

	if count > 0 {
		return SignalContinue, nil
	}
	return SignalStop, nil
}

package nuxeo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// mailFrom is the sender address on completion mails.
const mailFrom = "no-reply@maildrop.cc"

// Notifier sends the end-of-run completion mail through the document store's
// mail operation.
type Notifier struct {
	logger *slog.Logger
	client *Client
}

// NewNotifier creates a Notifier on top of an existing client.
func NewNotifier(logger *slog.Logger, client *Client) (*Notifier, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}

	return &Notifier{
		logger: logger.With("component", "completion_notifier"),
		client: client,
	}, nil
}

// NotifyCompletion mails the recipient that a processing run finished.
// An empty recipient is a no-op: notification is optional by configuration.
func (n *Notifier) NotifyCompletion(ctx context.Context, recipient string, report string) error {
	if recipient == "" {
		n.logger.Info("no notification recipient configured, skipping completion mail")
		return nil
	}

	_, _, err := n.client.callOperation(ctx, opSendMail, operationRequest{
		Params: map[string]any{
			"from":    mailFrom,
			"to":      recipient,
			"HTML":    true,
			"message": report,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send completion mail: %w", err)
	}

	n.logger.Info("completion mail sent", "recipient", recipient)
	return nil
}

package nuxeo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// landmarkXPath is the document property that receives the detection result.
const landmarkXPath = "assetRecognition:landMark"

// Publisher writes a detection result onto a document. The write is a
// property set keyed by a fixed field path, so publishing the same value
// twice leaves the document in the same state.
type Publisher struct {
	logger *slog.Logger
	client *Client
}

// NewPublisher creates a Publisher on top of an existing client.
func NewPublisher(logger *slog.Logger, client *Client) (*Publisher, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}

	return &Publisher{
		logger: logger.With("component", "result_publisher"),
		client: client,
	}, nil
}

// PublishLabels stores the rendered label value on the document identified
// by documentID and returns the store's response status code.
func (p *Publisher) PublishLabels(ctx context.Context, documentID, value string) (int, error) {
	status, _, err := p.client.callOperation(ctx, opSetProperty, operationRequest{
		Params: map[string]any{
			"xpath": landmarkXPath,
			"save":  "true",
			"value": value,
		},
		Input: documentID,
	})
	if err != nil {
		return status, fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("published detection result",
		"document_id", documentID,
		"value", value,
		"status", status)

	return status, nil
}

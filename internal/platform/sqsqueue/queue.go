// Package sqsqueue adapts AWS SQS to the queue port the pipeline consumes:
// batch receive, verbatim send, delete, and the approximate depth reading
// that gates the processing loop.
package sqsqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/assetflow/labelworker/internal/domain"
)

// Receive settings: SQS caps a single receive at ten messages; the long-poll
// wait keeps the loop from spinning on an almost-empty queue.
const (
	maxReceiveBatch     int32 = 10
	receiveWaitSeconds  int32 = 10
	visibilityExtension int32 = 60
)

// API is the subset of the SQS client surface used by this package.
type API interface {
	ReceiveMessage(
		ctx context.Context,
		params *sqs.ReceiveMessageInput,
		optFns ...func(*sqs.Options),
	) (*sqs.ReceiveMessageOutput, error)

	SendMessage(
		ctx context.Context,
		params *sqs.SendMessageInput,
		optFns ...func(*sqs.Options),
	) (*sqs.SendMessageOutput, error)

	DeleteMessage(
		ctx context.Context,
		params *sqs.DeleteMessageInput,
		optFns ...func(*sqs.Options),
	) (*sqs.DeleteMessageOutput, error)

	GetQueueAttributes(
		ctx context.Context,
		params *sqs.GetQueueAttributesInput,
		optFns ...func(*sqs.Options),
	) (*sqs.GetQueueAttributesOutput, error)
}

// Queue is one SQS queue seen through the pipeline's port.
type Queue struct {
	logger *slog.Logger
	client API
	url    string
}

// NewQueue creates a Queue bound to a single queue URL.
func NewQueue(logger *slog.Logger, client API, url string) (*Queue, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, errors.New("sqs client cannot be nil")
	}
	if url == "" {
		return nil, errors.New("queue URL cannot be empty")
	}

	return &Queue{
		logger: logger.With("component", "queue", "queue_url", url),
		client: client,
		url:    url,
	}, nil
}

// URL returns the queue URL this instance is bound to.
func (q *Queue) URL() string {
	return q.url
}

// ReceiveBatch long-polls the queue for up to ten messages. An empty slice
// means the queue had nothing to deliver within the wait window.
func (q *Queue) ReceiveBatch(ctx context.Context) ([]domain.InboundMessage, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.url),
		MaxNumberOfMessages: maxReceiveBatch,
		WaitTimeSeconds:     receiveWaitSeconds,
		VisibilityTimeout:   visibilityExtension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	messages := make([]domain.InboundMessage, 0, len(out.Messages))
	for _, msg := range out.Messages {
		messages = append(messages, domain.InboundMessage{
			ID:            aws.ToString(msg.MessageId),
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
			Body:          aws.ToString(msg.Body),
		})
	}

	return messages, nil
}

// Send enqueues a message body verbatim.
func (q *Queue) Send(ctx context.Context, body string) error {
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.url),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Delete removes a message from the queue after successful processing.
func (q *Queue) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.url),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// ApproximateDepth reads the queue's approximate visible message count.
// The value is eventually consistent and only suitable as an advisory
// signal, never as an exact backlog size.
func (q *Queue) ApproximateDepth(ctx context.Context) (int, error) {
	out, err := q.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl: aws.String(q.url),
		AttributeNames: []types.QueueAttributeName{
			types.QueueAttributeNameApproximateNumberOfMessages,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get queue attributes: %w", err)
	}

	raw, ok := out.Attributes[string(types.QueueAttributeNameApproximateNumberOfMessages)]
	if !ok {
		return 0, errors.New("approximate message count attribute missing from response")
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("unparseable approximate message count %q: %w", raw, err)
	}

	return count, nil
}

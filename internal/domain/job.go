package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InboundMessage is the transport envelope handed to the consumer by the
// queue. Body is kept verbatim so a failed message can be forwarded to the
// dead-letter queue byte-identical to what was received.
type InboundMessage struct {
	ID            string
	ReceiptHandle string
	Body          string
}

// ImageJob is one unit of detection work derived from an InboundMessage body.
type ImageJob struct {
	BucketName string
	ObjectKey  string
	DocumentID string
}

// envelope mirrors the S3-event-shaped JSON carried on the queue.
type envelope struct {
	Records []struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
			DocumentUUID struct {
				UID string `json:"uid"`
			} `json:"documentUUID"`
		} `json:"s3"`
	} `json:"Records"`
}

// ParseImageJob parses and validates a raw message body into an ImageJob.
//
// The object key arrives with spaces encoded as '+' (a transport encoding
// artifact of the upstream event source) and is decoded before use. A body
// that is not valid JSON or carries no records fails with
// ErrMalformedMessage; a record missing any required field fails with
// ErrMissingField.
func ParseImageJob(body string) (*ImageJob, error) {
	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if len(env.Records) == 0 {
		return nil, fmt.Errorf("%w: no records in envelope", ErrMalformedMessage)
	}

	// Upstream only ever emits one record per message; any extras are ignored.
	rec := env.Records[0].S3

	job := &ImageJob{
		BucketName: rec.Bucket.Name,
		ObjectKey:  strings.ReplaceAll(rec.Object.Key, "+", " "),
		DocumentID: rec.DocumentUUID.UID,
	}

	switch {
	case job.BucketName == "":
		return nil, fmt.Errorf("%w: bucket name", ErrMissingField)
	case job.ObjectKey == "":
		return nil, fmt.Errorf("%w: object key", ErrMissingField)
	case job.DocumentID == "":
		return nil, fmt.Errorf("%w: document id", ErrMissingField)
	}

	return job, nil
}

// DetectionResult is the ordered list of label names returned by the
// detection backend for one image. It may be empty and is not deduplicated.
type DetectionResult []string

// PublishValueNone is the sentinel stored when detection found no labels.
const PublishValueNone = "none"

// PublishValue renders the detection result as the value stored on the
// document: label names comma-joined, or the "none" sentinel when empty.
func (r DetectionResult) PublishValue() string {
	if len(r) == 0 {
		return PublishValueNone
	}
	return strings.Join(r, ",")
}

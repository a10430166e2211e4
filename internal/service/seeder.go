package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/assetflow/labelworker/internal/platform/nuxeo"
)

// DocumentLister lists the documents of a store collection.
type DocumentLister interface {
	ListCollectionDocuments(ctx context.Context, collectionID string) ([]nuxeo.Document, error)
}

// Seeder turns a document collection into queued detection jobs: one
// message per document with a usable binary digest, in the same envelope
// shape the consumer parses.
type Seeder struct {
	logger     *slog.Logger
	lister     DocumentLister
	sender     MessageSender
	bucketName string
	keyPrefix  string
}

// NewSeeder creates a Seeder with the provided dependencies. bucketName and
// keyPrefix locate the binaries in S3: a document's image lives at
// <keyPrefix>/<digest> in <bucketName>.
func NewSeeder(
	logger *slog.Logger,
	lister DocumentLister,
	sender MessageSender,
	bucketName, keyPrefix string,
) (*Seeder, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if lister == nil {
		return nil, errors.New("lister cannot be nil")
	}
	if sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if bucketName == "" {
		return nil, errors.New("bucket name cannot be empty")
	}
	if keyPrefix == "" {
		return nil, errors.New("key prefix cannot be empty")
	}

	return &Seeder{
		logger:     logger.With("component", "queue_seeder"),
		lister:     lister,
		sender:     sender,
		bucketName: bucketName,
		keyPrefix:  keyPrefix,
	}, nil
}

// Seed enqueues one job per usable document in the collection and returns
// the number of messages sent. A single document's enqueue failure is
// logged and skipped; it does not stop the rest of the collection.
func (s *Seeder) Seed(ctx context.Context, collectionID string) (int, error) {
	documents, err := s.lister.ListCollectionDocuments(ctx, collectionID)
	if err != nil {
		return 0, fmt.Errorf("failed to list documents: %w", err)
	}

	sent := 0
	for _, doc := range documents {
		body, err := s.jobBody(doc)
		if err != nil {
			s.logger.Error("failed to build job message",
				"document_id", doc.UID,
				"error", err)
			continue
		}

		if err := s.sender.Send(ctx, body); err != nil {
			s.logger.Error("failed to enqueue job",
				"document_id", doc.UID,
				"error", err)
			continue
		}

		s.logger.Info("job enqueued", "document_id", doc.UID, "digest", doc.Digest)
		sent++
	}

	s.logger.Info("collection seeded",
		"collection_id", collectionID,
		"documents", len(documents),
		"enqueued", sent)

	return sent, nil
}

// jobBody renders the queue envelope for one document.
func (s *Seeder) jobBody(doc nuxeo.Document) (string, error) {
	envelope := map[string]any{
		"Records": []map[string]any{
			{
				"s3": map[string]any{
					"bucket":       map[string]any{"name": s.bucketName},
					"object":       map[string]any{"key": s.keyPrefix + "/" + doc.Digest},
					"documentUUID": map[string]any{"uid": doc.UID},
				},
			},
		},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

package nuxeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// fullHDViewTitle is the rendition whose digest is preferred when a picture
// document carries multiple views.
const fullHDViewTitle = "FullHD"

// Document is one entry of a listed collection, reduced to what the seeder
// needs: the document id and the binary digest that locates its image.
type Document struct {
	UID    string
	Digest string
}

// collectionResponse mirrors the automation API's document list envelope.
type collectionResponse struct {
	Entries []documentEntry `json:"entries"`
}

type documentEntry struct {
	UID        string `json:"uid"`
	Properties struct {
		PictureViews []struct {
			Title   string `json:"title"`
			Content struct {
				Digest string `json:"digest"`
			} `json:"content"`
		} `json:"picture:views"`
		FileContent struct {
			Digest string `json:"digest"`
		} `json:"file:content"`
	} `json:"properties"`
}

// pickDigest selects the binary digest for a document.
//
// Priority rule: if the document has picture views, the digest of the first
// view titled FullHD wins; a document without views falls back to the main
// file content digest. A document with views but no FullHD view, or with an
// empty digest, yields no result and is skipped by the caller.
func pickDigest(entry documentEntry) (string, bool) {
	if len(entry.Properties.PictureViews) > 0 {
		for _, view := range entry.Properties.PictureViews {
			if view.Title == fullHDViewTitle && view.Content.Digest != "" {
				return view.Content.Digest, true
			}
		}
		return "", false
	}

	if digest := entry.Properties.FileContent.Digest; digest != "" {
		return digest, true
	}
	return "", false
}

// Lister reads the documents of a collection so they can be enqueued as
// detection jobs.
type Lister struct {
	logger *slog.Logger
	client *Client
}

// NewLister creates a Lister on top of an existing client.
func NewLister(logger *slog.Logger, client *Client) (*Lister, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}

	return &Lister{
		logger: logger.With("component", "document_lister"),
		client: client,
	}, nil
}

// ListCollectionDocuments returns the documents of the given collection that
// have a usable binary digest. Documents without one are logged and skipped.
func (l *Lister) ListCollectionDocuments(ctx context.Context, collectionID string) ([]Document, error) {
	if collectionID == "" {
		return nil, errors.New("collection id cannot be empty")
	}

	_, body, err := l.client.callOperation(ctx, opGetCollectionDocuments, operationRequest{
		Input: collectionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collectionID, err)
	}

	var resp collectionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode collection response: %w", err)
	}

	documents := make([]Document, 0, len(resp.Entries))
	for _, entry := range resp.Entries {
		digest, ok := pickDigest(entry)
		if !ok {
			l.logger.Warn("no usable digest for document, skipping", "document_id", entry.UID)
			continue
		}
		documents = append(documents, Document{UID: entry.UID, Digest: digest})
	}

	l.logger.Info("listed collection documents",
		"collection_id", collectionID,
		"total", len(resp.Entries),
		"usable", len(documents))

	return documents, nil
}

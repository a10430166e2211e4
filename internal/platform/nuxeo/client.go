package nuxeo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/assetflow/labelworker/internal/config"
)

// Automation operation identifiers, relative to the configured endpoint.
const (
	opSetProperty            = "Document.SetProperty"
	opGetCollectionDocuments = "Collection.GetDocuments"
	opSendMail               = "Document.Mail"
)

// callTimeout bounds every individual call to the store. The store is also
// handed a shorter transaction hint, which it enforces on its own side.
const (
	callTimeout            = 5 * time.Second
	transactionTimeoutHint = "3"
)

// operationRequest is the automation API's request envelope.
type operationRequest struct {
	Params  map[string]any `json:"params"`
	Input   string         `json:"input"`
	Context map[string]any `json:"context"`
}

// Client talks to the Nuxeo automation API with basic auth and the fixed
// header set the store expects. It is safe for concurrent use.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	config     config.NuxeoConfig
}

// NewClient creates a Client with the provided dependencies.
func NewClient(logger *slog.Logger, cfg config.NuxeoConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint cannot be empty")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("credentials cannot be empty")
	}

	return &Client{
		logger:     logger.With("component", "nuxeo_client"),
		httpClient: &http.Client{Timeout: callTimeout},
		config:     cfg,
	}, nil
}

// callOperation POSTs one automation operation and returns the response
// status code and body. A non-2xx status is reported as ErrUnexpectedStatus
// together with the observed code.
func (c *Client) callOperation(
	ctx context.Context,
	operation string,
	opReq operationRequest,
) (int, []byte, error) {
	if opReq.Params == nil {
		opReq.Params = map[string]any{}
	}
	if opReq.Context == nil {
		opReq.Context = map[string]any{}
	}

	payload, err := json.Marshal(opReq)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request for %s: %w", operation, err)
	}

	url := strings.TrimRight(c.config.Endpoint, "/") + "/" + operation
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request for %s: %w", operation, err)
	}

	req.Header.Set("Nuxeo-Transaction-Timeout", transactionTimeoutHint)
	req.Header.Set("X-NXproperties", "*")
	req.Header.Set("X-NXRepository", "default")
	req.Header.Set("X-NXVoidOperation", "false")
	req.Header.Set("content-type", "application/json")
	req.SetBasicAuth(c.config.Username, c.config.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request for %s failed: %w", operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response for %s: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, body, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, operation, resp.StatusCode)
	}

	c.logger.Debug("automation operation completed",
		"operation", operation,
		"status", resp.StatusCode)

	return resp.StatusCode, body, nil
}

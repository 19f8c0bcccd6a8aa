package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Message is a plain-text notification addressed to a chat.
type Message struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Document is a file notification: a rendered report attached to a chat
// message. Content travels base64-encoded inside the JSON payload.
type Document struct {
	ChatID   int64  `json:"chat_id"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Content  []byte `json:"content"`
}

// Notifier delivers outbound notifications through the chat gateway.
type Notifier interface {
	SendMessage(ctx context.Context, msg Message) error
	SendDocument(ctx context.Context, doc Document) error
}

// HTTPClient implements Notifier via the gateway HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the gateway client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SendMessage posts a text notification to the gateway.
func (c *HTTPClient) SendMessage(ctx context.Context, msg Message) error {
	return c.post(ctx, "/api/messages", msg)
}

// SendDocument posts a file notification to the gateway.
func (c *HTTPClient) SendDocument(ctx context.Context, doc Document) error {
	return c.post(ctx, "/api/documents", doc)
}

func (c *HTTPClient) post(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)),
		)
		return fmt.Errorf("gateway error: %s", resp.Status)
	}
	return nil
}

package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the Meta Graph API root
const DefaultBaseURL = "https://graph.facebook.com"

// Client is a minimal WhatsApp Cloud API client for outbound text messages
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiVersion    string
	phoneNumberID string
	token         string
	logger        *zap.Logger
}

// Option configures the client
type Option func(*Client)

// WithBaseURL overrides the Graph API root
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new WhatsApp Cloud API client
func NewClient(token, phoneNumberID, apiVersion string, logger *zap.Logger, opts ...Option) *Client {
	if apiVersion == "" {
		apiVersion = "v18.0"
	}
	c := &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       DefaultBaseURL,
		apiVersion:    apiVersion,
		phoneNumberID: phoneNumberID,
		token:         token,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type textBody struct {
	Body string `json:"body"`
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

// SendResponse is the Graph API answer to a send request
type SendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// MessageID returns the id of the first accepted message, if any
func (r *SendResponse) MessageID() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].ID
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp api: status %d: %s", e.StatusCode, e.Body)
}

// SendText sends a plain text message to a phone number
func (c *Client) SendText(ctx context.Context, to, text string) (*SendResponse, error) {
	payload, err := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: text},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Info("whatsapp api response",
		zap.String("to", to),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out SendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

package hume

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"showrunner/internal/services"
)

const (
	defaultBaseURL     = "https://api.hume.ai"
	defaultHTTPTimeout = 60 * time.Second
)

// Client wraps the Hume text-to-speech API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the Hume client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout overrides the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a Hume TTS client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

type ttsRequest struct {
	Voice ttsVoice `json:"voice"`
	Text  string   `json:"text"`
}

type ttsVoice struct {
	ID string `json:"id"`
}

// Synthesize converts text to speech with the given voice and returns raw
// audio bytes.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("hume synthesize: text required")
	}
	voiceID = strings.TrimSpace(voiceID)
	if voiceID == "" {
		return nil, errors.New("hume synthesize: voice id required")
	}
	if c.apiKey == "" {
		return nil, errors.New("hume synthesize: api key required")
	}
	endpoint, err := url.JoinPath(c.baseURL, "/v0/tts")
	if err != nil {
		return nil, fmt.Errorf("hume synthesize: build url: %w", err)
	}
	encoded, err := json.Marshal(ttsRequest{Voice: ttsVoice{ID: voiceID}, Text: text})
	if err != nil {
		return nil, fmt.Errorf("hume synthesize: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("hume synthesize: request: %w", err)
	}
	req.Header.Set("X-Hume-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hume synthesize: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hume synthesize: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hume synthesize: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	audio, err := services.DecodeAudioPayload(body)
	if err != nil {
		return nil, fmt.Errorf("hume synthesize: %w", err)
	}
	return audio, nil
}

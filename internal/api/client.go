package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/formamail/formamail-go/internal/apierrors"
)

// Default client settings.
const (
	DefaultBaseURL = "https://api.formamail.com"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API base URL. Defaults to DefaultBaseURL.
	BaseURL string
	// APIKey is the FormaMail API key. Required.
	APIKey string
	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client
	// Timeout is the per-request timeout. Ignored when HTTPClient is set.
	Timeout time.Duration
	// Retry configures retries. Defaults to DefaultRetryConfig.
	Retry *RetryConfig
	// Headers are extra headers added to every request.
	Headers map[string]string
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      *RetryConfig
	headers    map[string]string
}

// NewClient creates a new API client from the given config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retry := cfg.Retry
	if retry == nil {
		retry = DefaultRetryConfig()
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		retry:      retry,
		headers:    cfg.Headers,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Do performs an HTTP request and decodes the JSON response into result.
// The request body is marshalled once so that retries replay identical bytes.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyBytes []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyBytes = data
	}

	url := c.baseURL + path

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := c.newRequest(ctx, method, url, bodyBytes)
		if err != nil {
			return err
		}

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt >= c.retry.MaxRetries {
				return &apierrors.NetworkError{Err: err, URL: url, Attempt: attempt + 1}
			}
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return &apierrors.NetworkError{Err: err, URL: url, Attempt: attempt + 1}
			}
			continue
		}

		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			resp.Body.Close()
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return werr
			}
			continue
		}
		break
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// parseErrorResponse converts a non-2xx response into an *apierrors.APIError.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var errResp struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	}

	if err := json.Unmarshal(body, &errResp); err == nil {
		message := errResp.Error
		if message == "" {
			message = errResp.Message
		}
		if message != "" {
			return &apierrors.APIError{
				StatusCode: resp.StatusCode,
				Message:    message,
				RequestID:  errResp.RequestID,
			}
		}
	}

	return &apierrors.APIError{
		StatusCode: resp.StatusCode,
		Message:    string(bytes.TrimSpace(body)),
	}
}

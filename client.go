package formamail

import (
	"context"
	"sync"
	"time"

	"github.com/formamail/formamail-go/internal/api"
)

// Account represents the authenticated FormaMail account.
type Account struct {
	ID        string
	Email     string
	Name      string
	Plan      string
	CreatedAt time.Time
}

// Client is the FormaMail API client.
type Client struct {
	apiClient *api.Client

	// Emails sends and queries templated emails.
	Emails *EmailsService
	// Templates queries email and document templates.
	Templates *TemplatesService
	// Webhooks manages webhook subscriptions.
	Webhooks *WebhooksService

	mu     sync.RWMutex
	closed bool
}

// New creates a new FormaMail client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	retry := api.DefaultRetryConfig()
	if cfg.retries > 0 {
		retry.MaxRetries = cfg.retries
	}
	if len(cfg.retryOn) > 0 {
		retry.RetryableOn = api.RetryableOnStatuses(cfg.retryOn)
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     apiKey,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		Retry:      retry,
		Headers:    cfg.headers,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	c := &Client{apiClient: apiClient}
	c.Emails = &EmailsService{client: c}
	c.Templates = &TemplatesService{client: c}
	c.Webhooks = &WebhooksService{client: c}

	return c, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Me returns the account associated with the API key.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetMe(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return &Account{
		ID:        dto.ID,
		Email:     dto.Email,
		Name:      dto.Name,
		Plan:      dto.Plan,
		CreatedAt: dto.CreatedAt,
	}, nil
}

// VerifyAPIKey reports whether the API key is accepted by the server.
func (c *Client) VerifyAPIKey(ctx context.Context) bool {
	_, err := c.Me(ctx)
	return err == nil
}

// Close closes the client. Subsequent operations return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

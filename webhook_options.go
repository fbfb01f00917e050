package formamail

import "github.com/formamail/formamail-go/internal/api"

// webhookCreateConfig holds configuration for creating a webhook.
type webhookCreateConfig struct {
	events []WebhookEventType
	name   string
}

// webhookUpdateConfig holds configuration for updating a webhook.
type webhookUpdateConfig struct {
	url     *string
	events  []WebhookEventType
	name    *string
	enabled *bool
}

// WebhookCreateOption configures webhook creation.
type WebhookCreateOption func(*webhookCreateConfig)

// WebhookUpdateOption configures webhook updates.
type WebhookUpdateOption func(*webhookUpdateConfig)

// Create options

// WithWebhookEvents sets the event types that trigger the webhook.
// When omitted, the webhook subscribes to all event types.
func WithWebhookEvents(events ...WebhookEventType) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.events = events
	}
}

// WithWebhookName sets a display name for the webhook.
func WithWebhookName(name string) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.name = name
	}
}

// Update options

// WithUpdateURL updates the webhook URL.
func WithUpdateURL(url string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.url = &url
	}
}

// WithUpdateEvents updates the event types that trigger the webhook.
func WithUpdateEvents(events ...WebhookEventType) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.events = events
	}
}

// WithUpdateName updates the display name for the webhook.
func WithUpdateName(name string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.name = &name
	}
}

// WithUpdateEnabled enables or disables the webhook.
func WithUpdateEnabled(enabled bool) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.enabled = &enabled
	}
}

// buildCreateRequest builds an API request from create options.
func buildCreateRequest(url string, opts []WebhookCreateOption) *api.CreateWebhookRequest {
	cfg := &webhookCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.CreateWebhookRequest{
		URL:  url,
		Name: cfg.name,
	}

	if len(cfg.events) > 0 {
		req.Events = make([]string, len(cfg.events))
		for i, e := range cfg.events {
			req.Events[i] = string(e)
		}
	}

	return req
}

// buildUpdateRequest builds an API request from update options.
func buildUpdateRequest(opts []WebhookUpdateOption) *api.UpdateWebhookRequest {
	cfg := &webhookUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.UpdateWebhookRequest{
		URL:     cfg.url,
		Name:    cfg.name,
		Enabled: cfg.enabled,
	}

	if cfg.events != nil {
		req.Events = make([]string, len(cfg.events))
		for i, e := range cfg.events {
			req.Events[i] = string(e)
		}
	}

	return req
}

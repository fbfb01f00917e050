package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/formamail/formamail-go/internal/apierrors"
)

// CreateWebhook creates a new webhook subscription.
func (c *Client) CreateWebhook(ctx context.Context, req *CreateWebhookRequest) (*WebhookDTO, error) {
	var result struct {
		Data WebhookDTO `json:"data"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/v1/webhooks", req, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result.Data, nil
}

// ListWebhooks returns all webhook subscriptions.
func (c *Client) ListWebhooks(ctx context.Context) (*WebhookListDTO, error) {
	var result struct {
		Data WebhookListDTO `json:"data"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/v1/webhooks", nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result.Data, nil
}

// GetWebhook returns a specific webhook by ID.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*WebhookDTO, error) {
	var result struct {
		Data WebhookDTO `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/webhooks/%s", url.PathEscape(webhookID))
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result.Data, nil
}

// UpdateWebhook updates a webhook subscription.
func (c *Client) UpdateWebhook(ctx context.Context, webhookID string, req *UpdateWebhookRequest) (*WebhookDTO, error) {
	var result struct {
		Data WebhookDTO `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/webhooks/%s", url.PathEscape(webhookID))
	if err := c.Do(ctx, http.MethodPatch, path, req, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result.Data, nil
}

// DeleteWebhook deletes a webhook subscription.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	path := fmt.Sprintf("/api/v1/webhooks/%s", url.PathEscape(webhookID))
	return apierrors.WithResourceType(c.Do(ctx, http.MethodDelete, path, nil, nil), apierrors.ResourceWebhook)
}

// TestWebhook sends a test delivery to a webhook endpoint.
func (c *Client) TestWebhook(ctx context.Context, webhookID string) (*TestWebhookResponseDTO, error) {
	var result struct {
		Data TestWebhookResponseDTO `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/webhooks/%s/test", url.PathEscape(webhookID))
	if err := c.Do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result.Data, nil
}

// RotateWebhookSecret rotates the signing secret for a webhook.
func (c *Client) RotateWebhookSecret(ctx context.Context, webhookID string) (*RotateSecretResponseDTO, error) {
	var result struct {
		Data RotateSecretResponseDTO `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/webhooks/%s/rotate-secret", url.PathEscape(webhookID))
	if err := c.Do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result.Data, nil
}

package formamail

import (
	"context"
	"time"

	"github.com/formamail/formamail-go/internal/api"
)

// WebhookEventType represents the type of event that triggers a webhook.
type WebhookEventType string

const (
	// WebhookEventEmailSent is triggered when an email leaves the platform.
	WebhookEventEmailSent WebhookEventType = "email.sent"
	// WebhookEventEmailDelivered is triggered when the receiving server accepts an email.
	WebhookEventEmailDelivered WebhookEventType = "email.delivered"
	// WebhookEventEmailOpened is triggered when a recipient opens an email.
	WebhookEventEmailOpened WebhookEventType = "email.opened"
	// WebhookEventEmailClicked is triggered when a recipient clicks a tracked link.
	WebhookEventEmailClicked WebhookEventType = "email.clicked"
	// WebhookEventEmailBounced is triggered when an email bounces.
	WebhookEventEmailBounced WebhookEventType = "email.bounced"
	// WebhookEventUnsubscribeCreated is triggered when a recipient unsubscribes.
	WebhookEventUnsubscribeCreated WebhookEventType = "unsubscribe.created"
)

// Webhook represents a webhook subscription.
type Webhook struct {
	// ID is the unique identifier for the webhook.
	ID string
	// URL is the endpoint that receives webhook deliveries.
	URL string
	// Events is the list of event types that trigger this webhook.
	Events []WebhookEventType
	// Name is an optional display name.
	Name string
	// Secret is the signing secret for verifying deliveries. It is only
	// returned on creation and secret rotation.
	Secret string
	// Enabled indicates whether the webhook is active.
	Enabled bool
	// Stats contains delivery statistics for this webhook.
	Stats *WebhookStats
	// CreatedAt is when the webhook was created.
	CreatedAt time.Time
	// UpdatedAt is when the webhook was last updated.
	UpdatedAt time.Time
}

// WebhookStats represents webhook delivery statistics.
type WebhookStats struct {
	TotalDeliveries      int
	SuccessfulDeliveries int
	FailedDeliveries     int
	LastDeliveryAt       *time.Time
	LastSuccessAt        *time.Time
	LastFailureAt        *time.Time
}

// WebhookList is the result of listing webhooks.
type WebhookList struct {
	Webhooks []*Webhook
	Total    int
}

// TestWebhookResult is the outcome of a test delivery.
type TestWebhookResult struct {
	Success      bool
	StatusCode   int
	ResponseTime int
	Error        string
	RequestID    string
}

// RotateSecretResult is the outcome of rotating a webhook secret.
// Deliveries remain verifiable with the previous secret until
// PreviousSecretValidUntil; during that window the signature header carries
// one v1 entry per valid secret.
type RotateSecretResult struct {
	ID                       string
	Secret                   string
	PreviousSecretValidUntil *time.Time
}

// WebhooksService manages webhook subscriptions.
type WebhooksService struct {
	client *Client
}

// Create creates a new webhook subscription for the given endpoint URL.
// The returned webhook includes the signing secret; store it, it is not
// returned by later reads.
func (s *WebhooksService) Create(ctx context.Context, url string, opts ...WebhookCreateOption) (*Webhook, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	req := buildCreateRequest(url, opts)
	dto, err := s.client.apiClient.CreateWebhook(ctx, req)
	if err != nil {
		return nil, wrapError(err)
	}

	return webhookFromDTO(dto), nil
}

// List returns all webhook subscriptions.
func (s *WebhooksService) List(ctx context.Context) (*WebhookList, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.ListWebhooks(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	list := &WebhookList{Total: dto.Total}
	list.Webhooks = make([]*Webhook, len(dto.Webhooks))
	for i, w := range dto.Webhooks {
		list.Webhooks[i] = webhookFromDTO(w)
	}
	return list, nil
}

// Get returns a specific webhook by ID.
func (s *WebhooksService) Get(ctx context.Context, webhookID string) (*Webhook, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.GetWebhook(ctx, webhookID)
	if err != nil {
		return nil, wrapError(err)
	}

	return webhookFromDTO(dto), nil
}

// Update updates a webhook subscription.
func (s *WebhooksService) Update(ctx context.Context, webhookID string, opts ...WebhookUpdateOption) (*Webhook, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	req := buildUpdateRequest(opts)
	dto, err := s.client.apiClient.UpdateWebhook(ctx, webhookID, req)
	if err != nil {
		return nil, wrapError(err)
	}

	return webhookFromDTO(dto), nil
}

// Delete deletes a webhook subscription.
func (s *WebhooksService) Delete(ctx context.Context, webhookID string) error {
	if err := s.client.checkClosed(); err != nil {
		return err
	}

	return wrapError(s.client.apiClient.DeleteWebhook(ctx, webhookID))
}

// Test sends a test delivery to the webhook endpoint.
func (s *WebhooksService) Test(ctx context.Context, webhookID string) (*TestWebhookResult, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.TestWebhook(ctx, webhookID)
	if err != nil {
		return nil, wrapError(err)
	}

	return &TestWebhookResult{
		Success:      dto.Success,
		StatusCode:   dto.StatusCode,
		ResponseTime: dto.ResponseTime,
		Error:        dto.Error,
		RequestID:    dto.RequestID,
	}, nil
}

// RotateSecret rotates the signing secret for a webhook.
// The previous secret remains valid for a grace period to allow for
// seamless rotation.
func (s *WebhooksService) RotateSecret(ctx context.Context, webhookID string) (*RotateSecretResult, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.RotateWebhookSecret(ctx, webhookID)
	if err != nil {
		return nil, wrapError(err)
	}

	return &RotateSecretResult{
		ID:                       dto.ID,
		Secret:                   dto.Secret,
		PreviousSecretValidUntil: dto.PreviousSecretValidUntil,
	}, nil
}

// webhookFromDTO converts an API DTO to a public Webhook type.
func webhookFromDTO(dto *api.WebhookDTO) *Webhook {
	if dto == nil {
		return nil
	}

	w := &Webhook{
		ID:        dto.ID,
		URL:       dto.URL,
		Name:      dto.Name,
		Secret:    dto.Secret,
		Enabled:   dto.Enabled,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}

	w.Events = make([]WebhookEventType, len(dto.Events))
	for i, e := range dto.Events {
		w.Events[i] = WebhookEventType(e)
	}

	if dto.Stats != nil {
		w.Stats = &WebhookStats{
			TotalDeliveries:      dto.Stats.TotalDeliveries,
			SuccessfulDeliveries: dto.Stats.SuccessfulDeliveries,
			FailedDeliveries:     dto.Stats.FailedDeliveries,
			LastDeliveryAt:       dto.Stats.LastDeliveryAt,
			LastSuccessAt:        dto.Stats.LastSuccessAt,
			LastFailureAt:        dto.Stats.LastFailureAt,
		}
	}

	return w
}

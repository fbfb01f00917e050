package api

import "time"

// CreateWebhookRequest is the request body for creating a webhook.
type CreateWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events,omitempty"`
	Name   string   `json:"name,omitempty"`
}

// UpdateWebhookRequest is the request body for updating a webhook.
// All fields are optional - only provided fields will be updated.
type UpdateWebhookRequest struct {
	URL     *string  `json:"url,omitempty"`
	Events  []string `json:"events,omitempty"`
	Name    *string  `json:"name,omitempty"`
	Enabled *bool    `json:"enabled,omitempty"`
}

// WebhookDTO represents a webhook subscription from the API.
type WebhookDTO struct {
	ID        string           `json:"id"`
	URL       string           `json:"url"`
	Events    []string         `json:"events"`
	Name      string           `json:"name,omitempty"`
	Secret    string           `json:"secret,omitempty"`
	Enabled   bool             `json:"enabled"`
	Stats     *WebhookStatsDTO `json:"stats,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// WebhookStatsDTO represents webhook delivery statistics.
type WebhookStatsDTO struct {
	TotalDeliveries      int        `json:"totalDeliveries"`
	SuccessfulDeliveries int        `json:"successfulDeliveries"`
	FailedDeliveries     int        `json:"failedDeliveries"`
	LastDeliveryAt       *time.Time `json:"lastDeliveryAt,omitempty"`
	LastSuccessAt        *time.Time `json:"lastSuccessAt,omitempty"`
	LastFailureAt        *time.Time `json:"lastFailureAt,omitempty"`
}

// WebhookListDTO represents the response from listing webhooks.
type WebhookListDTO struct {
	Webhooks []*WebhookDTO `json:"webhooks"`
	Total    int           `json:"total"`
}

// TestWebhookResponseDTO represents the response from testing a webhook.
type TestWebhookResponseDTO struct {
	Success      bool   `json:"success"`
	StatusCode   int    `json:"statusCode,omitempty"`
	ResponseTime int    `json:"responseTime,omitempty"`
	Error        string `json:"error,omitempty"`
	RequestID    string `json:"requestId,omitempty"`
}

// RotateSecretResponseDTO represents the response from rotating a webhook secret.
type RotateSecretResponseDTO struct {
	ID                       string     `json:"id"`
	Secret                   string     `json:"secret"`
	PreviousSecretValidUntil *time.Time `json:"previousSecretValidUntil,omitempty"`
}

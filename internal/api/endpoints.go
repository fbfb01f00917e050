package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/formamail/formamail-go/internal/apierrors"
)

// GetMe returns the authenticated account.
func (c *Client) GetMe(ctx context.Context) (*AccountDTO, error) {
	var result struct {
		Data AccountDTO `json:"data"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/v1/me", nil, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// SendEmail sends a single templated email.
func (c *Client) SendEmail(ctx context.Context, req *SendEmailRequest) (*SendResultDTO, error) {
	var result struct {
		Data SendResultDTO `json:"data"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/v1/emails/send", req, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceEmail)
	}
	return &result.Data, nil
}

// SendBulkEmail sends a templated email to multiple recipients.
func (c *Client) SendBulkEmail(ctx context.Context, req *SendBulkEmailRequest) (*BulkSendResultDTO, error) {
	var result struct {
		Data BulkSendResultDTO `json:"data"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/v1/emails/send-bulk", req, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceEmail)
	}
	return &result.Data, nil
}

// GetEmail retrieves a sent email by ID.
func (c *Client) GetEmail(ctx context.Context, emailID string) (*EmailDTO, error) {
	var result struct {
		Data EmailDTO `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/emails/%s", url.PathEscape(emailID))
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceEmail)
	}
	return &result.Data, nil
}

// ListEmails lists sent emails with optional filters.
func (c *Client) ListEmails(ctx context.Context, params *ListEmailsParams) ([]EmailDTO, *ListMeta, error) {
	query := url.Values{}
	if params != nil {
		setQuery(query, "recipient", params.Recipient)
		setQuery(query, "status", params.Status)
		setQuery(query, "templateId", params.TemplateID)
		setQuery(query, "dateFrom", params.DateFrom)
		setQuery(query, "dateTo", params.DateTo)
		setQueryInt(query, "limit", params.Limit)
		setQueryInt(query, "page", params.Page)
	}

	var result struct {
		Data []EmailDTO `json:"data"`
		Meta ListMeta   `json:"meta"`
	}
	if err := c.Do(ctx, http.MethodGet, withQuery("/api/v1/emails", query), nil, &result); err != nil {
		return nil, nil, apierrors.WithResourceType(err, apierrors.ResourceEmail)
	}
	return result.Data, &result.Meta, nil
}

// GetTemplate retrieves a template by ID.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*TemplateDTO, error) {
	var result struct {
		Data TemplateDTO `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/templates/%s", url.PathEscape(templateID))
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTemplate)
	}
	return &result.Data, nil
}

// ListTemplates lists templates with optional filters.
func (c *Client) ListTemplates(ctx context.Context, params *ListTemplatesParams) ([]TemplateDTO, *ListMeta, error) {
	query := url.Values{}
	if params != nil {
		setQuery(query, "type", params.Type)
		setQueryInt(query, "limit", params.Limit)
		setQueryInt(query, "page", params.Page)
	}

	var result struct {
		Data []TemplateDTO `json:"data"`
		Meta ListMeta      `json:"meta"`
	}
	if err := c.Do(ctx, http.MethodGet, withQuery("/api/v1/templates", query), nil, &result); err != nil {
		return nil, nil, apierrors.WithResourceType(err, apierrors.ResourceTemplate)
	}
	return result.Data, &result.Meta, nil
}

func setQuery(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

func setQueryInt(query url.Values, key string, value int) {
	if value > 0 {
		query.Set(key, strconv.Itoa(value))
	}
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

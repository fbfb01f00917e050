package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formamail/formamail-go/internal/apierrors"
)

func TestSendEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/emails/send" {
			t.Errorf("path = %s, want /api/v1/emails/send", r.URL.Path)
		}

		var req SendEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.TemplateID != "tmpl_welcome" {
			t.Errorf("templateId = %s, want tmpl_welcome", req.TemplateID)
		}
		if req.To != "customer@example.com" {
			t.Errorf("to = %s, want customer@example.com", req.To)
		}
		if !req.TrackOpens {
			t.Error("trackOpens = false, want true")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id":         "email_123",
				"status":     "queued",
				"to":         req.To,
				"templateId": req.TemplateID,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.SendEmail(context.Background(), &SendEmailRequest{
		TemplateID: "tmpl_welcome",
		To:         "customer@example.com",
		TrackOpens: true,
		Variables:  map[string]interface{}{"firstName": "John"},
	})
	if err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	if result.ID != "email_123" {
		t.Errorf("ID = %s, want email_123", result.ID)
	}
	if result.Status != "queued" {
		t.Errorf("Status = %s, want queued", result.Status)
	}
}

func TestListEmails_QueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("recipient"); got != "user@example.com" {
			t.Errorf("recipient = %s", got)
		}
		if got := query.Get("status"); got != "bounced" {
			t.Errorf("status = %s", got)
		}
		if got := query.Get("templateId"); got != "tmpl_1" {
			t.Errorf("templateId = %s", got)
		}
		if got := query.Get("limit"); got != "10" {
			t.Errorf("limit = %s", got)
		}
		if got := query.Get("page"); got != "2" {
			t.Errorf("page = %s", got)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "email_1", "status": "bounced"},
			},
			"meta": map[string]int{"total": 21, "page": 2, "limit": 10, "totalPages": 3},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	emails, meta, err := client.ListEmails(context.Background(), &ListEmailsParams{
		Recipient:  "user@example.com",
		Status:     "bounced",
		TemplateID: "tmpl_1",
		Limit:      10,
		Page:       2,
	})
	if err != nil {
		t.Fatalf("ListEmails() error = %v", err)
	}
	if len(emails) != 1 || emails[0].ID != "email_1" {
		t.Errorf("emails = %+v", emails)
	}
	if meta.Total != 21 || meta.TotalPages != 3 {
		t.Errorf("meta = %+v", meta)
	}
}

func TestListEmails_NilParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %s, want empty", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{},
			"meta": map[string]int{"total": 0},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, _, err := client.ListEmails(context.Background(), nil); err != nil {
		t.Fatalf("ListEmails() error = %v", err)
	}
}

func TestGetTemplate_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "template not found"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetTemplate(context.Background(), "tmpl_missing")
	if !errors.Is(err, apierrors.ErrTemplateNotFound) {
		t.Errorf("GetTemplate() error = %v, want ErrTemplateNotFound", err)
	}
	if errors.Is(err, apierrors.ErrEmailNotFound) {
		t.Error("GetTemplate() error matched ErrEmailNotFound")
	}
}

func TestGetEmail_PathEscaping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/v1/emails/email%2F123" {
			t.Errorf("path = %s", r.URL.EscapedPath())
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"id": "email/123"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.GetEmail(context.Background(), "email/123"); err != nil {
		t.Fatalf("GetEmail() error = %v", err)
	}
}

func TestCreateWebhook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/webhooks" {
			t.Errorf("%s %s, want POST /api/v1/webhooks", r.Method, r.URL.Path)
		}

		var req CreateWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.URL != "https://example.com/hooks" {
			t.Errorf("url = %s", req.URL)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id":      "wh_1",
				"url":     req.URL,
				"events":  req.Events,
				"secret":  "whsec_abc",
				"enabled": true,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	webhook, err := client.CreateWebhook(context.Background(), &CreateWebhookRequest{
		URL:    "https://example.com/hooks",
		Events: []string{"email.sent", "email.bounced"},
	})
	if err != nil {
		t.Fatalf("CreateWebhook() error = %v", err)
	}
	if webhook.ID != "wh_1" {
		t.Errorf("ID = %s, want wh_1", webhook.ID)
	}
	if webhook.Secret != "whsec_abc" {
		t.Errorf("Secret = %s, want whsec_abc", webhook.Secret)
	}
}

func TestUpdateWebhook_PartialBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}

		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, ok := raw["url"]; ok {
			t.Error("url present in body, want omitted")
		}
		if enabled, ok := raw["enabled"].(bool); !ok || enabled {
			t.Errorf("enabled = %v, want false", raw["enabled"])
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"id": "wh_1", "enabled": false},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	enabled := false
	webhook, err := client.UpdateWebhook(context.Background(), "wh_1", &UpdateWebhookRequest{
		Enabled: &enabled,
	})
	if err != nil {
		t.Fatalf("UpdateWebhook() error = %v", err)
	}
	if webhook.Enabled {
		t.Error("Enabled = true, want false")
	}
}

func TestDeleteWebhook_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "webhook not found"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.DeleteWebhook(context.Background(), "wh_missing")
	if !errors.Is(err, apierrors.ErrWebhookNotFound) {
		t.Errorf("DeleteWebhook() error = %v, want ErrWebhookNotFound", err)
	}
}

func TestRotateWebhookSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/webhooks/wh_1/rotate-secret" {
			t.Errorf("%s %s, want POST /api/v1/webhooks/wh_1/rotate-secret", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"id": "wh_1", "secret": "whsec_new"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.RotateWebhookSecret(context.Background(), "wh_1")
	if err != nil {
		t.Fatalf("RotateWebhookSecret() error = %v", err)
	}
	if result.Secret != "whsec_new" {
		t.Errorf("Secret = %s, want whsec_new", result.Secret)
	}
}

func TestGetMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/me" {
			t.Errorf("path = %s, want /api/v1/me", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"id": "acc_1", "email": "owner@example.com"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	account, err := client.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if account.ID != "acc_1" || account.Email != "owner@example.com" {
		t.Errorf("account = %+v", account)
	}
}

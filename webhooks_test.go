package formamail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestWebhooksCreate(t *testing.T) {
	var body map[string]interface{}
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/webhooks" {
			t.Errorf("%s %s, want POST /api/v1/webhooks", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id":      "wh_1",
				"url":     body["url"],
				"events":  body["events"],
				"name":    body["name"],
				"secret":  "whsec_abc123",
				"enabled": true,
			},
		})
	})

	webhook, err := client.Webhooks.Create(context.Background(), "https://example.com/hooks",
		WithWebhookEvents(WebhookEventEmailBounced, WebhookEventEmailDelivered),
		WithWebhookName("delivery tracker"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if webhook.Secret != "whsec_abc123" {
		t.Errorf("Secret = %s", webhook.Secret)
	}
	if len(webhook.Events) != 2 || webhook.Events[0] != WebhookEventEmailBounced {
		t.Errorf("Events = %v", webhook.Events)
	}

	events := body["events"].([]interface{})
	if len(events) != 2 || events[1] != "email.delivered" {
		t.Errorf("request events = %v", events)
	}
	if body["name"] != "delivery tracker" {
		t.Errorf("request name = %v", body["name"])
	}
}

func TestWebhooksCreate_DefaultsToAllEvents(t *testing.T) {
	var body map[string]interface{}
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"id": "wh_1", "enabled": true},
		})
	})

	if _, err := client.Webhooks.Create(context.Background(), "https://example.com/hooks"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Omitting events lets the server subscribe to everything
	if _, ok := body["events"]; ok {
		t.Errorf("events present in body: %v", body["events"])
	}
}

func TestWebhooksList(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"webhooks": []map[string]interface{}{
					{"id": "wh_1", "url": "https://a.example.com", "enabled": true},
					{"id": "wh_2", "url": "https://b.example.com", "enabled": false},
				},
				"total": 2,
			},
		})
	})

	list, err := client.Webhooks.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list.Total != 2 || len(list.Webhooks) != 2 {
		t.Fatalf("list = %+v", list)
	}
	if list.Webhooks[1].Enabled {
		t.Error("second webhook Enabled = true, want false")
	}
}

func TestWebhooksGet_Stats(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id":      "wh_1",
				"url":     "https://example.com/hooks",
				"enabled": true,
				"stats": map[string]interface{}{
					"totalDeliveries":      120,
					"successfulDeliveries": 117,
					"failedDeliveries":     3,
				},
			},
		})
	})

	webhook, err := client.Webhooks.Get(context.Background(), "wh_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if webhook.Stats == nil {
		t.Fatal("Stats is nil")
	}
	if webhook.Stats.TotalDeliveries != 120 || webhook.Stats.FailedDeliveries != 3 {
		t.Errorf("Stats = %+v", webhook.Stats)
	}
}

func TestWebhooksUpdate(t *testing.T) {
	var body map[string]interface{}
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"id": "wh_1", "enabled": false},
		})
	})

	_, err := client.Webhooks.Update(context.Background(), "wh_1",
		WithUpdateEnabled(false),
		WithUpdateEvents(WebhookEventEmailBounced))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if enabled, ok := body["enabled"].(bool); !ok || enabled {
		t.Errorf("enabled = %v, want false", body["enabled"])
	}
	events := body["events"].([]interface{})
	if len(events) != 1 || events[0] != "email.bounced" {
		t.Errorf("events = %v", events)
	}
	// Untouched fields stay out of the body
	if _, ok := body["url"]; ok {
		t.Errorf("url present in body: %v", body["url"])
	}
	if _, ok := body["name"]; ok {
		t.Errorf("name present in body: %v", body["name"])
	}
}

func TestWebhooksDelete(t *testing.T) {
	var deleted bool
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/webhooks/wh_1" {
			t.Errorf("%s %s, want DELETE /api/v1/webhooks/wh_1", r.Method, r.URL.Path)
		}
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Webhooks.Delete(context.Background(), "wh_1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("server never saw the delete")
	}
}

func TestWebhooksDelete_NotFound(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "webhook not found"})
	})

	err := client.Webhooks.Delete(context.Background(), "wh_missing")
	if !errors.Is(err, ErrWebhookNotFound) {
		t.Errorf("Delete() error = %v, want ErrWebhookNotFound", err)
	}
}

func TestWebhooksTest(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/webhooks/wh_1/test" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"success":      false,
				"statusCode":   500,
				"responseTime": 230,
				"error":        "endpoint returned 500",
			},
		})
	})

	result, err := client.Webhooks.Test(context.Background(), "wh_1")
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
	if result.StatusCode != 500 || result.Error == "" {
		t.Errorf("result = %+v", result)
	}
}

func TestWebhooksRotateSecret(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/webhooks/wh_1/rotate-secret" {
			t.Errorf("%s %s, want POST /api/v1/webhooks/wh_1/rotate-secret", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id":                       "wh_1",
				"secret":                   "whsec_new",
				"previousSecretValidUntil": "2026-08-31T12:00:00Z",
			},
		})
	})

	result, err := client.Webhooks.RotateSecret(context.Background(), "wh_1")
	if err != nil {
		t.Fatalf("RotateSecret() error = %v", err)
	}
	if result.Secret != "whsec_new" {
		t.Errorf("Secret = %s", result.Secret)
	}
	if result.PreviousSecretValidUntil == nil {
		t.Error("PreviousSecretValidUntil is nil")
	}
}

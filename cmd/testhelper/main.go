package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	formamail "github.com/formamail/formamail-go"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: testhelper <command> [args]")
	}

	// Pick up FORMAMAIL_* settings from a local .env if one exists.
	godotenv.Load()

	// Signing commands work offline, no client needed.
	switch os.Args[1] {
	case "sign":
		sign()
		return
	case "verify":
		verify()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	opts := []formamail.Option{}
	if baseURL := os.Getenv("FORMAMAIL_URL"); baseURL != "" {
		opts = append(opts, formamail.WithBaseURL(baseURL))
	}

	client, err := formamail.New(os.Getenv("FORMAMAIL_API_KEY"), opts...)
	if err != nil {
		fatal("create client: %v", err)
	}

	switch os.Args[1] {
	case "send":
		if len(os.Args) < 4 {
			fatal("usage: testhelper send <template-id> <recipient>")
		}
		send(ctx, client, os.Args[2], os.Args[3])
	case "get-email":
		if len(os.Args) < 3 {
			fatal("usage: testhelper get-email <email-id>")
		}
		getEmail(ctx, client, os.Args[2])
	case "list-templates":
		listTemplates(ctx, client)
	case "create-webhook":
		if len(os.Args) < 3 {
			fatal("usage: testhelper create-webhook <url>")
		}
		createWebhook(ctx, client, os.Args[2])
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func send(ctx context.Context, client *formamail.Client, templateID, to string) {
	result, err := client.Emails.Send(ctx, &formamail.SendEmailParams{
		TemplateID: templateID,
		To:         to,
	})
	if err != nil {
		fatal("send email: %v", err)
	}

	json.NewEncoder(os.Stdout).Encode(map[string]string{
		"id":     result.ID,
		"status": string(result.Status),
	})
}

func getEmail(ctx context.Context, client *formamail.Client, emailID string) {
	email, err := client.Emails.Get(ctx, emailID)
	if err != nil {
		fatal("get email: %v", err)
	}

	output := map[string]interface{}{
		"id":     email.ID,
		"to":     email.To,
		"status": string(email.Status),
		"opens":  email.Opens,
		"clicks": email.Clicks,
	}
	if email.SentAt != nil {
		output["sentAt"] = email.SentAt.Format(time.RFC3339)
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

func listTemplates(ctx context.Context, client *formamail.Client) {
	list, err := client.Templates.List(ctx, nil)
	if err != nil {
		fatal("list templates: %v", err)
	}

	type templateOutput struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}

	output := struct {
		Templates []templateOutput `json:"templates"`
		Total     int              `json:"total"`
	}{
		Templates: make([]templateOutput, 0, len(list.Templates)),
		Total:     list.Meta.Total,
	}
	for _, tmpl := range list.Templates {
		output.Templates = append(output.Templates, templateOutput{
			ID:   tmpl.ID,
			Name: tmpl.Name,
			Type: string(tmpl.Type),
		})
	}

	json.NewEncoder(os.Stdout).Encode(output)
}

func createWebhook(ctx context.Context, client *formamail.Client, url string) {
	webhook, err := client.Webhooks.Create(ctx, url)
	if err != nil {
		fatal("create webhook: %v", err)
	}

	json.NewEncoder(os.Stdout).Encode(map[string]string{
		"id":     webhook.ID,
		"secret": webhook.Secret,
	})
}

// sign reads a payload from stdin and prints a signature header for it,
// signed with FORMAMAIL_WEBHOOK_SECRET. Useful for testing receivers.
func sign() {
	secret := os.Getenv("FORMAMAIL_WEBHOOK_SECRET")
	if secret == "" {
		fatal("FORMAMAIL_WEBHOOK_SECRET is required")
	}

	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read stdin: %v", err)
	}

	fmt.Println(formamail.SignWebhookPayload(payload, secret, time.Now()))
}

// verify reads a payload from stdin and checks it against the signature
// header given as an argument.
func verify() {
	if len(os.Args) < 3 {
		fatal("usage: testhelper verify <signature-header>")
	}
	secret := os.Getenv("FORMAMAIL_WEBHOOK_SECRET")
	if secret == "" {
		fatal("FORMAMAIL_WEBHOOK_SECRET is required")
	}

	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read stdin: %v", err)
	}

	event, err := formamail.VerifyWebhookSignature(payload, os.Args[2], secret)
	if err != nil {
		fatal("verify: %v", err)
	}

	json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
		"valid": true,
		"type":  event.Type,
	})
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

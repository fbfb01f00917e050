// Package formamail provides a Go client SDK for FormaMail,
// a hosted email-delivery platform with templated sending, generated
// PDF/Excel attachments, bulk sends, and signed webhooks.
//
// Basic usage:
//
//	client, err := formamail.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Emails.Send(ctx, &formamail.SendEmailParams{
//	    TemplateID: "tmpl_welcome",
//	    To:         "customer@example.com",
//	    Variables:  map[string]interface{}{"firstName": "John"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Email sent:", result.ID)
//
// Inbound webhook deliveries are authenticated with VerifyWebhookSignature:
//
//	event, err := formamail.VerifyWebhookSignature(payload, sigHeader, secret)
//	if err != nil {
//	    // reject the delivery with a 4xx response
//	}
package formamail

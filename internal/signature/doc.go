// Package signature implements the FormaMail webhook signature scheme.
//
// Webhook deliveries carry a signature header of the form:
//
//	t=<unix_seconds>,v1=<hex_mac>
//
// where the MAC is HMAC-SHA256 over the canonical string
// "{timestamp}.{payload}" keyed by the webhook signing secret. The header
// may carry multiple v1 entries during a secret-rotation grace window.
//
// Comparison uses hmac.Equal so that verification time does not depend on
// the position of the first mismatching byte.
package signature

package formamail

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/formamail/formamail-go/internal/signature"
)

// SignatureHeader is the HTTP header carrying the webhook signature.
const SignatureHeader = "X-Formamail-Signature"

// DefaultSignatureTolerance is the maximum accepted age of a signed
// timestamp. It bounds the replay window while leaving room for clock
// skew between FormaMail and the receiving server.
const DefaultSignatureTolerance = 5 * time.Minute

// WebhookEvent is the decoded payload of a verified webhook delivery.
type WebhookEvent struct {
	// Type is the event type, e.g. "email.sent" or "email.bounced".
	Type string `json:"type"`
	// Data is the event payload.
	Data map[string]interface{} `json:"data"`
	// CreatedAt is when the event occurred, if the payload carries it.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// verifyConfig holds configuration for signature verification.
type verifyConfig struct {
	tolerance time.Duration
	now       func() time.Time
}

// VerifyOption configures signature verification.
type VerifyOption func(*verifyConfig)

// WithTolerance overrides the accepted age of the signed timestamp.
// Default: DefaultSignatureTolerance
func WithTolerance(tolerance time.Duration) VerifyOption {
	return func(c *verifyConfig) {
		c.tolerance = tolerance
	}
}

// WithNow overrides the clock used for the freshness check. Intended for
// tests; the clock is read exactly once per verification.
func WithNow(now func() time.Time) VerifyOption {
	return func(c *verifyConfig) {
		c.now = now
	}
}

// VerifyWebhookSignature authenticates a webhook delivery and returns the
// decoded event.
//
// The payload must be the raw request body exactly as received on the wire;
// re-encoding it before verification produces false mismatches. sigHeader is
// the value of the SignatureHeader request header, secret the webhook's
// signing secret.
//
// Checks run in a fixed order: header structure, MAC equality (constant
// time), timestamp freshness, payload decoding. Failures are reported as a
// *WebhookSignatureError matching one of ErrMalformedSignature,
// ErrSignatureMismatch, ErrSignatureExpired, or ErrInvalidPayload via
// errors.Is; every failure also matches ErrSignatureInvalid. Callers should
// treat any failure as "reject the delivery".
//
// Verification is a pure function of (payload, header, secret, now); it
// performs no I/O, keeps no state, and is safe to call concurrently.
func VerifyWebhookSignature(payload []byte, sigHeader, secret string, opts ...VerifyOption) (*WebhookEvent, error) {
	cfg := &verifyConfig{
		tolerance: DefaultSignatureTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	now := cfg.now()

	parsed, err := signature.ParseHeader(sigHeader)
	if err != nil {
		if errors.Is(err, signature.ErrMalformedHeader) {
			return nil, &WebhookSignatureError{Kind: ErrMalformedSignature, Message: err.Error()}
		}
		return nil, err
	}

	if !signature.Verify(parsed, payload, secret) {
		return nil, &WebhookSignatureError{
			Kind:    ErrSignatureMismatch,
			Message: "signature does not match payload",
		}
	}

	// Compare in whole seconds; converting age to a Duration would
	// overflow for extreme timestamps.
	age := now.Unix() - parsed.Timestamp
	if age < 0 {
		age = -age
	}
	if age > int64(cfg.tolerance/time.Second) {
		return nil, &WebhookSignatureError{
			Kind:    ErrSignatureExpired,
			Message: "signed timestamp outside tolerance window",
		}
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &WebhookSignatureError{
			Kind:    ErrInvalidPayload,
			Message: "payload is not valid event JSON",
		}
	}
	if event.Type == "" {
		return nil, &WebhookSignatureError{
			Kind:    ErrInvalidPayload,
			Message: "payload is missing event type",
		}
	}

	return &event, nil
}

// SignWebhookPayload produces a signature header for the payload, signed at
// the given time. It mirrors the signing scheme used by the FormaMail
// servers and is intended for building test deliveries.
func SignWebhookPayload(payload []byte, secret string, signedAt time.Time) string {
	return signature.SignHeader(signedAt.Unix(), payload, secret)
}

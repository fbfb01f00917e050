package formamail

import (
	"errors"
	"fmt"

	"github.com/formamail/formamail-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrEmailNotFound is returned when an email is not found.
	ErrEmailNotFound = errors.New("email not found")

	// ErrTemplateNotFound is returned when a template is not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrWebhookNotFound is returned when a webhook is not found.
	ErrWebhookNotFound = errors.New("webhook not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrSignatureInvalid matches every webhook signature verification
	// failure, regardless of the specific cause.
	ErrSignatureInvalid = errors.New("webhook signature verification failed")

	// ErrMalformedSignature is returned when a signature header is missing
	// required fields or cannot be parsed.
	ErrMalformedSignature = errors.New("malformed webhook signature header")

	// ErrSignatureMismatch is returned when the signature does not match
	// the payload. This indicates the payload was tampered with or signed
	// with a different secret.
	ErrSignatureMismatch = errors.New("webhook signature mismatch")

	// ErrSignatureExpired is returned when the signed timestamp is outside
	// the accepted tolerance window.
	ErrSignatureExpired = errors.New("webhook signature timestamp outside tolerance")

	// ErrInvalidPayload is returned when an authenticated payload is not
	// valid event JSON.
	ErrInvalidPayload = errors.New("invalid webhook payload")
)

// FormamailError is implemented by all SDK errors.
type FormamailError interface {
	error
	FormamailError() // marker method
}

// ResourceType indicates which type of resource an API error relates to.
type ResourceType = apierrors.ResourceType

// Resource type constants for APIError.
const (
	ResourceUnknown  = apierrors.ResourceUnknown
	ResourceEmail    = apierrors.ResourceEmail
	ResourceTemplate = apierrors.ResourceTemplate
	ResourceWebhook  = apierrors.ResourceWebhook
)

// APIError represents an HTTP error from the FormaMail API.
type APIError struct {
	StatusCode   int
	Message      string
	RequestID    string
	ResourceType ResourceType
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// FormamailError implements the FormamailError interface.
func (e *APIError) FormamailError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 404:
		switch e.ResourceType {
		case ResourceEmail:
			return target == ErrEmailNotFound
		case ResourceTemplate:
			return target == ErrTemplateNotFound
		case ResourceWebhook:
			return target == ErrWebhookNotFound
		default:
			return target == ErrEmailNotFound || target == ErrTemplateNotFound || target == ErrWebhookNotFound
		}
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FormamailError implements the FormamailError interface.
func (e *NetworkError) FormamailError() {}

// WebhookSignatureError reports why a webhook delivery failed verification.
// Kind is one of ErrMalformedSignature, ErrSignatureMismatch,
// ErrSignatureExpired, or ErrInvalidPayload. Malformed and invalid-payload
// kinds point at configuration or integration bugs; mismatch and expired
// kinds at forged or stale deliveries.
type WebhookSignatureError struct {
	Kind    error
	Message string
}

func (e *WebhookSignatureError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("webhook signature verification failed: %s", e.Message)
	}
	return fmt.Sprintf("webhook signature verification failed: %v", e.Kind)
}

// Is implements errors.Is for sentinel error matching. Every verification
// failure also matches the umbrella ErrSignatureInvalid.
func (e *WebhookSignatureError) Is(target error) bool {
	return target == e.Kind || target == ErrSignatureInvalid
}

// FormamailError implements the FormamailError interface.
func (e *WebhookSignatureError) FormamailError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:   apiErr.StatusCode,
			Message:      apiErr.Message,
			RequestID:    apiErr.RequestID,
			ResourceType: apiErr.ResourceType,
		}
	}

	var netErr *apierrors.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}

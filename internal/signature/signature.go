package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version is the signature scheme version carried in the header.
const Version = "v1"

// ErrMalformedHeader is returned when a signature header cannot be parsed.
var ErrMalformedHeader = errors.New("malformed signature header")

// ParsedHeader is the decoded form of a signature header.
type ParsedHeader struct {
	// Timestamp is the unix time (seconds) at which the payload was signed.
	Timestamp int64
	// MACs holds the decoded v1 signature candidates. More than one is
	// present during a secret-rotation grace window.
	MACs [][]byte
}

// ParseHeader parses a "t=<ts>,v1=<hex>" header. Both fields are required;
// unknown keys are ignored so the scheme can evolve.
func ParseHeader(header string) (*ParsedHeader, error) {
	parsed := &ParsedHeader{Timestamp: -1}

	for _, pair := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("%w: expected key=value pairs", ErrMalformedHeader)
		}

		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil || ts < 0 {
				return nil, fmt.Errorf("%w: invalid timestamp %q", ErrMalformedHeader, value)
			}
			parsed.Timestamp = ts
		case Version:
			mac, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("%w: signature is not valid hex", ErrMalformedHeader)
			}
			parsed.MACs = append(parsed.MACs, mac)
		}
	}

	if parsed.Timestamp < 0 {
		return nil, fmt.Errorf("%w: missing t field", ErrMalformedHeader)
	}
	if len(parsed.MACs) == 0 {
		return nil, fmt.Errorf("%w: missing %s field", ErrMalformedHeader, Version)
	}

	return parsed, nil
}

// Compute returns the HMAC-SHA256 MAC over "{timestamp}.{payload}".
// The payload bytes are used exactly as received on the wire.
func Compute(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// Verify reports whether any MAC candidate in the parsed header matches the
// expected MAC for the payload. Each comparison uses hmac.Equal; all
// candidates are checked so timing does not reveal which one matched.
func Verify(parsed *ParsedHeader, payload []byte, secret string) bool {
	expected := Compute(parsed.Timestamp, payload, secret)

	matched := false
	for _, candidate := range parsed.MACs {
		if hmac.Equal(expected, candidate) {
			matched = true
		}
	}
	return matched
}

// SignHeader produces a full signature header for the payload. It is used
// by the test helper and by callers simulating webhook deliveries.
func SignHeader(timestamp int64, payload []byte, secret string) string {
	mac := Compute(timestamp, payload, secret)
	return fmt.Sprintf("t=%d,%s=%s", timestamp, Version, hex.EncodeToString(mac))
}

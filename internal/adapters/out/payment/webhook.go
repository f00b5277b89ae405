package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shipping/internal/pkg/clock"
)

// SignatureHeader carries "t=<unix>,v1=<hex hmac-sha256 of t.body>".
const SignatureHeader = "Payment-Signature"

// EventCheckoutCompleted is the only event type that drives the saga.
const EventCheckoutCompleted = "checkout.session.completed"

const defaultTolerance = 5 * time.Minute

var (
	// ErrMissingSignature is returned when the signature header is absent or blank.
	ErrMissingSignature = errors.New("webhook signature missing")
	// ErrInvalidSignature is returned for a malformed header or when no v1 entry
	// matches the body.
	ErrInvalidSignature = errors.New("webhook signature invalid")
	// ErrSignatureExpired is returned when the signed timestamp is more than the
	// tolerance away from the clock, in either direction.
	ErrSignatureExpired = errors.New("webhook signature timestamp outside tolerance")
)

// WebhookVerifier authenticates webhook bodies with the shared secret.
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
	clock     clock.Clock
}

// NewWebhookVerifier returns a verifier for secret that accepts timestamps within
// five minutes of clk.
func NewWebhookVerifier(secret string, clk clock.Clock) *WebhookVerifier {
	return &WebhookVerifier{secret: []byte(secret), tolerance: defaultTolerance, clock: clk}
}

// Verify checks header against body. Any v1 entry may match, which lets the
// provider roll its secret.
func (v *WebhookVerifier) Verify(header string, body []byte) error {
	if strings.TrimSpace(header) == "" {
		return ErrMissingSignature
	}

	var (
		timestamp  string
		signatures []string
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return fmt.Errorf("%w: malformed header", ErrInvalidSignature)
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: timestamp: %w", ErrInvalidSignature, err)
	}
	age := v.clock.Now().Sub(time.Unix(unix, 0))
	if age > v.tolerance || age < -v.tolerance {
		return ErrSignatureExpired
	}

	expected := v.sign(timestamp, body)
	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// SignatureFor builds a header value for body at instant at.
func (v *WebhookVerifier) SignatureFor(at time.Time, body []byte) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	return "t=" + timestamp + ",v1=" + v.sign(timestamp, body)
}

func (v *WebhookVerifier) sign(timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// WebhookEvent is the decoded part of a provider event.
type WebhookEvent struct {
	ID        string
	Type      string
	SessionID string
	Metadata  map[string]string
}

type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseWebhookEvent decodes an authenticated webhook body.
func ParseWebhookEvent(body []byte) (WebhookEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return WebhookEvent{}, fmt.Errorf("failed to decode webhook: %w", err)
	}
	if env.Type == "" {
		return WebhookEvent{}, errors.New("webhook has no event type")
	}

	metadata := env.Data.Object.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return WebhookEvent{
		ID:        env.ID,
		Type:      env.Type,
		SessionID: env.Data.Object.ID,
		Metadata:  metadata,
	}, nil
}

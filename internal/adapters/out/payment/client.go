// Package payment talks to the hosted checkout provider: it opens checkout
// sessions and authenticates the completion webhooks the provider sends back.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domain "shipping/internal/core/domain/model/payment"
	"shipping/internal/pkg/clock"
)

const (
	checkoutSessionsPath = "/v1/checkout/sessions"
	defaultTimeout       = 10 * time.Second
	maxErrorBody         = 4 << 10
)

// Config holds the provider endpoint and the redirect targets of the hosted page.
// SessionTTL bounds how long a hosted page accepts payment; it must stay below the
// match time to live so no session can be paid after its match was reaped. Zero
// leaves the provider default.
type Config struct {
	BaseURL    string
	APIKey     string
	SuccessURL string
	CancelURL  string
	SessionTTL time.Duration
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment gateway returned %d: %s", e.StatusCode, e.Message)
}

type checkoutSessionRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	SuccessURL  string            `json:"success_url,omitempty"`
	CancelURL   string            `json:"cancel_url,omitempty"`
	ExpiresAt   int64             `json:"expires_at,omitempty"`
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client creates checkout sessions over the provider's REST API.
type Client struct {
	cfg    Config
	client *http.Client
	clock  clock.Clock
	logger *slog.Logger
}

// NewClient returns a client with a 10s timeout when httpClient is nil.
func NewClient(cfg Config, httpClient *http.Client, clk clock.Clock, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		cfg:    cfg,
		client: httpClient,
		clock:  clk,
		logger: logger.With("component", "payment_gateway"),
	}
}

// CreateCheckoutSession opens a hosted checkout page for request. The correlation
// is sent as metadata and doubles as the idempotency key, so a retried call for
// the same match or order yields the same session.
func (c *Client) CreateCheckoutSession(
	ctx context.Context,
	request domain.CheckoutRequest,
) (domain.CheckoutSession, error) {
	if c.cfg.APIKey == "" {
		return domain.CheckoutSession{}, fmt.Errorf("payment gateway API key not set")
	}
	if err := request.Amount.Validate(); err != nil {
		return domain.CheckoutSession{}, err
	}

	payload := checkoutSessionRequest{
		Amount:      request.Amount.MinorUnits(),
		Currency:    strings.ToLower(request.Amount.Currency()),
		Description: request.Description,
		Metadata:    request.Correlation.Metadata(),
		SuccessURL:  c.cfg.SuccessURL,
		CancelURL:   c.cfg.CancelURL,
	}
	if c.cfg.SessionTTL > 0 {
		payload.ExpiresAt = c.clock.Now().Add(c.cfg.SessionTTL).Unix()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + checkoutSessionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Idempotency-Key", idempotencyKey(request.Correlation))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error.Message != "" {
			apiErr.Message = errResp.Error.Message
		}
		c.logger.WarnContext(ctx, "Checkout session rejected",
			"status", resp.StatusCode, "fee_type", request.Correlation.FeeType.String())
		return domain.CheckoutSession{}, apiErr
	}

	var session checkoutSessionResponse
	if err = json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if session.ID == "" {
		return domain.CheckoutSession{}, fmt.Errorf("payment gateway returned no session id")
	}

	c.logger.InfoContext(ctx, "Checkout session created",
		"session_id", session.ID, "fee_type", request.Correlation.FeeType.String())

	return domain.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func idempotencyKey(c domain.Correlation) string {
	switch c.FeeType {
	case domain.FeeTypeService:
		return "service-" + c.MatchID.String()
	case domain.FeeTypeShipment:
		return "shipment-" + c.OrderID.String()
	case domain.FeeTypeUnknown:
	}
	return ""
}

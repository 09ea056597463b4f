package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/config"
)

// webhookTolerance bounds how old a signed webhook timestamp may be
// before the event is rejected as a possible replay.
const webhookTolerance = 5 * time.Minute

// StripeService handles payment integration with Stripe Checkout
type StripeService struct {
	config config.StripeConfig
	logger *logrus.Logger
	client *http.Client
}

// CheckoutSessionParams contains everything needed to create a hosted
// checkout session for a booking deposit.
type CheckoutSessionParams struct {
	BookingID     string
	PackageSlug   string
	PackageTitle  string
	CustomerEmail string
	AmountCents   int64
	Currency      string
	Description   string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the subset of the Stripe session object we use
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// WebhookEvent represents a Stripe event delivered to the webhook endpoint
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object WebhookSession `json:"object"`
	} `json:"data"`
}

// WebhookSession is the checkout session embedded in a webhook event
type WebhookSession struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

// BookingID returns the booking reference stamped onto the session at
// creation time. Empty when the session was created outside this service.
func (s WebhookSession) BookingID() string {
	return s.Metadata["booking_id"]
}

// stripeErrorResponse is the error envelope Stripe returns on non-2xx
type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewStripeService creates a new Stripe payment service
func NewStripeService(cfg config.StripeConfig, logger *logrus.Logger) *StripeService {
	return &StripeService{
		config: cfg,
		logger: logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateCheckoutSession creates a hosted Stripe Checkout session in payment
// mode with a single deposit line item. The booking id travels in the
// session metadata so webhook events can be tied back to the booking.
func (s *StripeService) CreateCheckoutSession(params *CheckoutSessionParams) (*CheckoutSession, error) {
	if s.config.SecretKey == "" {
		return nil, fmt.Errorf("payment gateway not configured: missing secret key")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("customer_email", params.CustomerEmail)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.PackageTitle+" - Deposit")
	if params.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.Description)
	}
	form.Set("metadata[booking_id]", params.BookingID)
	form.Set("metadata[package_slug]", params.PackageSlug)

	s.logger.WithFields(logrus.Fields{
		"booking_id": params.BookingID,
		"package":    params.PackageSlug,
		"amount":     params.AmountCents,
		"currency":   params.Currency,
	}).Info("Creating Stripe checkout session")

	endpoint := s.config.APIBaseURL + "/v1/checkout/sessions"
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Failed to call Stripe")
		return nil, fmt.Errorf("failed to call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp stripeErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("checkout session created without redirect URL")
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": params.BookingID,
		"session_id": session.ID,
	}).Info("Stripe checkout session created")

	return &session, nil
}

// ConstructEvent verifies the Stripe-Signature header against the raw
// request body, then decodes the event. Verification failures return an
// error and the event must not be processed.
func (s *StripeService) ConstructEvent(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	if err := s.verifySignature(payload, signatureHeader, time.Now()); err != nil {
		return nil, err
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook event: %w", err)
	}
	return &event, nil
}

// verifySignature implements Stripe's signing scheme: the header carries a
// timestamp and one or more v1 signatures, each an HMAC-SHA256 over
// "<timestamp>.<body>" keyed with the webhook signing secret.
func (s *StripeService) verifySignature(payload []byte, header string, now time.Time) error {
	if s.config.WebhookSecret == "" {
		return fmt.Errorf("webhook signing secret not configured")
	}
	if header == "" {
		return fmt.Errorf("missing signature header")
	}

	var timestamp int64
	var signatures [][]byte
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid signature timestamp")
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(s.config.WebhookSecret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return fmt.Errorf("signature verification failed")
}

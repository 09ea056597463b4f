package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/events"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/internal/services"
)

// WebhookVerifier verifies and decodes signed gateway events
type WebhookVerifier interface {
	ConstructEvent(payload []byte, signatureHeader string) (*services.WebhookEvent, error)
}

// WebhookHandler reconciles booking state from Stripe webhook events.
// Stripe retries deliveries, so every path here must be idempotent.
type WebhookHandler struct {
	store     BookingStore
	verifier  WebhookVerifier
	activity  ActivityRecorder
	publisher EventPublisher
	logger    *logrus.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(
	store BookingStore,
	verifier WebhookVerifier,
	activity ActivityRecorder,
	publisher EventPublisher,
	logger *logrus.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		store:     store,
		verifier:  verifier,
		activity:  activity,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleStripeEvent is the endpoint Stripe delivers events to. The
// signature is checked against the raw body before anything is parsed;
// unverified payloads are rejected outright.
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := h.verifier.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.WithError(err).Warn("Rejected webhook delivery")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		h.handleSessionCompleted(c, event)
	case "checkout.session.expired":
		h.handleSessionExpired(c, event)
	default:
		// Unhandled event types are acknowledged so Stripe stops
		// retrying them.
		h.logger.WithField("type", event.Type).Debug("Ignoring webhook event")
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func (h *WebhookHandler) handleSessionCompleted(c *gin.Context, event *services.WebhookEvent) {
	session := event.Data.Object
	bookingID := session.BookingID()
	if bookingID == "" {
		h.logger.WithField("session_id", session.ID).Warn("Completed session carries no booking reference")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	booking, err := h.store.GetByID(bookingID)
	if err != nil {
		h.logger.WithError(err).WithField("booking_id", bookingID).Warn("Completed session references unknown booking")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	next, err := booking.Status.Apply(models.EventSessionCompleted)
	if err != nil {
		h.logger.WithError(err).WithField("booking_id", bookingID).Warn("Ignoring completed session")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := h.store.MarkDepositPaid(bookingID, session.PaymentIntent, next); err != nil {
		h.logger.WithError(err).WithField("booking_id", bookingID).Error("Failed to mark deposit paid")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"session_id": session.ID,
	}).Info("Deposit payment confirmed")

	h.activity.LogDepositPaid(bookingID, session.ID, booking.DepositAmount)

	_ = h.publisher.Publish(c.Request.Context(), events.BookingEvent{
		Type:        events.TypeBookingDepositPaid,
		BookingID:   bookingID,
		PackageSlug: booking.PackageSlug,
		Status:      string(next),
		Amount:      booking.DepositAmount,
	})

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) handleSessionExpired(c *gin.Context, event *services.WebhookEvent) {
	session := event.Data.Object
	bookingID := session.BookingID()
	if bookingID == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	booking, err := h.store.GetByID(bookingID)
	if err != nil {
		h.logger.WithError(err).WithField("booking_id", bookingID).Warn("Expired session references unknown booking")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	next, err := booking.Status.Apply(models.EventSessionExpired)
	if err != nil {
		// A paid booking can see a late expiry for a superseded
		// session. Acknowledge without touching the booking.
		h.logger.WithError(err).WithField("booking_id", bookingID).Warn("Ignoring expired session")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if next != booking.Status {
		if err := h.store.UpdateStatus(bookingID, next); err != nil {
			h.logger.WithError(err).WithField("booking_id", bookingID).Error("Failed to revert booking status")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
			return
		}
		h.activity.LogBookingStatusChanged(bookingID, booking.Status, next, "session_expired")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

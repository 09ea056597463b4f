package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/config"
	"github.com/lattencreative/studio-backend/internal/events"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/internal/services"
)

// PaymentGateway creates hosted checkout sessions for deposits
type PaymentGateway interface {
	CreateCheckoutSession(params *services.CheckoutSessionParams) (*services.CheckoutSession, error)
}

// CheckoutHandler turns a pending booking into a payment redirect
type CheckoutHandler struct {
	store     BookingStore
	gateway   PaymentGateway
	activity  ActivityRecorder
	publisher EventPublisher
	appCfg    config.AppConfig
	logger    *logrus.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(
	store BookingStore,
	gateway PaymentGateway,
	activity ActivityRecorder,
	publisher EventPublisher,
	appCfg config.AppConfig,
	logger *logrus.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		store:     store,
		gateway:   gateway,
		activity:  activity,
		publisher: publisher,
		appCfg:    appCfg,
		logger:    logger,
	}
}

// checkoutRequest is the body of POST /api/v1/checkout
type checkoutRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// CreateSession creates a Stripe Checkout session for the booking's
// deposit and moves the booking to confirmed. Re-requesting a session
// before payment is allowed and mints a fresh link; a booking whose
// deposit is already paid is rejected.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingId is required"})
		return
	}

	booking, err := h.store.GetByID(req.BookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load booking for checkout")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking"})
		return
	}

	if booking.DepositPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deposit already paid for this booking"})
		return
	}

	next, err := booking.Status.Apply(models.EventCheckoutSessionCreated)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("booking is %s and cannot start checkout", booking.Status)})
		return
	}

	session, err := h.gateway.CreateCheckoutSession(&services.CheckoutSessionParams{
		BookingID:     booking.ID,
		PackageSlug:   booking.PackageSlug,
		PackageTitle:  booking.PackageTitle,
		CustomerEmail: booking.CustomerEmail,
		AmountCents:   booking.DepositAmount,
		Currency:      h.appCfg.Currency,
		Description:   fmt.Sprintf("%d%% deposit for %s", booking.DepositAmount*100/booking.PackagePrice, booking.PackageTitle),
		SuccessURL:    h.appCfg.PublicURL + "/booking/success?session_id={CHECKOUT_SESSION_ID}&booking_id=" + booking.ID,
		CancelURL:     h.appCfg.PublicURL + "/booking?cancelled=true&booking_id=" + booking.ID,
	})
	if err != nil {
		h.logger.WithError(err).WithField("booking_id", booking.ID).Error("Checkout session creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}

	if err := h.store.SetCheckoutSession(booking.ID, session.ID, next); err != nil {
		h.logger.WithError(err).WithField("booking_id", booking.ID).Error("Failed to record checkout session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		return
	}

	h.activity.LogBookingStatusChanged(booking.ID, booking.Status, next, "checkout_session_created")

	_ = h.publisher.Publish(c.Request.Context(), events.BookingEvent{
		Type:        events.TypeBookingConfirmed,
		BookingID:   booking.ID,
		PackageSlug: booking.PackageSlug,
		Status:      string(next),
		Amount:      booking.DepositAmount,
	})

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

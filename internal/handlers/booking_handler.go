package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/events"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/pkg/wizard"
)

// BookingStore is the persistence surface the booking handlers need
type BookingStore interface {
	Create(booking *models.Booking) error
	GetByID(bookingID string) (*models.Booking, error)
	SetCheckoutSession(bookingID, sessionID string, status models.BookingStatus) error
	MarkDepositPaid(bookingID, paymentIntentID string, status models.BookingStatus) error
	UpdateStatus(bookingID string, status models.BookingStatus) error
}

// EventPublisher emits booking lifecycle events to the broker
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// BookingHandler handles public booking intake
type BookingHandler struct {
	store     BookingStore
	activity  ActivityRecorder
	publisher EventPublisher
	logger    *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(store BookingStore, activity ActivityRecorder, publisher EventPublisher, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		store:     store,
		activity:  activity,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking accepts a booking submission from the public wizard and
// stores it with status pending. Payment happens in a separate request.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking := req.ToBooking()
	if err := h.store.Create(booking); err != nil {
		h.logger.WithError(err).Error("Failed to create booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"package":    booking.PackageSlug,
	}).Info("Booking created")

	h.activity.LogBookingCreated(booking, c.Request.UserAgent())

	// Best effort, the booking is already stored.
	_ = h.publisher.Publish(c.Request.Context(), events.BookingEvent{
		Type:        events.TypeBookingCreated,
		BookingID:   booking.ID,
		PackageSlug: booking.PackageSlug,
		Status:      string(booking.Status),
	})

	c.JSON(http.StatusCreated, gin.H{"bookingId": booking.ID})
}

// GetAvailability returns the bookable dates and time slots the wizard
// offers for its schedule step.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dates":     wizard.AvailableDates(time.Now()),
		"timeSlots": wizard.TimeSlots(),
	})
}

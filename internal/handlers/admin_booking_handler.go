package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/database"
	"github.com/lattencreative/studio-backend/internal/models"
)

// AdminBookingHandler exposes booking management to the dashboard
type AdminBookingHandler struct {
	bookings *database.BookingRepository
	clients  *database.ClientRepository
	projects *database.ProjectRepository
	activity ActivityRecorder
	logger   *logrus.Logger
}

// NewAdminBookingHandler creates a new AdminBookingHandler
func NewAdminBookingHandler(
	bookings *database.BookingRepository,
	clients *database.ClientRepository,
	projects *database.ProjectRepository,
	activity ActivityRecorder,
	logger *logrus.Logger,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		bookings: bookings,
		clients:  clients,
		projects: projects,
		activity: activity,
		logger:   logger,
	}
}

// ListBookings returns bookings newest-first, optionally filtered by status
func (h *AdminBookingHandler) ListBookings(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.BookingStatus(status).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown status: %s", status)})
		return
	}

	limit, offset := parsePagination(c)

	bookings, err := h.bookings.List(status, limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking returns a single booking
func (h *AdminBookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookings.GetByID(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// updateStatusRequest is the body of PATCH /admin/bookings/:id/status
type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// statusEvents maps a requested target status to the lifecycle event
// that produces it. Statuses reachable only through payment flow are
// absent on purpose.
var statusEvents = map[models.BookingStatus]models.BookingEvent{
	models.StatusInProgress: models.EventWorkStarted,
	models.StatusCompleted:  models.EventWorkCompleted,
	models.StatusCancelled:  models.EventCancelled,
}

// UpdateStatus moves a booking through the manual part of its lifecycle.
// Payment-driven statuses cannot be set here; they belong to the
// checkout and webhook flows.
func (h *AdminBookingHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	target := models.BookingStatus(req.Status)
	event, ok := statusEvents[target]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("status %s cannot be set manually", req.Status)})
		return
	}

	booking, err := h.bookings.GetByID(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking"})
		return
	}

	next, err := booking.Status.Apply(event)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := h.bookings.UpdateStatus(booking.ID, next); err != nil {
		h.logger.WithError(err).Error("Failed to update booking status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		return
	}

	h.activity.LogBookingStatusChanged(booking.ID, booking.Status, next, "admin")

	c.JSON(http.StatusOK, gin.H{"id": booking.ID, "status": next})
}

// DeleteBooking removes a booking entirely
func (h *AdminBookingHandler) DeleteBooking(c *gin.Context) {
	bookingID := c.Param("id")

	if err := h.bookings.Delete(bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to delete booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ConvertToClient creates a client record from a booking. Converting the
// same booking twice returns the existing client.
func (h *AdminBookingHandler) ConvertToClient(c *gin.Context) {
	bookingID := c.Param("id")

	booking, err := h.bookings.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking"})
		return
	}

	if existing, err := h.clients.GetByBookingID(bookingID); err == nil {
		c.JSON(http.StatusOK, existing)
		return
	} else if err != sql.ErrNoRows {
		h.logger.WithError(err).Error("Failed to check existing client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to convert booking"})
		return
	}

	client := &models.Client{
		Name:      booking.CustomerName,
		Email:     booking.CustomerEmail,
		Phone:     booking.CustomerPhone,
		Company:   booking.CompanyName,
		Status:    models.ClientStatusActive,
		Source:    models.ClientSourceBooking,
		BookingID: &booking.ID,
	}
	if err := h.clients.Create(client); err != nil {
		h.logger.WithError(err).Error("Failed to create client from booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to convert booking"})
		return
	}

	h.activity.LogClientCreated(client)

	// Seed a project from the booked package so the engagement shows up
	// on the dashboard immediately.
	if booking.PackageTitle != "" {
		project := &models.Project{
			Title:     booking.PackageTitle,
			ClientID:  client.ID,
			BookingID: &booking.ID,
			Status:    models.ProjectStatusPlanning,
			Budget:    &booking.PackagePrice,
		}
		if booking.ProjectDescription != "" {
			desc := booking.ProjectDescription
			project.Description = &desc
		}
		if err := h.projects.Create(project); err != nil {
			h.logger.WithError(err).WithField("booking_id", bookingID).Warn("Failed to create project from booking")
		} else {
			h.activity.LogProjectCreated(project)
		}
	}

	c.JSON(http.StatusCreated, client)
}

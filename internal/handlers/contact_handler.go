package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/models"
)

// ContactStore persists contact form messages
type ContactStore interface {
	Create(contact *models.Contact) error
	List(limit, offset int) ([]models.Contact, error)
}

// ContactHandler handles the public contact form
type ContactHandler struct {
	store    ContactStore
	activity ActivityRecorder
	logger   *logrus.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(store ContactStore, activity ActivityRecorder, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{store: store, activity: activity, logger: logger}
}

// CreateContact accepts a contact form submission
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact := req.ToContact()
	if err := h.store.Create(contact); err != nil {
		h.logger.WithError(err).Error("Failed to store contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	h.activity.LogContactReceived(contact, c.Request.UserAgent())

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// ListContacts returns contact messages for the dashboard
func (h *ContactHandler) ListContacts(c *gin.Context) {
	limit, offset := parsePagination(c)

	contacts, err := h.store.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/database"
	"github.com/lattencreative/studio-backend/internal/models"
)

// ClientHandler exposes client management to the dashboard
type ClientHandler struct {
	clients  *database.ClientRepository
	activity ActivityRecorder
	logger   *logrus.Logger
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *database.ClientRepository, activity ActivityRecorder, logger *logrus.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, activity: activity, logger: logger}
}

// CreateClient adds a client manually
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req models.UpsertClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := req.ToClient()
	if err := h.clients.Create(client); err != nil {
		h.logger.WithError(err).Error("Failed to create client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		return
	}

	h.activity.LogClientCreated(client)

	c.JSON(http.StatusCreated, client)
}

// ListClients returns clients newest-first, optionally filtered by status
func (h *ClientHandler) ListClients(c *gin.Context) {
	limit, offset := parsePagination(c)

	clients, err := h.clients.List(c.Query("status"), limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list clients")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClient returns a single client
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clients.GetByID(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient rewrites the mutable fields of a client
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req models.UpsertClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clients.GetByID(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load client"})
		return
	}

	updated := req.ToClient()
	updated.ID = client.ID
	updated.Source = client.Source
	updated.BookingID = client.BookingID

	if err := h.clients.Update(updated); err != nil {
		h.logger.WithError(err).Error("Failed to update client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/services"
)

// ActivityHandler serves the dashboard activity feed
type ActivityHandler struct {
	activity *services.ActivityService
	logger   *logrus.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activity *services.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{activity: activity, logger: logger}
}

// ListRecent returns the latest activity entries
func (h *ActivityHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	entries, err := h.activity.Recent(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load activity feed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}

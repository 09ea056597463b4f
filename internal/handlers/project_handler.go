package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/database"
	"github.com/lattencreative/studio-backend/internal/models"
)

// ProjectHandler exposes project management to the dashboard
type ProjectHandler struct {
	projects *database.ProjectRepository
	clients  *database.ClientRepository
	activity ActivityRecorder
	logger   *logrus.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(
	projects *database.ProjectRepository,
	clients *database.ClientRepository,
	activity ActivityRecorder,
	logger *logrus.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		clients:  clients,
		activity: activity,
		logger:   logger,
	}
}

// CreateProject adds a project under an existing client
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.clients.GetByID(req.ClientID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	project := req.ToProject()
	if err := h.projects.Create(project); err != nil {
		h.logger.WithError(err).Error("Failed to create project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	h.activity.LogProjectCreated(project)

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns projects newest-first, optionally scoped to a client
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	limit, offset := parsePagination(c)

	projects, err := h.projects.List(c.Query("clientId"), limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject returns a single project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projects.GetByID(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// updateProjectStatusRequest is the body of PATCH /admin/projects/:id/status
type updateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a project to a new status
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var req updateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	status := models.ProjectStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown status: %s", req.Status)})
		return
	}

	if err := h.projects.UpdateStatus(c.Param("id"), status); err != nil {
		h.logger.WithError(err).Error("Failed to update project status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": status})
}

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/lattencreative/studio-backend/internal/database"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/pkg/jwt"
)

// AdminAuthHandler handles dashboard login and token refresh
type AdminAuthHandler struct {
	users      *database.AdminUserRepository
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewAdminAuthHandler creates a new AdminAuthHandler
func NewAdminAuthHandler(users *database.AdminUserRepository, jwtService *jwt.Service, logger *logrus.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{users: users, jwtService: jwtService, logger: logger}
}

// Login verifies credentials and issues an access and refresh token pair.
// Unknown email and wrong password answer identically.
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		if err != sql.ErrNoRows {
			h.logger.WithError(err).Error("Failed to load admin account")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	pair, err := h.issueTokens(user.ID, user.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue tokens")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := h.users.TouchLastLogin(user.ID); err != nil {
		h.logger.WithError(err).Warn("Failed to stamp last login")
	}

	h.logger.WithField("email", user.Email).Info("Admin login")

	c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a valid refresh token for a new token pair
func (h *AdminAuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refreshToken is required"})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}

	pair, err := h.issueTokens(claims.AdminID, claims.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue tokens")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token refresh failed"})
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (h *AdminAuthHandler) issueTokens(adminID uuid.UUID, email string) (*models.TokenPairResponse, error) {
	access, err := h.jwtService.GenerateAccessToken(adminID, email)
	if err != nil {
		return nil, err
	}
	refresh, err := h.jwtService.GenerateRefreshToken(adminID, email)
	if err != nil {
		return nil, err
	}
	return &models.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(h.jwtService.AccessTokenExpiry().Seconds()),
	}, nil
}

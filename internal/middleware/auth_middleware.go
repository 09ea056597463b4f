package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lattencreative/studio-backend/pkg/jwt"
)

// AdminContextKey is the key used to store admin information in Gin context
const AdminContextKey = "admin"

// AdminContext represents the authenticated dashboard account
type AdminContext struct {
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
}

// AuthMiddleware validates the Bearer access token on dashboard routes
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization header format, expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired access token",
			})
			c.Abort()
			return
		}

		c.Set(AdminContextKey, AdminContext{
			AdminID: claims.AdminID,
			Email:   claims.Email,
		})

		c.Next()
	}
}

// GetAdminContext retrieves the authenticated admin from the Gin context
func GetAdminContext(c *gin.Context) (AdminContext, bool) {
	value, exists := c.Get(AdminContextKey)
	if !exists {
		return AdminContext{}, false
	}

	adminCtx, ok := value.(AdminContext)
	return adminCtx, ok
}

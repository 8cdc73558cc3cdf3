package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/config"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// AuthMiddleware verifies the identity provider's session token and stores
// the externally-verified user id in the context. Identity itself is owned
// by the provider; the server only extracts the already-verified subject.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.VerifySessionToken(parts[1], cfg.Identity)
		if err != nil {
			utils.Unauthorized(c, "Invalid session token: "+err.Error())
			c.Abort()
			return
		}

		c.Set("externalID", claims.ExternalID())

		c.Next()
	}
}

// RoleAuthMiddleware restricts a route to users holding one of the given
// roles. The role lives in our database, not in the provider's token, so it
// is looked up per request. It should be used *after* AuthMiddleware.
func RoleAuthMiddleware(db *gorm.DB, allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID, exists := GetExternalIDFromContext(c)
		if !exists {
			utils.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("external_id = ?", externalID).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.Forbidden(c, "You do not have permission to access this resource.")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			c.Abort()
			return
		}

		isAllowed := false
		if user.Role != nil {
			for _, allowedRole := range allowedRoles {
				if *user.Role == allowedRole {
					isAllowed = true
					break
				}
			}
		}

		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetExternalIDFromContext returns the externally-verified caller id set by
// AuthMiddleware.
func GetExternalIDFromContext(c *gin.Context) (string, bool) {
	externalID, exists := c.Get("externalID")
	if !exists {
		return "", false
	}
	idStr, ok := externalID.(string)
	return idStr, ok && idStr != ""
}

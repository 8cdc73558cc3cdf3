package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// UserHandler handles identity sync and role assignment.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// SyncUserRequest represents the request body for syncing a signed-in user.
type SyncUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SyncUser upserts the User row for the caller's external identity. The first
// sync inserts a row with no role; the UI then routes to role selection.
func (h *UserHandler) SyncUser(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SyncUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	err := h.DB.Where("external_id = ?", externalID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			ExternalID: externalID,
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
		}
		if err := h.DB.Create(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to sync user: "+err.Error())
			return
		}
		utils.Success(c, gin.H{"user": user})
		return
	} else if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to sync user: "+err.Error())
		return
	}

	utils.Success(c, gin.H{"user": user})
}

// GetRole returns the role chosen by the given external identity, or null if
// the user has not chosen one (or has never synced).
func (h *UserHandler) GetRole(c *gin.Context) {
	externalID := c.Param("externalId")
	if externalID == "" {
		utils.BadRequest(c, "Missing external id")
		return
	}

	var user models.User
	if err := h.DB.Where("external_id = ?", externalID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Success(c, gin.H{"role": nil})
		} else {
			utils.InternalServerError(c, "Failed to get role: "+err.Error())
		}
		return
	}

	utils.Success(c, gin.H{"role": user.Role})
}

// SetRoleRequest represents the request body for choosing a role.
type SetRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// SetRole assigns a role to the caller's user record, creating the record if
// the sync call was skipped.
func (h *UserHandler) SetRole(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SetRoleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !models.ValidRole(req.Role) {
		utils.BadRequest(c, "Invalid role")
		return
	}

	var user models.User
	err := h.DB.Where("external_id = ?", externalID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{ExternalID: externalID, Role: &req.Role}
		if err := h.DB.Create(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to set role: "+err.Error())
			return
		}
		utils.Success(c, gin.H{"role": user.Role})
		return
	} else if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user.Role = &req.Role
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to set role: "+err.Error())
		return
	}

	utils.Success(c, gin.H{"role": user.Role})
}

// GetUsers handles fetching all users (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("created_at asc").Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	utils.Success(c, gin.H{"users": users})
}

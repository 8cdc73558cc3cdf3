package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// DoctorHandler handles doctor directory and profile requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// GetDoctors handles the public discovery listing.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Order("name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, doctors)
}

// GetDoctorByID handles fetching a single doctor profile.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctorID := c.Param("id")
	if _, err := uuid.Parse(doctorID); err != nil {
		utils.BadRequest(c, "Invalid doctor id format")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch doctor: "+err.Error())
		}
		return
	}
	utils.Success(c, doctor)
}

// GetOwnDoctor resolves the caller's doctor profile, auto-creating a
// default-shaped one on first contact (sync semantics).
func (h *DoctorHandler) GetOwnDoctor(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var doctor models.Doctor
	err := h.DB.Where("external_id = ?", externalID).First(&doctor).Error
	if err == gorm.ErrRecordNotFound {
		doctor = models.Doctor{
			ExternalID: externalID,
			Name:       "New Doctor",
			Specialty:  "General",
		}
		if err := h.DB.Create(&doctor).Error; err != nil {
			utils.InternalServerError(c, "Failed to create doctor profile: "+err.Error())
			return
		}
		utils.Success(c, doctor)
		return
	} else if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctor profile: "+err.Error())
		return
	}

	utils.Success(c, doctor)
}

// CreateDoctorRequest represents the request body for creating a doctor profile.
type CreateDoctorRequest struct {
	Name              string             `json:"name" binding:"required"`
	Specialty         string             `json:"specialty" binding:"required"`
	LicenseNumber     string             `json:"licenseNumber"`
	Location          string             `json:"location"`
	YearsOfExperience int                `json:"yearsOfExperience"`
	LanguagesSpoken   []string           `json:"languagesSpoken"`
	Bio               string             `json:"bio"`
	ContactInfo       models.ContactInfo `json:"contactInfo"`
	ProfileImage      string             `json:"profileImage"`
}

// CreateDoctor creates the caller's doctor profile. One profile per identity.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Doctor
	if err := h.DB.Where("external_id = ?", externalID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Doctor profile already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	doctor := models.Doctor{
		ExternalID:        externalID,
		Name:              req.Name,
		Specialty:         req.Specialty,
		LicenseNumber:     req.LicenseNumber,
		Location:          req.Location,
		YearsOfExperience: req.YearsOfExperience,
		LanguagesSpoken:   req.LanguagesSpoken,
		Bio:               req.Bio,
		ContactInfo:       req.ContactInfo,
		ProfileImage:      req.ProfileImage,
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor profile: "+err.Error())
		return
	}

	utils.Created(c, doctor)
}

// UpdateDoctorRequest represents the request body for a self-service profile
// edit. Pointer fields distinguish "not sent" from "set to empty".
type UpdateDoctorRequest struct {
	Name              *string             `json:"name"`
	Specialty         *string             `json:"specialty"`
	LicenseNumber     *string             `json:"licenseNumber"`
	Location          *string             `json:"location"`
	YearsOfExperience *int                `json:"yearsOfExperience"`
	LanguagesSpoken   *[]string           `json:"languagesSpoken"`
	Bio               *string             `json:"bio"`
	ContactInfo       *models.ContactInfo `json:"contactInfo"`
	ProfileImage      *string             `json:"profileImage"`
}

// UpdateOwnDoctor applies a partial update to the caller's doctor profile.
func (h *DoctorHandler) UpdateOwnDoctor(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	if err := h.DB.Where("external_id = ?", externalID).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.LicenseNumber != nil {
		doctor.LicenseNumber = *req.LicenseNumber
	}
	if req.Location != nil {
		doctor.Location = *req.Location
	}
	if req.YearsOfExperience != nil {
		doctor.YearsOfExperience = *req.YearsOfExperience
	}
	if req.LanguagesSpoken != nil {
		doctor.LanguagesSpoken = *req.LanguagesSpoken
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.ContactInfo != nil {
		doctor.ContactInfo = *req.ContactInfo
	}
	if req.ProfileImage != nil {
		doctor.ProfileImage = *req.ProfileImage
	}

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, doctor)
}

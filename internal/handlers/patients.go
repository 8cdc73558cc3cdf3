package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// PatientHandler handles patient profile requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// CreatePatientRequest represents the request body for creating a patient profile.
type CreatePatientRequest struct {
	Name             string                  `json:"name" binding:"required"`
	DateOfBirth      *time.Time              `json:"dateOfBirth"`
	Gender           models.Gender           `json:"gender"`
	ContactInfo      models.ContactInfo      `json:"contactInfo"`
	MedicalHistory   []string                `json:"medicalHistory"`
	Allergies        []string                `json:"allergies"`
	EmergencyContact models.EmergencyContact `json:"emergencyContact"`
}

// CreatePatient creates the caller's patient profile. The user record must
// exist (synced on sign-in) and only one profile per identity is allowed.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Gender != "" && !models.ValidGender(req.Gender) {
		utils.BadRequest(c, "Invalid gender value")
		return
	}

	var user models.User
	if err := h.DB.Where("external_id = ?", externalID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var existing models.Patient
	if err := h.DB.Where("external_id = ?", externalID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Patient profile already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	patient := models.Patient{
		ExternalID:       externalID,
		Name:             req.Name,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		ContactInfo:      req.ContactInfo,
		MedicalHistory:   req.MedicalHistory,
		Allergies:        req.Allergies,
		EmergencyContact: req.EmergencyContact,
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient profile: "+err.Error())
		return
	}

	utils.Created(c, patient)
}

// GetOwnPatient returns the caller's patient profile. A 404 here means the
// profile has not been created yet; the UI routes to profile creation.
func (h *PatientHandler) GetOwnPatient(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var patient models.Patient
	if err := h.DB.Where("external_id = ?", externalID).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, patient)
}

// UpdatePatientRequest represents a partial patient profile update.
type UpdatePatientRequest struct {
	Name             *string                  `json:"name"`
	DateOfBirth      *time.Time               `json:"dateOfBirth"`
	Gender           *models.Gender           `json:"gender"`
	ContactInfo      *models.ContactInfo      `json:"contactInfo"`
	MedicalHistory   *[]string                `json:"medicalHistory"`
	Allergies        *[]string                `json:"allergies"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact"`
}

// UpdateOwnPatient applies a partial update to the caller's patient profile.
func (h *PatientHandler) UpdateOwnPatient(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Gender != nil && !models.ValidGender(*req.Gender) {
		utils.BadRequest(c, "Invalid gender value")
		return
	}

	var patient models.Patient
	if err := h.DB.Where("external_id = ?", externalID).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.ContactInfo != nil {
		patient.ContactInfo = *req.ContactInfo
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, patient)
}

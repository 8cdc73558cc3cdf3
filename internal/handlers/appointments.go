package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/scheduling"
	"medibook-server/internal/utils"
)

// AppointmentHandler handles booking, status transitions, and the note
// thread embedded in each appointment.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// CreateAppointmentRequest represents the request body for booking.
type CreateAppointmentRequest struct {
	DoctorID          string             `json:"doctorId" binding:"required,uuid"`
	Date              string             `json:"date" binding:"required"`
	Time              string             `json:"time"`
	Reason            string             `json:"reason"`
	PatientName       string             `json:"patientName"`
	IsRecurring       bool               `json:"isRecurring"`
	RecurrencePattern scheduling.Pattern `json:"recurrencePattern"`
	RecurrenceCount   int                `json:"recurrenceCount"`
}

// parseStartTime combines the booking form's date and optional time fields
// into a single instant. Time defaults to midnight when omitted.
func parseStartTime(dateStr, timeStr string) (time.Time, error) {
	if timeStr == "" {
		timeStr = "00:00"
	}
	combined := dateStr + "T" + timeStr
	if t, err := time.Parse("2006-01-02T15:04", combined); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", combined)
}

// CreateAppointment books one or more occurrences for the calling patient.
// A recurring request expands into one row per occurrence; all rows are
// inserted in a single transaction so the booking fully succeeds or fails.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	start, err := parseStartTime(req.Date, req.Time)
	if err != nil {
		utils.BadRequest(c, "Invalid date or time format")
		return
	}

	pattern := req.RecurrencePattern
	if pattern == "" {
		pattern = scheduling.PatternNone
	}
	if !pattern.Valid() {
		utils.BadRequest(c, "Invalid recurrence pattern")
		return
	}
	if !req.IsRecurring {
		pattern = scheduling.PatternNone
	}

	count := req.RecurrenceCount
	if count < 1 {
		count = 1
	}

	// Verify the referenced doctor exists
	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	// Resolve the caller's patient profile when one exists. Booking still
	// works before the profile is created; the external id is always kept.
	var patientID *string
	patientName := req.PatientName
	var patient models.Patient
	if err := h.DB.Where("external_id = ?", externalID).First(&patient).Error; err == nil {
		patientID = &patient.ID
		if patientName == "" {
			patientName = patient.Name
		}
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error resolving patient: "+err.Error())
		return
	}

	occurrences, err := scheduling.Expand(start, pattern, count)
	if err != nil {
		utils.BadRequest(c, "Invalid recurrence descriptor: "+err.Error())
		return
	}

	isRecurring := pattern != scheduling.PatternNone && len(occurrences) > 1

	appointments := make([]models.Appointment, 0, len(occurrences))
	for _, occ := range occurrences {
		appointments = append(appointments, models.Appointment{
			DoctorID:          doctor.ID,
			PatientID:         patientID,
			PatientExternalID: externalID,
			PatientName:       patientName,
			Reason:            req.Reason,
			Date:              occ,
			Status:            models.StatusPending,
			IsRecurring:       isRecurring,
			RecurrencePattern: pattern,
			RecurrenceCount:   len(occurrences),
			Notes:             []models.Note{},
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for i := range appointments {
			if err := tx.Create(&appointments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, appointments)
}

// GetAppointmentsForPatient lists the caller's upcoming and past
// appointments, canceled ones excluded, earliest first.
func (h *AppointmentHandler) GetAppointmentsForPatient(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointments []models.Appointment
	err := h.DB.
		Preload("Notes", notesInThreadOrder).
		Where("patient_external_id = ? AND status <> ?", externalID, models.StatusCanceled).
		Order("date asc").
		Find(&appointments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointments: "+err.Error())
		return
	}

	utils.Success(c, gin.H{"appointments": appointments})
}

// GetAppointmentsForDoctor lists appointments for the caller's doctor
// profile, canceled ones excluded, earliest first.
func (h *AppointmentHandler) GetAppointmentsForDoctor(c *gin.Context) {
	doctor, ok := h.resolveDoctor(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	err := h.DB.
		Preload("Notes", notesInThreadOrder).
		Where("doctor_id = ? AND status <> ?", doctor.ID, models.StatusCanceled).
		Order("date asc").
		Find(&appointments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointments: "+err.Error())
		return
	}

	utils.Success(c, gin.H{"appointments": appointments})
}

// ConfirmAppointment moves a pending appointment to confirmed. Only the
// referenced doctor may confirm; anyone else sees a plain 404.
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	doctor, ok := h.resolveDoctor(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	err := h.DB.Where("id = ? AND doctor_id = ?", c.Param("id"), doctor.ID).First(&appointment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !appointment.Status.CanTransitionTo(models.StatusConfirmed) {
		utils.BadRequest(c, "Invalid status transition")
		return
	}

	appointment.Status = models.StatusConfirmed
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to confirm appointment: "+err.Error())
		return
	}

	utils.Success(c, appointment)
}

// CancelAppointmentByDoctor cancels one occurrence as the referenced doctor.
// Other occurrences of a recurring series are untouched.
func (h *AppointmentHandler) CancelAppointmentByDoctor(c *gin.Context) {
	doctor, ok := h.resolveDoctor(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	err := h.DB.Where("id = ? AND doctor_id = ?", c.Param("id"), doctor.ID).First(&appointment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	h.cancel(c, &appointment)
}

// CancelAppointmentByPatient cancels one occurrence as the booking patient.
func (h *AppointmentHandler) CancelAppointmentByPatient(c *gin.Context) {
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

	var appointment models.Appointment
	err := h.DB.Where("id = ? AND patient_external_id = ?", c.Param("id"), externalID).First(&appointment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	h.cancel(c, &appointment)
}

// cancel applies the canceled state. A second cancel is an idempotent no-op;
// the record is never resurrected.
func (h *AppointmentHandler) cancel(c *gin.Context, appointment *models.Appointment) {
	if appointment.Status == models.StatusCanceled {
		utils.Success(c, appointment)
		return
	}
	if !appointment.Status.CanTransitionTo(models.StatusCanceled) {
		utils.BadRequest(c, "Invalid status transition")
		return
	}

	appointment.Status = models.StatusCanceled
	if err := h.DB.Save(appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, appointment)
}

// AddNoteRequest represents the request body for appending a note.
type AddNoteRequest struct {
	Message    string            `json:"message" binding:"required"`
	AuthorType models.NoteAuthor `json:"authorType" binding:"required"`
}

// AddNote appends an author-attributed note to an appointment's thread.
// Only a party to the appointment may write to it.
func (h *AppointmentHandler) AddNote(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddNoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !req.AuthorType.Valid() {
		utils.BadRequest(c, "Invalid authorType")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	party, err := h.isParty(&appointment, externalID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if !party {
		utils.NotFound(c, "Appointment not found")
		return
	}

	note := models.Note{
		AppointmentID: appointment.ID,
		AuthorType:    req.AuthorType,
		AuthorID:      externalID,
		Message:       req.Message,
	}
	if err := h.DB.Create(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to add note: "+err.Error())
		return
	}

	h.respondWithThread(c, appointment.ID)
}

// UpdateNoteRequest represents the request body for editing a note.
type UpdateNoteRequest struct {
	Message string `json:"message" binding:"required"`
}

// UpdateNote replaces a note's message. Author fields are immutable and only
// the note's author may edit it; anyone else sees the same 404 as a missing
// note.
func (h *AppointmentHandler) UpdateNote(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateNoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var note models.Note
	err := h.DB.Where("id = ? AND appointment_id = ?", c.Param("noteId"), c.Param("id")).First(&note).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment or note not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if note.AuthorID != externalID {
		utils.NotFound(c, "Appointment or note not found")
		return
	}

	now := time.Now()
	note.Message = req.Message
	note.EditedAt = &now
	if err := h.DB.Save(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to update note: "+err.Error())
		return
	}

	h.respondWithThread(c, note.AppointmentID)
}

// DeleteNote removes one note from the thread. Sibling notes keep their
// order and content. Only the author may delete; a missing note is a 404.
func (h *AppointmentHandler) DeleteNote(c *gin.Context) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var note models.Note
	err := h.DB.Where("id = ? AND appointment_id = ?", c.Param("noteId"), c.Param("id")).First(&note).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment or note not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if note.AuthorID != externalID {
		utils.NotFound(c, "Appointment or note not found")
		return
	}

	if err := h.DB.Delete(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete note: "+err.Error())
		return
	}

	h.respondWithThread(c, note.AppointmentID)
}

// resolveDoctor loads the caller's doctor profile, writing the error
// response itself when that fails.
func (h *AppointmentHandler) resolveDoctor(c *gin.Context) (*models.Doctor, bool) {
	externalID, exists := middleware.GetExternalIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var doctor models.Doctor
	if err := h.DB.Where("external_id = ?", externalID).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &doctor, true
}

// isParty reports whether the caller is the appointment's patient or its
// referenced doctor.
func (h *AppointmentHandler) isParty(appointment *models.Appointment, externalID string) (bool, error) {
	if appointment.PatientExternalID == externalID {
		return true, nil
	}
	var doctor models.Doctor
	err := h.DB.Where("id = ? AND external_id = ?", appointment.DoctorID, externalID).First(&doctor).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// respondWithThread returns the appointment with its notes preloaded, the
// shape every note mutation responds with.
func (h *AppointmentHandler) respondWithThread(c *gin.Context, appointmentID string) {
	var appointment models.Appointment
	err := h.DB.Preload("Notes", notesInThreadOrder).First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointment: "+err.Error())
		return
	}
	utils.Success(c, appointment)
}

func notesInThreadOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at asc")
}

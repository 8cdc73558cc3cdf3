package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medibook-server/internal/scheduling"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// CanTransitionTo reports whether the status machine permits moving from s
// to next. Canceled is terminal; a record is never resurrected.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCanceled
	}
	return false
}

// NoteAuthor identifies which party wrote a note.
type NoteAuthor string

const (
	NoteAuthorDoctor  NoteAuthor = "doctor"
	NoteAuthorPatient NoteAuthor = "patient"
)

// Valid reports whether a is one of the two permitted author types.
func (a NoteAuthor) Valid() bool {
	return a == NoteAuthorDoctor || a == NoteAuthorPatient
}

// Note is one entry in an appointment's embedded note thread. Author fields
// are immutable after creation; only Message and EditedAt may change, and
// only the author may change them.
type Note struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AppointmentID string     `gorm:"size:36;index;not null" json:"appointmentId"`
	AuthorType    NoteAuthor `gorm:"size:10;not null" json:"authorType"`
	AuthorID      string     `gorm:"size:64;not null" json:"authorId"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	CreatedAt     time.Time  `json:"createdAt"`
	EditedAt      *time.Time `json:"editedAt,omitempty"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// Appointment represents one occurrence of a (possibly recurring) booking.
// A recurring booking produces one row per occurrence; the rows share the
// recurrence metadata but each has its own id, status, and note thread.
type Appointment struct {
	BaseModel
	DoctorID          string             `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID         *string            `gorm:"size:36;index" json:"patientId,omitempty"`
	PatientExternalID string             `gorm:"size:64;index;not null" json:"patientExternalId"`
	PatientName       string             `gorm:"size:255" json:"patientName"`
	Reason            string             `gorm:"size:255" json:"reason"`
	Date              time.Time          `gorm:"index" json:"date"`
	Status            AppointmentStatus  `gorm:"size:20;default:'pending'" json:"status"`
	IsRecurring       bool               `gorm:"default:false" json:"isRecurring"`
	RecurrencePattern scheduling.Pattern `gorm:"size:20;default:'none'" json:"recurrencePattern"`
	RecurrenceCount   int                `gorm:"default:1" json:"recurrenceCount"`
	Notes             []Note             `gorm:"foreignKey:AppointmentID" json:"notes"`

	// Relations
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

package models

import (
	"time"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// EmergencyContact is embedded in the patient profile.
type EmergencyContact struct {
	Name     string `gorm:"size:255" json:"name,omitempty"`
	Phone    string `gorm:"size:30" json:"phone,omitempty"`
	Relation string `gorm:"size:100" json:"relation,omitempty"`
}

// Patient represents a patient profile, upsertable only by the owning
// patient identity.
type Patient struct {
	BaseModel
	ExternalID       string           `gorm:"uniqueIndex;size:64;not null" json:"externalId"`
	Name             string           `gorm:"size:255;not null" json:"name"`
	DateOfBirth      *time.Time       `json:"dateOfBirth,omitempty"`
	Gender           Gender           `gorm:"size:10" json:"gender,omitempty"`
	ContactInfo      ContactInfo      `gorm:"embedded;embeddedPrefix:contact_" json:"contactInfo"`
	MedicalHistory   []string         `gorm:"serializer:json" json:"medicalHistory"`
	Allergies        []string         `gorm:"serializer:json" json:"allergies"`
	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergencyContact"`
}

package models

// ContactInfo is the shared contact block embedded in profile records.
type ContactInfo struct {
	Phone   string `gorm:"size:30" json:"phone,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Address string `gorm:"size:255" json:"address,omitempty"`
}

// Doctor represents a doctor's public profile, created once per doctor
// identity and edited via self-service. Patients read these for discovery.
type Doctor struct {
	BaseModel
	ExternalID        string      `gorm:"uniqueIndex;size:64;not null" json:"externalId"`
	Name              string      `gorm:"size:255;not null" json:"name"`
	Specialty         string      `gorm:"size:100" json:"specialty"`
	LicenseNumber     string      `gorm:"size:100" json:"licenseNumber,omitempty"`
	Location          string      `gorm:"size:255" json:"location,omitempty"`
	YearsOfExperience int         `gorm:"default:0" json:"yearsOfExperience"`
	LanguagesSpoken   []string    `gorm:"serializer:json" json:"languagesSpoken"`
	Bio               string      `gorm:"type:text" json:"bio,omitempty"`
	ContactInfo       ContactInfo `gorm:"embedded;embeddedPrefix:contact_" json:"contactInfo"`
	ProfileImage      string      `gorm:"size:512" json:"profileImage,omitempty"`
}

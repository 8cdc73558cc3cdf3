package models

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ValidRole reports whether r is one of the assignable roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User represents an account synced from the hosted identity provider.
// The provider owns credentials and sessions; we only keep the externally
// verified id plus the profile fields needed for display and role routing.
// Role stays nil until the user picks one after first sign-in.
type User struct {
	BaseModel
	ExternalID string `gorm:"uniqueIndex;size:64;not null" json:"externalId"`
	Email      string `gorm:"size:255" json:"email"`
	FirstName  string `gorm:"size:100" json:"firstName"`
	LastName   string `gorm:"size:100" json:"lastName"`
	Role       *Role  `gorm:"size:20" json:"role"`
}

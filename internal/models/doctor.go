package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Doctor moderation lifecycle.
const (
	DoctorStatusPending   = "pending"
	DoctorStatusApproved  = "approved"
	DoctorStatusRejected  = "rejected"
	DoctorStatusSuspended = "suspended"
)

// Subscription tiers gating which directory features are offered.
const (
	TierBasic   = "basic"
	TierMedium  = "medium"
	TierPremium = "premium"
)

// Doctor is the role row for a principal with user_type "doctor". The ID is
// the principal's ID, not a fresh key.
type Doctor struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string         `gorm:"not null;size:255;index" json:"email"`
	FirstName       string         `gorm:"not null;size:100" json:"first_name"`
	LastName        string         `gorm:"not null;size:100" json:"last_name"`
	Phone           string         `gorm:"size:30" json:"phone,omitempty"`
	Specialty       string         `gorm:"not null;size:100;index" json:"specialty"`
	YearsExperience int            `gorm:"default:0" json:"years_experience"`
	Bio             string         `gorm:"type:text" json:"bio,omitempty"`
	Education       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"education"`
	Certifications  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"certifications"`
	Languages       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"languages"`
	ProfileImage    string         `gorm:"size:500" json:"profile_image,omitempty"`
	Status          string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Tier            string         `gorm:"size:20;not null;default:'basic'" json:"tier"`
	Slug            *string        `gorm:"size:200;uniqueIndex" json:"slug,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Locations []DoctorLocation `gorm:"foreignKey:DoctorID" json:"locations,omitempty"`
	Articles  []DoctorArticle  `gorm:"foreignKey:DoctorID" json:"articles,omitempty"`
}

func ValidDoctorStatus(s string) bool {
	switch s {
	case DoctorStatusPending, DoctorStatusApproved, DoctorStatusRejected, DoctorStatusSuspended:
		return true
	}
	return false
}

func ValidTier(s string) bool {
	switch s {
	case TierBasic, TierMedium, TierPremium:
		return true
	}
	return false
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User types stored on the principal and carried in JWT claims.
const (
	UserTypePatient = "patient"
	UserTypeDoctor  = "doctor"
	UserTypeAdmin   = "admin"
)

// Principal is an authenticated identity, independent of role. Exactly one
// role row (Patient, Doctor or Admin) is created for it at registration.
type Principal struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	UserType     string         `gorm:"size:20;not null;default:'patient'" json:"user_type"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

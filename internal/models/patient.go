package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is the role row for a principal with user_type "patient".
type Patient struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;index" json:"email"`
	FirstName   string         `gorm:"not null;size:100" json:"first_name"`
	LastName    string         `gorm:"not null;size:100" json:"last_name"`
	Phone       string         `gorm:"size:30" json:"phone,omitempty"`
	DateOfBirth string         `gorm:"size:10" json:"date_of_birth"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

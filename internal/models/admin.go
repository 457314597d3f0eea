package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AdminRoleAdmin      = "admin"
	AdminRoleSuperAdmin = "super_admin"
)

// Admin is the role row for a principal with user_type "admin". Existence of
// the row grants moderation access; there is no approval workflow for admins.
type Admin struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;index" json:"email"`
	FirstName   string         `gorm:"not null;size:100" json:"first_name"`
	LastName    string         `gorm:"not null;size:100" json:"last_name"`
	Role        string         `gorm:"size:20;not null;default:'admin'" json:"role"`
	Permissions datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"permissions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

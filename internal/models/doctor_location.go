package models

import (
	"time"

	"github.com/google/uuid"
)

// DoctorLocation is a practice location. At most one per doctor carries
// is_primary; the service layer clears the flag on siblings when it moves.
type DoctorLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	Address   string    `gorm:"not null;size:300" json:"address"`
	City      string    `gorm:"not null;size:100;index" json:"city"`
	State     string    `gorm:"size:100" json:"state"`
	Country   string    `gorm:"size:100" json:"country"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

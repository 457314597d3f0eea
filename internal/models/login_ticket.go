package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TicketKindLogin         = "login"
	TicketKindPasswordReset = "password_reset"
)

// LoginTicket is a single-use exchange code. The auth callback consumes
// kind=login tickets; password updates consume kind=password_reset.
type LoginTicket struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PrincipalID uuid.UUID `gorm:"type:uuid;not null;index" json:"principal_id"`
	CodeHash    string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	Kind        string    `gorm:"size:30;not null" json:"kind"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	Consumed    bool      `gorm:"default:false" json:"consumed"`
	CreatedAt   time.Time `json:"created_at"`
	Principal   Principal `gorm:"foreignKey:PrincipalID" json:"-"`
}

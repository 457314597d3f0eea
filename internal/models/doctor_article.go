package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

type DoctorArticle struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DoctorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Title     string         `gorm:"not null;size:300" json:"title"`
	Slug      string         `gorm:"not null;size:300;index" json:"slug"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Excerpt   string         `gorm:"size:500" json:"excerpt,omitempty"`
	Status    string         `gorm:"size:20;not null;default:'draft';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func ValidArticleStatus(s string) bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived:
		return true
	}
	return false
}

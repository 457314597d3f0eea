package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/models"
	"gorm.io/gorm"
)

// AdminService is the moderation surface: doctor lifecycle, tiers, stats.
type AdminService struct {
	db        *gorm.DB
	directory *DirectoryService
}

func NewAdminService(db *gorm.DB, directory *DirectoryService) *AdminService {
	return &AdminService{db: db, directory: directory}
}

func (s *AdminService) ListDoctors(status string, page, limit int) ([]models.Doctor, int64, error) {
	var doctors []models.Doctor
	var total int64

	query := s.db.Model(&models.Doctor{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// SetDoctorStatus is a single unconditional update: concurrent admin edits
// resolve last-write-wins with no conflict detection.
func (s *AdminService) SetDoctorStatus(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorStatusRequest) error {
	if !models.ValidDoctorStatus(req.Status) {
		return validationErr("status must be pending, approved, rejected or suspended")
	}

	result := s.db.Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Update("status", req.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}

	s.directory.Invalidate(ctx)
	return nil
}

func (s *AdminService) SetDoctorTier(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorTierRequest) error {
	if !models.ValidTier(req.Tier) {
		return validationErr("tier must be basic, medium or premium")
	}

	result := s.db.Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Update("tier", req.Tier)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}

	s.directory.Invalidate(ctx)
	return nil
}

func (s *AdminService) Stats() (*dto.AdminStats, error) {
	var stats dto.AdminStats

	counts := []struct {
		status string
		dest   *int64
	}{
		{models.DoctorStatusPending, &stats.PendingDoctors},
		{models.DoctorStatusApproved, &stats.ApprovedDoctors},
		{models.DoctorStatusRejected, &stats.RejectedDoctors},
		{models.DoctorStatusSuspended, &stats.SuspendedDoctors},
	}
	for _, c := range counts {
		if err := s.db.Model(&models.Doctor{}).
			Where("status = ?", c.status).
			Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&models.Doctor{}).Count(&stats.TotalDoctors).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Patient{}).Count(&stats.TotalPatients).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.DoctorArticle{}).
		Where("status = ?", models.ArticleStatusPublished).
		Count(&stats.PublishedArticles).Error; err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := s.db.Model(&models.Principal{}).
		Where("created_at >= ?", weekAgo).
		Count(&stats.SignupsLast7Days).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/medatlas/medatlas-backend/internal/cache"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/medatlas/medatlas-backend/internal/slug"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

const (
	directoryCachePrefix = "directory:"
	listCacheTTL         = 2 * time.Minute
	profileCacheTTL      = 5 * time.Minute
)

// DirectoryService serves the public, approved-only view of the directory.
// Reads go through redis; every doctor mutation drops the directory keys.
type DirectoryService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDirectoryService(db *gorm.DB, c *cache.Cache) *DirectoryService {
	return &DirectoryService{db: db, cache: c}
}

type DoctorListing struct {
	Doctors []models.Doctor `json:"doctors"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

func (s *DirectoryService) ListDoctors(ctx context.Context, specialty, city, query string, page, limit int) (*DoctorListing, error) {
	key := fmt.Sprintf("%slist:%s:%s:%s:%d:%d", directoryCachePrefix, specialty, city, query, page, limit)

	var cached DoctorListing
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		slog.Error("directory cache read failed", "error", err, "action", "list_doctors")
	}

	q := s.db.Model(&models.Doctor{}).Where("status = ?", models.DoctorStatusApproved)
	if specialty != "" {
		q = q.Where("specialty ILIKE ?", specialty)
	}
	if city != "" {
		q = q.Where("id IN (?)", s.db.Model(&models.DoctorLocation{}).
			Select("doctor_id").Where("city ILIKE ?", city))
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR specialty ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var doctors []models.Doctor
	if err := q.Preload("Locations").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&doctors).Error; err != nil {
		return nil, err
	}

	listing := &DoctorListing{Doctors: doctors, Total: total, Page: page, Limit: limit}
	if err := s.cache.SetJSON(ctx, key, listing, listCacheTTL); err != nil {
		slog.Error("directory cache write failed", "error", err, "action", "list_doctors")
	}
	return listing, nil
}

// ResolveProfile locates one approved doctor for a public profile URL. The
// stored slug is authoritative; when it matches nothing the identifier is
// re-read as "first-last" and matched case-insensitively against names, for
// rows created before slugs were backfilled.
func (s *DirectoryService) ResolveProfile(ctx context.Context, slugOrName string) (*models.Doctor, error) {
	key := directoryCachePrefix + "profile:" + slugOrName

	var cached models.Doctor
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		slog.Error("directory cache read failed", "error", err, "action", "resolve_profile")
	}

	doctor, err := s.lookupApproved(func(q *gorm.DB) *gorm.DB {
		return q.Where("slug = ?", slugOrName)
	})
	if errors.Is(err, ErrDoctorNotFound) {
		firstName, lastName, ok := slug.SplitName(slugOrName)
		if !ok {
			return nil, ErrDoctorNotFound
		}
		doctor, err = s.lookupApproved(func(q *gorm.DB) *gorm.DB {
			return q.Where("first_name ILIKE ? AND last_name ILIKE ?", firstName, lastName)
		})
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, doctor, profileCacheTTL); err != nil {
		slog.Error("directory cache write failed", "error", err, "action", "resolve_profile")
	}
	return doctor, nil
}

func (s *DirectoryService) lookupApproved(scope func(*gorm.DB) *gorm.DB) (*models.Doctor, error) {
	var doctor models.Doctor
	err := scope(s.db.Where("status = ?", models.DoctorStatusApproved)).
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC")
		}).
		Preload("Articles", "status = ?", models.ArticleStatusPublished).
		First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Invalidate drops every cached directory read. Called after any change that
// affects public visibility.
func (s *DirectoryService) Invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, directoryCachePrefix); err != nil {
		slog.Error("directory cache invalidation failed", "error", err)
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/medatlas/medatlas-backend/internal/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrLocationNotFound = errors.New("location not found")
)

// DoctorService is doctor self-service: own profile, articles, locations.
type DoctorService struct {
	db        *gorm.DB
	directory *DirectoryService
}

func NewDoctorService(db *gorm.DB, directory *DirectoryService) *DoctorService {
	return &DoctorService{db: db, directory: directory}
}

func (s *DoctorService) GetProfile(doctorID uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC")
		}).
		Preload("Articles").
		First(&doctor, "id = ?", doctorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *DoctorService) UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", doctorID).Error; err != nil {
		return nil, ErrDoctorNotFound
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Specialty != nil {
		updates["specialty"] = *req.Specialty
	}
	if req.YearsExperience != nil {
		updates["years_experience"] = *req.YearsExperience
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Education != nil {
		updates["education"] = toJSON(req.Education)
	}
	if req.Certifications != nil {
		updates["certifications"] = toJSON(req.Certifications)
	}
	if req.Languages != nil {
		updates["languages"] = toJSON(req.Languages)
	}

	// Backfill the slug once a name exists; existing slugs stay stable so
	// public URLs never break.
	if doctor.Slug == nil {
		first := doctor.FirstName
		last := doctor.LastName
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		if generated := slug.Make(first, last); generated != "" {
			unique, err := s.uniqueSlug(generated, doctorID)
			if err != nil {
				return nil, err
			}
			updates["slug"] = unique
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&doctor).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.directory.Invalidate(ctx)
	return s.GetProfile(doctorID)
}

func (s *DoctorService) SetProfileImage(ctx context.Context, doctorID uuid.UUID, url string) error {
	result := s.db.Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Update("profile_image", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}
	s.directory.Invalidate(ctx)
	return nil
}

func (s *DoctorService) uniqueSlug(base string, doctorID uuid.UUID) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&models.Doctor{}).
			Where("slug = ? AND id <> ?", candidate, doctorID).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// --- Articles ---

func (s *DoctorService) ListArticles(doctorID uuid.UUID) ([]models.DoctorArticle, error) {
	var articles []models.DoctorArticle
	err := s.db.Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&articles).Error
	return articles, err
}

func (s *DoctorService) CreateArticle(ctx context.Context, doctorID uuid.UUID, req *dto.CreateArticleRequest) (*models.DoctorArticle, error) {
	if req.Title == "" || req.Content == "" {
		return nil, validationErr("Title and content are required")
	}
	status := req.Status
	if status == "" {
		status = models.ArticleStatusDraft
	}
	if !models.ValidArticleStatus(status) {
		return nil, validationErr("status must be draft, published or archived")
	}

	article := models.DoctorArticle{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Title:    req.Title,
		Slug:     slug.Make(req.Title, ""),
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Status:   status,
	}
	if err := s.db.Create(&article).Error; err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.directory.Invalidate(ctx)
	return &article, nil
}

func (s *DoctorService) UpdateArticle(ctx context.Context, doctorID, articleID uuid.UUID, req *dto.UpdateArticleRequest) (*models.DoctorArticle, error) {
	var article models.DoctorArticle
	if err := s.db.Where("id = ? AND doctor_id = ?", articleID, doctorID).First(&article).Error; err != nil {
		return nil, ErrArticleNotFound
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		updates["slug"] = slug.Make(*req.Title, "")
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Status != nil {
		if !models.ValidArticleStatus(*req.Status) {
			return nil, validationErr("status must be draft, published or archived")
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&article).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.directory.Invalidate(ctx)
	return &article, nil
}

func (s *DoctorService) DeleteArticle(ctx context.Context, doctorID, articleID uuid.UUID) error {
	result := s.db.Where("id = ? AND doctor_id = ?", articleID, doctorID).
		Delete(&models.DoctorArticle{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	s.directory.Invalidate(ctx)
	return nil
}

// --- Locations ---

func (s *DoctorService) ListLocations(doctorID uuid.UUID) ([]models.DoctorLocation, error) {
	var locations []models.DoctorLocation
	err := s.db.Where("doctor_id = ?", doctorID).
		Order("is_primary DESC, created_at ASC").
		Find(&locations).Error
	return locations, err
}

func (s *DoctorService) CreateLocation(ctx context.Context, doctorID uuid.UUID, req *dto.CreateLocationRequest) (*models.DoctorLocation, error) {
	if req.Name == "" || req.Address == "" || req.City == "" {
		return nil, validationErr("Name, address and city are required")
	}

	location := models.DoctorLocation{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		IsPrimary: req.IsPrimary,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary {
			if err := clearPrimary(tx, doctorID); err != nil {
				return err
			}
		}
		return tx.Create(&location).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.directory.Invalidate(ctx)
	return &location, nil
}

func (s *DoctorService) UpdateLocation(ctx context.Context, doctorID, locationID uuid.UUID, req *dto.UpdateLocationRequest) (*models.DoctorLocation, error) {
	var location models.DoctorLocation
	if err := s.db.Where("id = ? AND doctor_id = ?", locationID, doctorID).First(&location).Error; err != nil {
		return nil, ErrLocationNotFound
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.IsPrimary != nil {
		updates["is_primary"] = *req.IsPrimary
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary != nil && *req.IsPrimary {
			if err := clearPrimary(tx, doctorID); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&location).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	s.directory.Invalidate(ctx)
	return &location, nil
}

func (s *DoctorService) DeleteLocation(ctx context.Context, doctorID, locationID uuid.UUID) error {
	result := s.db.Where("id = ? AND doctor_id = ?", locationID, doctorID).
		Delete(&models.DoctorLocation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	s.directory.Invalidate(ctx)
	return nil
}

// clearPrimary keeps the one-primary-location invariant inside the same
// transaction that sets a new primary.
func clearPrimary(tx *gorm.DB, doctorID uuid.UUID) error {
	return tx.Model(&models.DoctorLocation{}).
		Where("doctor_id = ? AND is_primary = true", doctorID).
		Update("is_primary", false).Error
}

func toJSON(items []string) datatypes.JSON {
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/models"
	"gorm.io/gorm"
)

// RoleService resolves a principal to its role row. A missing row is an
// empty result, not an error; only real lookup failures are errors.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

func (s *RoleService) CurrentDoctor(principalID uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (s *RoleService) CurrentAdmin(principalID uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.First(&admin, "id = ?", principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (s *RoleService) CurrentPatient(principalID uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// Profile is the tagged union returned by Resolve, so callers can never read
// a field the role does not have.
type Profile struct {
	Kind    string          `json:"kind"`
	Doctor  *models.Doctor  `json:"doctor,omitempty"`
	Admin   *models.Admin   `json:"admin,omitempty"`
	Patient *models.Patient `json:"patient,omitempty"`
}

// Resolve loads the role row matching the principal's declared user_type.
// A nil Profile with nil error means the principal has no role row.
func (s *RoleService) Resolve(p *models.Principal) (*Profile, error) {
	switch p.UserType {
	case models.UserTypeDoctor:
		doctor, err := s.CurrentDoctor(p.ID)
		if err != nil || doctor == nil {
			return nil, err
		}
		return &Profile{Kind: models.UserTypeDoctor, Doctor: doctor}, nil
	case models.UserTypeAdmin:
		admin, err := s.CurrentAdmin(p.ID)
		if err != nil || admin == nil {
			return nil, err
		}
		return &Profile{Kind: models.UserTypeAdmin, Admin: admin}, nil
	default:
		patient, err := s.CurrentPatient(p.ID)
		if err != nil || patient == nil {
			return nil, err
		}
		return &Profile{Kind: models.UserTypePatient, Patient: patient}, nil
	}
}

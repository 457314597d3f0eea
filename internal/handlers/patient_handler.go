package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/identity"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/medatlas/medatlas-backend/internal/validation"
	"gorm.io/gorm"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

func (h *PatientHandler) Me(c *fiber.Ctx) error {
	return c.JSON(identity.CurrentPatient(c))
}

func (h *PatientHandler) UpdateProfile(c *fiber.Ctx) error {
	patient := identity.CurrentPatient(c)

	var req dto.UpdatePatientProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		if msg := validation.Phone(*req.Phone); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: msg,
			})
		}
		updates["phone"] = *req.Phone
	}
	if req.DateOfBirth != nil {
		if msg := validation.DateOfBirth(*req.DateOfBirth); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: msg,
			})
		}
		updates["date_of_birth"] = *req.DateOfBirth
	}

	if len(updates) > 0 {
		if err := h.db.Model(&models.Patient{}).
			Where("id = ?", patient.ID).
			Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update profile",
			})
		}
	}

	var updated models.Patient
	if err := h.db.First(&updated, "id = ?", patient.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load profile",
		})
	}
	return c.JSON(updated)
}

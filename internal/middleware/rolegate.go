package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/medatlas/medatlas-backend/internal/config"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/identity"
	"github.com/medatlas/medatlas-backend/internal/models"
	"gorm.io/gorm"
)

// The role gates centralize the guard every protected page needs: 401 without
// a principal, 403 without a role row, 500 when the lookup itself fails, and
// the typed row in locals otherwise.

func RequireDoctor(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principalID, err := identity.PrincipalID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var doctor models.Doctor
		if err := db.First(&doctor, "id = ?", principalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Access denied: no doctor profile for this account",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load profile",
			})
		}

		c.Locals(identity.LocalDoctor, &doctor)
		return c.Next()
	}
}

// RequireApprovedDoctor must run after RequireDoctor. It blocks role actions
// for any lifecycle status other than approved.
func RequireApprovedDoctor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		doctor := identity.CurrentDoctor(c)
		if doctor == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied",
			})
		}
		if !DoctorCanAct(doctor.Status) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: DoctorStatusMessage(doctor.Status),
			})
		}
		return c.Next()
	}
}

// DoctorCanAct reports whether a doctor's lifecycle status allows
// self-service changes.
func DoctorCanAct(status string) bool {
	return status == models.DoctorStatusApproved
}

// DoctorStatusMessage is the banner text shown for a blocked status.
func DoctorStatusMessage(status string) string {
	switch status {
	case models.DoctorStatusPending:
		return "Your profile is pending review. You can make changes once it is approved."
	case models.DoctorStatusRejected:
		return "Your profile was rejected. Contact support for details."
	case models.DoctorStatusSuspended:
		return "Your account is suspended."
	default:
		return "Your account is not active"
	}
}

func RequirePatient(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principalID, err := identity.PrincipalID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var patient models.Patient
		if err := db.First(&patient, "id = ?", principalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Access denied: no patient profile for this account",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load profile",
			})
		}

		c.Locals(identity.LocalPatient, &patient)
		return c.Next()
	}
}

// RequireAdmin authorizes via, in order: the admin token header, the
// config-based admin email list, then the admins role table.
func RequireAdmin(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		principalID, err := identity.PrincipalID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, identity.Email(c)) {
			return c.Next()
		}

		var admin models.Admin
		if err := db.First(&admin, "id = ?", principalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Admin access required",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load profile",
			})
		}

		c.Locals(identity.LocalAdmin, &admin)
		return c.Next()
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

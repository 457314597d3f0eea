package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/models"
)

// Locals keys set by the role gates.
const (
	LocalDoctor  = "current_doctor"
	LocalAdmin   = "current_admin"
	LocalPatient = "current_patient"
)

func claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("invalid token in context")
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mc, nil
}

// PrincipalID extracts the principal UUID from JWT claims in context.
func PrincipalID(c *fiber.Ctx) (uuid.UUID, error) {
	mc, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := mc["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// UserType extracts the declared role from JWT claims. Empty when absent.
func UserType(c *fiber.Ctx) string {
	mc, err := claims(c)
	if err != nil {
		return ""
	}
	t, _ := mc["user_type"].(string)
	return t
}

// Email extracts the email claim. Empty when absent.
func Email(c *fiber.Ctx) string {
	mc, err := claims(c)
	if err != nil {
		return ""
	}
	e, _ := mc["email"].(string)
	return e
}

// CurrentDoctor returns the doctor row loaded by RequireDoctor.
func CurrentDoctor(c *fiber.Ctx) *models.Doctor {
	d, _ := c.Locals(LocalDoctor).(*models.Doctor)
	return d
}

// CurrentAdmin returns the admin row loaded by RequireAdmin. Nil when the
// request was authorized via config-based admin overrides instead.
func CurrentAdmin(c *fiber.Ctx) *models.Admin {
	a, _ := c.Locals(LocalAdmin).(*models.Admin)
	return a
}

// CurrentPatient returns the patient row loaded by RequirePatient.
func CurrentPatient(c *fiber.Ctx) *models.Patient {
	p, _ := c.Locals(LocalPatient).(*models.Patient)
	return p
}

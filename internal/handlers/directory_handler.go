package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/services"
)

type DirectoryHandler struct {
	directory *services.DirectoryService
}

func NewDirectoryHandler(directory *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

func (h *DirectoryHandler) ListDoctors(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	listing, err := h.directory.ListDoctors(
		c.Context(),
		c.Query("specialty"),
		c.Query("city"),
		c.Query("q"),
		page, limit,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load doctors",
		})
	}

	return c.JSON(fiber.Map{"data": listing})
}

func (h *DirectoryHandler) GetDoctor(c *fiber.Ctx) error {
	doctor, err := h.directory.ResolveProfile(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Doctor not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load profile",
		})
	}

	return c.JSON(doctor)
}

package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/identity"
	"github.com/medatlas/medatlas-backend/internal/middleware"
	"github.com/medatlas/medatlas-backend/internal/services"
	"github.com/medatlas/medatlas-backend/internal/storage"
)

const maxProfileImageSize = 4 * 1024 * 1024

type DoctorHandler struct {
	doctorService *services.DoctorService
	uploader      *storage.Uploader
}

func NewDoctorHandler(doctorService *services.DoctorService, uploader *storage.Uploader) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService, uploader: uploader}
}

// Me returns the full own profile plus the action gating derived from the
// moderation status, so the dashboard can render the right banner.
func (h *DoctorHandler) Me(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)

	full, err := h.doctorService.GetProfile(doctor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load profile",
		})
	}

	resp := fiber.Map{
		"doctor":   full,
		"can_edit": middleware.DoctorCanAct(full.Status),
	}
	if !middleware.DoctorCanAct(full.Status) {
		resp["status_message"] = middleware.DoctorStatusMessage(full.Status)
	}
	return c.JSON(resp)
}

func (h *DoctorHandler) UpdateProfile(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)

	var req dto.UpdateDoctorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	updated, err := h.doctorService.UpdateProfile(c.Context(), doctor.ID, &req)
	if err != nil {
		return doctorServiceError(c, err)
	}
	return c.JSON(updated)
}

func (h *DoctorHandler) UploadProfileImage(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "An image file is required",
		})
	}
	if file.Size > maxProfileImageSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Error: true, Message: "Image must be under 4MB",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Image must be jpg, png or webp",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not read upload",
		})
	}
	defer src.Close()

	key := fmt.Sprintf("doctors/%s/profile%s", doctor.ID, ext)
	url, err := h.uploader.Upload(c.Context(), key, src, file.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Upload failed",
		})
	}

	if err := h.doctorService.SetProfileImage(c.Context(), doctor.ID, url); err != nil {
		return doctorServiceError(c, err)
	}
	return c.JSON(fiber.Map{"profile_image": url})
}

// --- Articles ---

func (h *DoctorHandler) ListArticles(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)

	articles, err := h.doctorService.ListArticles(doctor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load articles",
		})
	}
	return c.JSON(fiber.Map{"articles": articles})
}

func (h *DoctorHandler) CreateArticle(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)

	var req dto.CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	article, err := h.doctorService.CreateArticle(c.Context(), doctor.ID, &req)
	if err != nil {
		return doctorServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

func (h *DoctorHandler) UpdateArticle(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)
	articleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid article id",
		})
	}

	var req dto.UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	article, err := h.doctorService.UpdateArticle(c.Context(), doctor.ID, articleID, &req)
	if err != nil {
		return doctorServiceError(c, err)
	}
	return c.JSON(article)
}

func (h *DoctorHandler) DeleteArticle(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)
	articleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid article id",
		})
	}

	if err := h.doctorService.DeleteArticle(c.Context(), doctor.ID, articleID); err != nil {
		return doctorServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Article deleted"})
}

// --- Locations ---

func (h *DoctorHandler) ListLocations(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)

	locations, err := h.doctorService.ListLocations(doctor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load locations",
		})
	}
	return c.JSON(fiber.Map{"locations": locations})
}

func (h *DoctorHandler) CreateLocation(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)

	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	location, err := h.doctorService.CreateLocation(c.Context(), doctor.ID, &req)
	if err != nil {
		return doctorServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

func (h *DoctorHandler) UpdateLocation(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)
	locationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid location id",
		})
	}

	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	location, err := h.doctorService.UpdateLocation(c.Context(), doctor.ID, locationID, &req)
	if err != nil {
		return doctorServiceError(c, err)
	}
	return c.JSON(location)
}

func (h *DoctorHandler) DeleteLocation(c *fiber.Ctx) error {
	doctor := identity.CurrentDoctor(c)
	locationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid location id",
		})
	}

	if err := h.doctorService.DeleteLocation(c.Context(), doctor.ID, locationID); err != nil {
		return doctorServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Location deleted"})
}

func doctorServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrArticleNotFound),
		errors.Is(err, services.ErrLocationNotFound),
		errors.Is(err, services.ErrDoctorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

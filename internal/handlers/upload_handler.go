package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/dto"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	file, err := c.FormFile("excelFile")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No file uploaded",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not read uploaded file",
		})
	}
	defer src.Close()

	summary, err := h.uploadService.Ingest(user.ID, file.Filename, file.Size, src)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFormat),
			errors.Is(err, services.ErrFileTooLarge),
			errors.Is(err, services.ErrEmptyWorkbook):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error processing file: " + err.Error(),
		})
	}

	return c.JSON(dto.UploadResponse{
		Message: "File uploaded successfully",
		Upload:  *summary,
	})
}

func (h *UploadHandler) History(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	uploads, err := h.uploadService.History(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching uploads: " + err.Error(),
		})
	}

	return c.JSON(dto.UploadHistoryResponse{Uploads: uploads})
}

func (h *UploadHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	uploadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Upload not found",
		})
	}

	detail, err := h.uploadService.Get(user.ID, uploadID)
	if err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching upload: " + err.Error(),
		})
	}

	return c.JSON(dto.UploadDetailResponse{Upload: *detail})
}

func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	uploadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Upload not found",
		})
	}

	if err := h.uploadService.Delete(user.ID, uploadID); err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error deleting upload: " + err.Error(),
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Upload and associated charts deleted successfully"})
}

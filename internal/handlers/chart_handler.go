package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/dto"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChartHandler struct {
	chartService *services.ChartService
}

func NewChartHandler(chartService *services.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

func (h *ChartHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateChartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	chart, err := h.chartService.Create(user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidChartType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ChartResponse{
		Message: "Chart created successfully",
		Chart:   *chart,
	})
}

func (h *ChartHandler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	charts, err := h.chartService.List(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching charts: " + err.Error(),
		})
	}

	if charts == nil {
		charts = []dto.ChartListItem{}
	}
	return c.JSON(dto.ChartListResponse{Charts: charts})
}

func (h *ChartHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	chartID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Chart not found",
		})
	}

	chart, upload, err := h.chartService.Get(user.ID, chartID)
	if err != nil {
		if errors.Is(err, services.ErrChartNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching chart: " + err.Error(),
		})
	}

	resp := dto.ChartDetailResponse{Chart: *chart}
	if upload != nil {
		detail, err := services.UploadDetailOf(upload)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Error fetching chart: " + err.Error(),
			})
		}
		resp.Upload = *detail
	}

	return c.JSON(resp)
}

func (h *ChartHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	chartID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Chart not found",
		})
	}

	if err := h.chartService.Delete(user.ID, chartID); err != nil {
		if errors.Is(err, services.ErrChartNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error deleting chart: " + err.Error(),
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Chart deleted successfully"})
}

package dto

import (
	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/models"
)

type CreateChartRequest struct {
	Title    string                 `json:"title"`
	Type     string                 `json:"type"`
	XAxis    string                 `json:"xAxis"`
	YAxis    string                 `json:"yAxis"`
	UploadID uuid.UUID              `json:"uploadId"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

type ChartResponse struct {
	Message string       `json:"message"`
	Chart   models.Chart `json:"chart"`
}

// ChartListItem annotates a chart with its parent upload's display name.
type ChartListItem struct {
	models.Chart
	UploadName string `json:"upload_name"`
}

type ChartListResponse struct {
	Charts []ChartListItem `json:"charts"`
}

type ChartDetailResponse struct {
	Chart  models.Chart `json:"chart"`
	Upload UploadDetail `json:"upload"`
}

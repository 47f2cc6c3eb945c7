package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadSummary is the bounded projection returned by upload and
// history endpoints; full row data is only served by fetch-by-id.
type UploadSummary struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Headers    []string  `json:"headers"`
	RowCount   int       `json:"rowCount"`
	FileSize   int64     `json:"fileSize"`
	UploadDate time.Time `json:"uploadDate"`
}

type UploadResponse struct {
	Message string        `json:"message"`
	Upload  UploadSummary `json:"upload"`
}

type UploadHistoryResponse struct {
	Uploads []UploadSummary `json:"uploads"`
}

// UploadDetail carries the full parsed payload.
type UploadDetail struct {
	ID           uuid.UUID       `json:"id"`
	Filename     string          `json:"filename"`
	OriginalName string          `json:"original_name"`
	FileSize     int64           `json:"file_size"`
	Headers      []string        `json:"headers"`
	Rows         [][]interface{} `json:"rows"`
	ChartIDs     []uuid.UUID     `json:"chart_ids"`
	CreatedAt    time.Time       `json:"created_at"`
}

type UploadDetailResponse struct {
	Upload UploadDetail `json:"upload"`
}

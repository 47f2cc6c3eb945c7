package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Upload is one ingested spreadsheet: file metadata plus the parsed
// first sheet (header labels and data rows) stored as JSON.
type Upload struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Filename     string         `gorm:"size:255;not null" json:"filename"`
	OriginalName string         `gorm:"size:255;not null" json:"original_name"`
	FilePath     string         `gorm:"size:512;not null" json:"file_path"`
	FileSize     int64          `gorm:"not null" json:"file_size"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Headers      datatypes.JSON `gorm:"type:jsonb" json:"headers"`
	Rows         datatypes.JSON `gorm:"type:jsonb" json:"rows"`
	// ChartIDs is a denormalized, best-effort index of charts built on
	// this upload. Chart deletion does not rewrite it, so entries may
	// dangle; treat it as a hint, not an authoritative list.
	ChartIDs  datatypes.JSON `gorm:"type:jsonb" json:"chart_ids"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ChartTypes = []string{"line", "bar", "pie", "scatter", "3d-column"}

// Chart is a saved visualization definition bound to one upload's fields.
// Config is consumer-defined and stored opaquely.
type Chart struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Type      string         `gorm:"size:20;not null" json:"type"`
	XAxis     string         `gorm:"size:255;not null" json:"x_axis"`
	YAxis     string         `gorm:"size:255;not null" json:"y_axis"`
	UploadID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"upload_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Config    datatypes.JSON `gorm:"type:jsonb" json:"config"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func IsValidChartType(t string) bool {
	for _, v := range ChartTypes {
		if v == t {
			return true
		}
	}
	return false
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// AdminUploadInfo is the lightweight uploads projection shown on the
// admin user listing.
type AdminUploadInfo struct {
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminUser struct {
	ID        uuid.UUID         `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	CreatedAt time.Time         `json:"created_at"`
	Uploads   []AdminUploadInfo `json:"uploads"`
}

type AdminUsersResponse struct {
	Users []AdminUser `json:"users"`
}

type PlatformStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalUploads int64 `json:"totalUploads"`
	TotalCharts  int64 `json:"totalCharts"`
}

// RecentUpload annotates an upload summary with its owner's identity.
type RecentUpload struct {
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
}

type AdminStatsResponse struct {
	Stats         PlatformStats  `json:"stats"`
	RecentUploads []RecentUpload `json:"recentUploads"`
}

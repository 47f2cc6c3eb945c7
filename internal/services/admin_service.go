package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/dto"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCannotDeleteAdmin = errors.New("cannot delete admin user")

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListUsers returns every user with a lightweight projection of their
// uploads. Password hashes stay out of the response shape entirely.
func (s *AdminService) ListUsers() ([]dto.AdminUser, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	var uploads []models.Upload
	err := s.db.Select("id", "user_id", "original_name", "created_at").Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	byOwner := make(map[uuid.UUID][]dto.AdminUploadInfo, len(users))
	for _, u := range uploads {
		byOwner[u.UserID] = append(byOwner[u.UserID], dto.AdminUploadInfo{
			ID:           u.ID,
			OriginalName: u.OriginalName,
			CreatedAt:    u.CreatedAt,
		})
	}

	result := make([]dto.AdminUser, 0, len(users))
	for _, user := range users {
		infos := byOwner[user.ID]
		if infos == nil {
			infos = []dto.AdminUploadInfo{}
		}
		result = append(result, dto.AdminUser{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			Uploads:   infos,
		})
	}
	return result, nil
}

// Stats aggregates platform counts and the ten most recent uploads,
// each annotated with its owner's identity.
func (s *AdminService) Stats() (*dto.AdminStatsResponse, error) {
	var stats dto.PlatformStats
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Upload{}).Count(&stats.TotalUploads).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Chart{}).Count(&stats.TotalCharts).Error; err != nil {
		return nil, err
	}

	var uploads []models.Upload
	err := s.db.Select("id", "user_id", "original_name", "file_size", "created_at").
		Order("created_at DESC").
		Limit(10).
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	owners, err := s.owners(uploads)
	if err != nil {
		return nil, err
	}

	recent := make([]dto.RecentUpload, 0, len(uploads))
	for _, u := range uploads {
		owner := owners[u.UserID]
		recent = append(recent, dto.RecentUpload{
			ID:           u.ID,
			OriginalName: u.OriginalName,
			FileSize:     u.FileSize,
			CreatedAt:    u.CreatedAt,
			OwnerID:      u.UserID,
			Username:     owner.Username,
			Email:        owner.Email,
		})
	}

	return &dto.AdminStatsResponse{Stats: stats, RecentUploads: recent}, nil
}

// DeleteUser cascades a non-admin user: uploads, charts, then the user
// record, in one transaction. Backing files on disk are not removed.
func (s *AdminService) DeleteUser(targetID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Role == models.RoleAdmin {
		return ErrCannotDeleteAdmin
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Upload{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Chart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *AdminService) owners(uploads []models.Upload) (map[uuid.UUID]models.User, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(uploads))
	seen := make(map[uuid.UUID]bool, len(uploads))
	for _, u := range uploads {
		if !seen[u.UserID] {
			seen[u.UserID] = true
			ids = append(ids, u.UserID)
		}
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	owners := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		owners[u.ID] = u
	}
	return owners, nil
}

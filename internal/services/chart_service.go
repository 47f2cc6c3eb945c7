package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/dto"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrChartNotFound    = errors.New("chart not found")
	ErrInvalidChartType = errors.New("invalid chart type")
)

type ChartService struct {
	db *gorm.DB
}

func NewChartService(db *gorm.DB) *ChartService {
	return &ChartService{db: db}
}

// Create persists a chart bound to an upload the caller owns and
// appends its id to the parent's chart reference list. Both writes run
// in one transaction.
func (s *ChartService) Create(userID uuid.UUID, req *dto.CreateChartRequest) (*models.Chart, error) {
	if req.Title == "" || req.XAxis == "" || req.YAxis == "" {
		return nil, errors.New("title, xAxis and yAxis are required")
	}
	if !models.IsValidChartType(req.Type) {
		return nil, ErrInvalidChartType
	}

	var upload models.Upload
	err := s.db.Where("id = ? AND user_id = ?", req.UploadID, userID).First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}

	var config datatypes.JSON
	if req.Config != nil {
		b, err := json.Marshal(req.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to encode chart config: %w", err)
		}
		config = datatypes.JSON(b)
	}

	chart := models.Chart{
		ID:       uuid.New(),
		Title:    req.Title,
		Type:     req.Type,
		XAxis:    req.XAxis,
		YAxis:    req.YAxis,
		UploadID: upload.ID,
		UserID:   userID,
		Config:   config,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chart).Error; err != nil {
			return err
		}
		refs, err := appendChartRef(upload.ChartIDs, chart.ID)
		if err != nil {
			return err
		}
		return tx.Model(&upload).Update("chart_ids", refs).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	return &chart, nil
}

// List returns the caller's charts newest first, each annotated with
// its parent upload's display name.
func (s *ChartService) List(userID uuid.UUID) ([]dto.ChartListItem, error) {
	var charts []models.Chart
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&charts).Error
	if err != nil {
		return nil, err
	}

	names, err := s.uploadNames(charts)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChartListItem, 0, len(charts))
	for _, chart := range charts {
		items = append(items, dto.ChartListItem{
			Chart:      chart,
			UploadName: names[chart.UploadID],
		})
	}
	return items, nil
}

// Get fetches one owned chart together with its parent upload.
func (s *ChartService) Get(userID, chartID uuid.UUID) (*models.Chart, *models.Upload, error) {
	var chart models.Chart
	err := s.db.Where("id = ? AND user_id = ?", chartID, userID).First(&chart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrChartNotFound
		}
		return nil, nil, err
	}

	var upload models.Upload
	if err := s.db.First(&upload, "id = ?", chart.UploadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Parent already cascaded away; serve the chart alone.
			return &chart, nil, nil
		}
		return nil, nil, err
	}

	return &chart, &upload, nil
}

// Delete removes an owned chart. The parent upload's chart reference
// list is left untouched; it is a best-effort index and may dangle.
func (s *ChartService) Delete(userID, chartID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", chartID, userID).Delete(&models.Chart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChartNotFound
	}
	return nil
}

func (s *ChartService) uploadNames(charts []models.Chart) (map[uuid.UUID]string, error) {
	if len(charts) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(charts))
	seen := make(map[uuid.UUID]bool, len(charts))
	for _, chart := range charts {
		if !seen[chart.UploadID] {
			seen[chart.UploadID] = true
			ids = append(ids, chart.UploadID)
		}
	}

	var uploads []models.Upload
	if err := s.db.Select("id", "original_name").Where("id IN ?", ids).Find(&uploads).Error; err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(uploads))
	for _, u := range uploads {
		names[u.ID] = u.OriginalName
	}
	return names, nil
}

func appendChartRef(refs datatypes.JSON, chartID uuid.UUID) (datatypes.JSON, error) {
	var ids []uuid.UUID
	if len(refs) > 0 {
		if err := json.Unmarshal(refs, &ids); err != nil {
			return nil, fmt.Errorf("corrupt chart reference list: %w", err)
		}
	}
	ids = append(ids, chartID)
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

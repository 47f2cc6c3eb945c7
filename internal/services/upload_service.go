package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/dto"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/excel"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/models"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/storage"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUploadNotFound    = errors.New("upload not found")
	ErrUnsupportedFormat = errors.New("only Excel files (.xlsx, .xls) are allowed")
	ErrFileTooLarge      = errors.New("file exceeds the 10MB limit")
	ErrEmptyWorkbook     = excel.ErrEmptyWorkbook
)

// MaxUploadSize caps ingested spreadsheets at 10 MiB.
const MaxUploadSize = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

type UploadService struct {
	db    *gorm.DB
	store *storage.Store
}

func NewUploadService(db *gorm.DB, store *storage.Store) *UploadService {
	return &UploadService{db: db, store: store}
}

// Ingest stores the uploaded spreadsheet, parses its first sheet and
// persists the result. Any failure after the file hits disk removes it
// again, so a failed ingest leaves no orphaned files.
func (s *UploadService) Ingest(userID uuid.UUID, originalName string, size int64, r io.Reader) (*dto.UploadSummary, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedFormat
	}
	if size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	filename, path, written, err := s.store.Save(originalName, r)
	if err != nil {
		return nil, err
	}

	sheet, err := s.parseStored(path)
	if err != nil {
		s.cleanup(path)
		return nil, err
	}

	headers, err := json.Marshal(sheet.Headers)
	if err != nil {
		s.cleanup(path)
		return nil, fmt.Errorf("failed to encode headers: %w", err)
	}
	rows, err := json.Marshal(sheet.Rows)
	if err != nil {
		s.cleanup(path)
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	upload := models.Upload{
		ID:           uuid.New(),
		Filename:     filename,
		OriginalName: originalName,
		FilePath:     path,
		FileSize:     written,
		UserID:       userID,
		Headers:      datatypes.JSON(headers),
		Rows:         datatypes.JSON(rows),
		ChartIDs:     datatypes.JSON([]byte("[]")),
	}

	if err := s.db.Create(&upload).Error; err != nil {
		s.cleanup(path)
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	return &dto.UploadSummary{
		ID:         upload.ID,
		Filename:   upload.OriginalName,
		Headers:    sheet.Headers,
		RowCount:   len(sheet.Rows),
		FileSize:   upload.FileSize,
		UploadDate: upload.CreatedAt,
	}, nil
}

// History lists the caller's uploads as summaries, newest first. Full
// row payloads are only served by Get to bound response size.
func (s *UploadService) History(userID uuid.UUID) ([]dto.UploadSummary, error) {
	var uploads []models.Upload
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.UploadSummary, 0, len(uploads))
	for i := range uploads {
		detail, err := UploadDetailOf(&uploads[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, dto.UploadSummary{
			ID:         detail.ID,
			Filename:   detail.OriginalName,
			Headers:    detail.Headers,
			RowCount:   len(detail.Rows),
			FileSize:   detail.FileSize,
			UploadDate: detail.CreatedAt,
		})
	}
	return summaries, nil
}

// Get fetches one upload with its full row data, scoped to the caller.
func (s *UploadService) Get(userID, uploadID uuid.UUID) (*dto.UploadDetail, error) {
	upload, err := s.owned(userID, uploadID)
	if err != nil {
		return nil, err
	}
	return UploadDetailOf(upload)
}

// Delete removes an upload together with every chart built on it and
// its backing file. The record and chart deletes run in one
// transaction; file removal is best-effort afterwards.
func (s *UploadService) Delete(userID, uploadID uuid.UUID) error {
	upload, err := s.owned(userID, uploadID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("upload_id = ?", upload.ID).Delete(&models.Chart{}).Error; err != nil {
			return err
		}
		return tx.Delete(upload).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	if err := s.store.Remove(upload.FilePath); err != nil {
		slog.Error("failed to remove upload file", "path", upload.FilePath, "error", err)
	}
	return nil
}

func (s *UploadService) owned(userID, uploadID uuid.UUID) (*models.Upload, error) {
	var upload models.Upload
	err := s.db.Where("id = ? AND user_id = ?", uploadID, userID).First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &upload, nil
}

func (s *UploadService) parseStored(path string) (*excel.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen stored file: %w", err)
	}
	defer f.Close()
	return excel.Parse(f)
}

func (s *UploadService) cleanup(path string) {
	if err := s.store.Remove(path); err != nil {
		slog.Error("failed to clean up upload file", "path", path, "error", err)
	}
}

// UploadDetailOf decodes a stored upload into its response projection.
func UploadDetailOf(u *models.Upload) (*dto.UploadDetail, error) {
	var headers []string
	if len(u.Headers) > 0 {
		if err := json.Unmarshal(u.Headers, &headers); err != nil {
			return nil, fmt.Errorf("corrupt headers payload: %w", err)
		}
	}
	var rows [][]interface{}
	if len(u.Rows) > 0 {
		if err := json.Unmarshal(u.Rows, &rows); err != nil {
			return nil, fmt.Errorf("corrupt rows payload: %w", err)
		}
	}
	var chartIDs []uuid.UUID
	if len(u.ChartIDs) > 0 {
		if err := json.Unmarshal(u.ChartIDs, &chartIDs); err != nil {
			return nil, fmt.Errorf("corrupt chart reference list: %w", err)
		}
	}

	return &dto.UploadDetail{
		ID:           u.ID,
		Filename:     u.Filename,
		OriginalName: u.OriginalName,
		FileSize:     u.FileSize,
		Headers:      headers,
		Rows:         rows,
		ChartIDs:     chartIDs,
		CreatedAt:    u.CreatedAt,
	}, nil
}

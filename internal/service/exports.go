package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
)

// ExportService manages resume export records, the durable trace of every
// export attempt.
type ExportService struct {
	db *gorm.DB
}

// NewExportService builds an ExportService.
func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// Create inserts the export record before any rendering happens. The version
// is monotonic per resume and the file name is derived from the resume name.
func (s *ExportService) Create(ctx context.Context, userID, resumeID uint) (*database.ResumeExport, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}

	var target database.Resume
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", resumeID, userID).
		First(&target).Error; err != nil {
		return nil, apperr.Wrap(err, "resume not found")
	}

	var export database.ResumeExport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&database.ResumeExport{}).
			Where("resume_id = ?", target.ID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}

		export = database.ResumeExport{
			ResumeID: target.ID,
			Format:   "pdf",
			Version:  maxVersion + 1,
			Status:   database.ExportStatusCreated,
		}
		export.FilePath = fmt.Sprintf("%s-v%d.pdf", slugify(target.Name), export.Version)
		return tx.Create(&export).Error
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to create export record")
	}
	return &export, nil
}

// Get returns one export owned (through its resume) by the user.
func (s *ExportService) Get(ctx context.Context, userID, exportID uint) (*database.ResumeExport, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	var export database.ResumeExport
	if err := s.db.WithContext(ctx).
		Joins("JOIN resumes ON resumes.id = resume_exports.resume_id").
		Where("resume_exports.id = ? AND resumes.user_id = ?", exportID, userID).
		First(&export).Error; err != nil {
		return nil, apperr.Wrap(err, "export not found")
	}
	return &export, nil
}

// GetByID loads an export without an ownership check; the background worker
// uses it after the API already verified the caller.
func (s *ExportService) GetByID(ctx context.Context, exportID uint) (*database.ResumeExport, error) {
	var export database.ResumeExport
	if err := s.db.WithContext(ctx).First(&export, exportID).Error; err != nil {
		return nil, apperr.Wrap(err, "export not found")
	}
	return &export, nil
}

// MarkCompleted records the stored artifact for an async export.
func (s *ExportService) MarkCompleted(ctx context.Context, exportID uint, objectKey string) error {
	err := s.db.WithContext(ctx).Model(&database.ResumeExport{}).
		Where("id = ?", exportID).
		Updates(map[string]any{
			"status":     database.ExportStatusCompleted,
			"object_key": objectKey,
		}).Error
	if err != nil {
		return apperr.Wrap(err, "failed to mark export completed")
	}
	return nil
}

// MarkFailed flags an async export whose final attempt failed.
func (s *ExportService) MarkFailed(ctx context.Context, exportID uint) error {
	err := s.db.WithContext(ctx).Model(&database.ResumeExport{}).
		Where("id = ?", exportID).
		Update("status", database.ExportStatusFailed).Error
	if err != nil {
		return apperr.Wrap(err, "failed to mark export failed")
	}
	return nil
}

// slugify reduces a resume name to a safe file-name stem.
func slugify(name string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimRight(sb.String(), "-")
	if slug == "" {
		slug = "resume"
	}
	return slug
}

package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
)

// ProjectService manages portfolio projects.
type ProjectService struct {
	db      *gorm.DB
	history *HistoryService
}

// NewProjectService builds a ProjectService.
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, history: NewHistoryService(db)}
}

// ProjectInput carries the client-settable project fields.
type ProjectInput struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description"`
	URL         string     `json:"url" binding:"max=512"`
	Source      string     `json:"source"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// List returns the user's projects, most recent start first.
func (s *ProjectService) List(ctx context.Context, userID uint) ([]database.Project, error) {
	historyID, err := s.history.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var rows []database.Project
	if err := s.db.WithContext(ctx).
		Where("history_id = ?", historyID).
		Order("start_date DESC NULLS LAST, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list projects")
	}
	return rows, nil
}

// Create inserts a project.
func (s *ProjectService) Create(ctx context.Context, userID uint, in ProjectInput) (*database.Project, error) {
	historyID, err := s.history.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	row := database.Project{
		HistoryID:   historyID,
		Name:        in.Name,
		Description: in.Description,
		URL:         in.URL,
		Source:      sourceOrManual(in.Source),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create project")
	}
	return &row, nil
}

// Update overwrites the client-settable fields of a project.
func (s *ProjectService) Update(ctx context.Context, userID, id uint, in ProjectInput) (*database.Project, error) {
	historyID, err := s.history.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	var row database.Project
	if err := s.db.WithContext(ctx).
		Where("id = ? AND history_id = ?", id, historyID).
		First(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "project not found")
	}
	updates := map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"url":         in.URL,
		"source":      sourceOrManual(in.Source),
		"start_date":  in.StartDate,
		"end_date":    in.EndDate,
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to update project")
	}
	return &row, nil
}

// Delete removes a project by id.
func (s *ProjectService) Delete(ctx context.Context, userID, id uint) error {
	historyID, err := s.history.historyID(ctx, userID)
	if err != nil {
		return err
	}
	return s.history.deleteOwned(ctx, &database.Project{}, id, historyID, "project not found")
}

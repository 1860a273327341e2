// Package service holds the domain services. Every operation requires a
// resolved user identity, pushes ownership filters into the query, stamps
// timestamps server-side, and normalizes failures through apperr so handlers
// never see raw persistence errors.
package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
	"jobvault/internal/pipeline"
)

// JobService manages tracked job applications.
type JobService struct {
	db *gorm.DB
}

// NewJobService builds a JobService on an injected database handle.
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// JobInput carries the client-settable job fields. Timestamps are never
// taken from input.
type JobInput struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Company     string     `json:"company" binding:"max=255"`
	Location    string     `json:"location" binding:"max=255"`
	URL         string     `json:"url" binding:"max=512"`
	Salary      string     `json:"salary" binding:"max=128"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	Status      string     `json:"status"`
	DateApplied *time.Time `json:"date_applied"`
}

func validJobStatus(s string) bool {
	for _, known := range database.JobStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// List returns the user's jobs ordered by creation time descending.
func (s *JobService) List(ctx context.Context, userID uint) ([]database.Job, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	var jobs []database.Job
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list jobs")
	}
	return jobs, nil
}

// Get returns one job owned by the user.
func (s *JobService) Get(ctx context.Context, userID, jobID uint) (*database.Job, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	var job database.Job
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", jobID, userID).
		First(&job).Error; err != nil {
		return nil, apperr.Wrap(err, "job not found")
	}
	return &job, nil
}

// Create inserts a new job. DateSaved is stamped here, not trusted from input.
func (s *JobService) Create(ctx context.Context, userID uint, in JobInput) (*database.Job, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}

	status := in.Status
	if status == "" {
		status = database.JobStatusSaved
	}
	if !validJobStatus(status) {
		return nil, apperr.New(apperr.Validation, "unknown job status")
	}

	job := database.Job{
		UserID:      userID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		URL:         in.URL,
		Salary:      in.Salary,
		Description: in.Description,
		Notes:       in.Notes,
		Status:      status,
		DateSaved:   time.Now().UTC(),
		DateApplied: in.DateApplied,
	}

	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create job")
	}
	return &job, nil
}

// Update overwrites the client-settable fields of a job.
func (s *JobService) Update(ctx context.Context, userID, jobID uint, in JobInput) (*database.Job, error) {
	job, err := s.Get(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = job.Status
	}
	if !validJobStatus(status) {
		return nil, apperr.New(apperr.Validation, "unknown job status")
	}

	updates := map[string]any{
		"title":        in.Title,
		"company":      in.Company,
		"location":     in.Location,
		"url":          in.URL,
		"salary":       in.Salary,
		"description":  in.Description,
		"notes":        in.Notes,
		"status":       status,
		"date_applied": in.DateApplied,
	}
	if err := s.db.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to update job")
	}
	if err := s.db.WithContext(ctx).First(job, job.ID).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to reload job")
	}
	return job, nil
}

// Delete removes a job. Deleting an already-deleted job surfaces NotFound;
// the stored data is untouched either way.
func (s *JobService) Delete(ctx context.Context, userID, jobID uint) error {
	job, err := s.Get(ctx, userID, jobID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&database.Job{}, job.ID).Error; err != nil {
		return apperr.Wrap(err, "failed to delete job")
	}
	return nil
}

// Pipeline returns the status summary for the user's jobs.
func (s *JobService) Pipeline(ctx context.Context, userID uint) (pipeline.Summary, error) {
	jobs, err := s.List(ctx, userID)
	if err != nil {
		return pipeline.Summary{}, err
	}
	return pipeline.Summarize(jobs), nil
}

package service

import (
	"context"

	"gorm.io/gorm"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
	"jobvault/internal/resume"
)

// ResumeService manages resumes and their ordered sections.
type ResumeService struct {
	db *gorm.DB
}

// NewResumeService builds a ResumeService.
func NewResumeService(db *gorm.DB) *ResumeService {
	return &ResumeService{db: db}
}

// ResumeWithSections is the composite returned by Get: the resume row plus
// its sections ordered by order_index ascending.
type ResumeWithSections struct {
	Resume   database.Resume
	Sections []database.ResumeSection
}

// ResumeInput carries the client-settable resume fields.
type ResumeInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	FontFamily  string `json:"font_family"`
	FontSize    string `json:"font_size"`
	LineSpacing string `json:"line_spacing"`
	MarginSize  string `json:"margin_size"`
	Ranking     int    `json:"ranking"`
}

// SectionInput carries the client-settable section fields. Order is assigned
// by the service, never taken from input.
type SectionInput struct {
	Type    string `json:"type" binding:"required"`
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content"`
}

// List returns the user's resumes ordered by ranking, then newest first.
func (s *ResumeService) List(ctx context.Context, userID uint) ([]database.Resume, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	var rows []database.Resume
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ranking ASC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list resumes")
	}
	return rows, nil
}

// Get returns a resume and its sections in display order.
func (s *ResumeService) Get(ctx context.Context, userID, resumeID uint) (*ResumeWithSections, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	var row database.Resume
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", resumeID, userID).
		First(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "resume not found")
	}

	sections, err := s.orderedSections(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return &ResumeWithSections{Resume: row, Sections: sections}, nil
}

func (s *ResumeService) orderedSections(ctx context.Context, resumeID uint) ([]database.ResumeSection, error) {
	var sections []database.ResumeSection
	if err := s.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Order("order_index ASC").
		Find(&sections).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to load sections")
	}
	return sections, nil
}

// Create inserts a new resume.
func (s *ResumeService) Create(ctx context.Context, userID uint, in ResumeInput) (*database.Resume, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	row := database.Resume{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		FontFamily:  orDefault(in.FontFamily, "sans"),
		FontSize:    orDefault(in.FontSize, "medium"),
		LineSpacing: orDefault(in.LineSpacing, "normal"),
		MarginSize:  orDefault(in.MarginSize, "medium"),
		Ranking:     in.Ranking,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create resume")
	}
	return &row, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Update overwrites the client-settable fields of a resume.
func (s *ResumeService) Update(ctx context.Context, userID, resumeID uint, in ResumeInput) (*database.Resume, error) {
	composite, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	row := composite.Resume

	updates := map[string]any{
		"name":         in.Name,
		"description":  in.Description,
		"font_family":  orDefault(in.FontFamily, row.FontFamily),
		"font_size":    orDefault(in.FontSize, row.FontSize),
		"line_spacing": orDefault(in.LineSpacing, row.LineSpacing),
		"margin_size":  orDefault(in.MarginSize, row.MarginSize),
		"ranking":      in.Ranking,
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to update resume")
	}
	if err := s.db.WithContext(ctx).First(&row, row.ID).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to reload resume")
	}
	return &row, nil
}

// Delete removes a resume and (via FK cascade) its sections and exports.
func (s *ResumeService) Delete(ctx context.Context, userID, resumeID uint) error {
	composite, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&database.Resume{}, composite.Resume.ID).Error; err != nil {
		return apperr.Wrap(err, "failed to delete resume")
	}
	return nil
}

// CreateSection appends a section at the end of the resume's display order.
func (s *ResumeService) CreateSection(ctx context.Context, userID, resumeID uint, in SectionInput) (*database.ResumeSection, error) {
	if !resume.ValidSectionType(in.Type) {
		return nil, apperr.New(apperr.Validation, "unknown section type")
	}
	composite, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}

	section := database.ResumeSection{
		ResumeID:   composite.Resume.ID,
		Type:       in.Type,
		Title:      in.Title,
		Content:    in.Content,
		OrderIndex: len(composite.Sections),
	}
	if err := s.db.WithContext(ctx).Create(&section).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create section")
	}
	return &section, nil
}

// UpdateSection overwrites a section's type, title and content. OrderIndex is
// only ever changed through ReorderSections.
func (s *ResumeService) UpdateSection(ctx context.Context, userID, sectionID uint, in SectionInput) (*database.ResumeSection, error) {
	if !resume.ValidSectionType(in.Type) {
		return nil, apperr.New(apperr.Validation, "unknown section type")
	}
	section, err := s.sectionForUser(ctx, userID, sectionID)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"type":    in.Type,
		"title":   in.Title,
		"content": in.Content,
	}
	if err := s.db.WithContext(ctx).Model(section).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to update section")
	}
	return section, nil
}

// DeleteSection removes a section and closes the gap it leaves, keeping
// order_index contiguous.
func (s *ResumeService) DeleteSection(ctx context.Context, userID, sectionID uint) error {
	section, err := s.sectionForUser(ctx, userID, sectionID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&database.ResumeSection{}, section.ID).Error; err != nil {
			return err
		}
		var rest []database.ResumeSection
		if err := tx.Where("resume_id = ?", section.ResumeID).
			Order("order_index ASC").
			Find(&rest).Error; err != nil {
			return err
		}
		return writeOrder(tx, resume.Normalize(toSections(rest)))
	})
	if err != nil {
		return apperr.Wrap(err, "failed to delete section")
	}
	return nil
}

// ReorderSections applies a drag-and-drop move (source index, destination
// index) and rewrites every order_index in one transaction, so no observer
// ever sees a duplicated or gapped ordering.
func (s *ResumeService) ReorderSections(ctx context.Context, userID, resumeID uint, from, to int) ([]database.ResumeSection, error) {
	composite, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}

	reordered, err := resume.Reorder(toSections(composite.Sections), from, to)
	if err != nil {
		return nil, apperr.New(apperr.Validation, err.Error())
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return writeOrder(tx, reordered)
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to persist section order")
	}

	return s.orderedSections(ctx, resumeID)
}

// writeOrder persists the order_index of every section inside the caller's
// transaction.
func writeOrder(tx *gorm.DB, sections []resume.Section) error {
	for _, sec := range sections {
		if err := tx.Model(&database.ResumeSection{}).
			Where("id = ?", sec.ID).
			Update("order_index", sec.OrderIndex).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *ResumeService) sectionForUser(ctx context.Context, userID, sectionID uint) (*database.ResumeSection, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	var section database.ResumeSection
	if err := s.db.WithContext(ctx).
		Joins("JOIN resumes ON resumes.id = resume_sections.resume_id").
		Where("resume_sections.id = ? AND resumes.user_id = ?", sectionID, userID).
		First(&section).Error; err != nil {
		return nil, apperr.Wrap(err, "section not found")
	}
	return &section, nil
}

func toSections(rows []database.ResumeSection) []resume.Section {
	out := make([]resume.Section, 0, len(rows))
	for _, r := range rows {
		out = append(out, resume.Section{
			ID:         r.ID,
			Type:       r.Type,
			Title:      r.Title,
			Content:    r.Content,
			OrderIndex: r.OrderIndex,
		})
	}
	return out
}

// Layout builds the rendering description shared by the preview endpoint and
// the export pipeline.
func (s *ResumeService) Layout(ctx context.Context, userID, resumeID uint) (resume.Layout, error) {
	composite, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return resume.Layout{}, err
	}
	return BuildResumeLayout(composite), nil
}

// BuildResumeLayout maps a composite to the pure layout type.
func BuildResumeLayout(composite *ResumeWithSections) resume.Layout {
	style := resume.Style{
		FontFamily:  composite.Resume.FontFamily,
		FontSize:    composite.Resume.FontSize,
		LineSpacing: composite.Resume.LineSpacing,
		MarginSize:  composite.Resume.MarginSize,
	}
	return resume.BuildLayout(
		composite.Resume.Name,
		composite.Resume.Description,
		style,
		toSections(composite.Sections),
	)
}

// Seed creates the fixed sample resume for the current user.
func (s *ResumeService) Seed(ctx context.Context, userID uint) (*ResumeWithSections, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "sign in required")
	}

	row := database.Resume{
		UserID:      userID,
		Name:        "Sample Resume",
		Description: "A starter resume you can edit or delete.",
		FontFamily:  "sans",
		FontSize:    "medium",
		LineSpacing: "normal",
		MarginSize:  "medium",
	}
	sections := []database.ResumeSection{
		{Type: resume.SectionSummary, Title: "Summary", Content: "Experienced professional with a track record of delivering results."},
		{Type: resume.SectionExperience, Title: "Work Experience", Content: "Senior Engineer, Example Corp\n2020 - Present\n\nEngineer, Sample Inc\n2017 - 2020"},
		{Type: resume.SectionEducation, Title: "Education", Content: "B.Sc. Computer Science, State University"},
		{Type: resume.SectionSkills, Title: "Skills", Content: "Go, PostgreSQL, Docker, Kubernetes"},
		{Type: resume.SectionProjects, Title: "Projects", Content: "Job Vault - a job application tracker."},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for i := range sections {
			sections[i].ResumeID = row.ID
			sections[i].OrderIndex = i
			if err := tx.Create(&sections[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to seed resume")
	}

	return &ResumeWithSections{Resume: row, Sections: sections}, nil
}

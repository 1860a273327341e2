package service

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
)

// HistoryService manages the professional-history entities. Each entity hangs
// off the user's single ProfessionalHistory row, which is created lazily on
// the first write.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService builds a HistoryService.
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

func validSource(s string) bool {
	return s == "" || s == database.SourceManual || s == database.SourceImported
}

func sourceOrManual(s string) string {
	if s == "" {
		return database.SourceManual
	}
	return s
}

// historyID resolves (creating if needed) the user's history container.
func (s *HistoryService) historyID(ctx context.Context, userID uint) (uint, error) {
	if userID == 0 {
		return 0, apperr.New(apperr.Unauthenticated, "sign in required")
	}
	var history database.ProfessionalHistory
	err := s.db.WithContext(ctx).
		Where(database.ProfessionalHistory{UserID: userID}).
		FirstOrCreate(&history).Error
	if err != nil {
		return 0, apperr.Wrap(err, "failed to resolve professional history")
	}
	return history.ID, nil
}

// ExperienceInput carries the client-settable work-experience fields.
type ExperienceInput struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Company     string     `json:"company" binding:"max=255"`
	Location    string     `json:"location" binding:"max=255"`
	Description string     `json:"description"`
	Source      string     `json:"source"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// ListExperiences returns the user's work experiences, most recent start first.
func (s *HistoryService) ListExperiences(ctx context.Context, userID uint) ([]database.WorkExperience, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var rows []database.WorkExperience
	if err := s.db.WithContext(ctx).
		Where("history_id = ?", historyID).
		Order("start_date DESC NULLS LAST, created_at DESC").
		Preload("Achievements.Metrics").
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list experiences")
	}
	return rows, nil
}

// CreateExperience inserts a work experience.
func (s *HistoryService) CreateExperience(ctx context.Context, userID uint, in ExperienceInput) (*database.WorkExperience, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	row := database.WorkExperience{
		HistoryID:   historyID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Description: in.Description,
		Source:      sourceOrManual(in.Source),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create experience")
	}
	return &row, nil
}

// UpdateExperience overwrites the client-settable fields of an experience.
func (s *HistoryService) UpdateExperience(ctx context.Context, userID, id uint, in ExperienceInput) (*database.WorkExperience, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	var row database.WorkExperience
	if err := s.db.WithContext(ctx).
		Where("id = ? AND history_id = ?", id, historyID).
		First(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "experience not found")
	}
	updates := map[string]any{
		"title":       in.Title,
		"company":     in.Company,
		"location":    in.Location,
		"description": in.Description,
		"source":      sourceOrManual(in.Source),
		"start_date":  in.StartDate,
		"end_date":    in.EndDate,
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to update experience")
	}
	return &row, nil
}

// DeleteExperience removes an experience by id.
func (s *HistoryService) DeleteExperience(ctx context.Context, userID, id uint) error {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return err
	}
	return s.deleteOwned(ctx, &database.WorkExperience{}, id, historyID, "experience not found")
}

// EducationInput carries the client-settable education fields.
type EducationInput struct {
	Institution  string     `json:"institution" binding:"required,max=255"`
	Degree       string     `json:"degree" binding:"max=255"`
	FieldOfStudy string     `json:"field_of_study" binding:"max=255"`
	Description  string     `json:"description"`
	Source       string     `json:"source"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// ListEducation returns the user's education entries.
func (s *HistoryService) ListEducation(ctx context.Context, userID uint) ([]database.Education, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var rows []database.Education
	if err := s.db.WithContext(ctx).
		Where("history_id = ?", historyID).
		Order("start_date DESC NULLS LAST, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list education")
	}
	return rows, nil
}

// CreateEducation inserts an education entry.
func (s *HistoryService) CreateEducation(ctx context.Context, userID uint, in EducationInput) (*database.Education, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	row := database.Education{
		HistoryID:    historyID,
		Institution:  in.Institution,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		Description:  in.Description,
		Source:       sourceOrManual(in.Source),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create education entry")
	}
	return &row, nil
}

// UpdateEducation overwrites the client-settable fields of an education entry.
func (s *HistoryService) UpdateEducation(ctx context.Context, userID, id uint, in EducationInput) (*database.Education, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	var row database.Education
	if err := s.db.WithContext(ctx).
		Where("id = ? AND history_id = ?", id, historyID).
		First(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "education entry not found")
	}
	updates := map[string]any{
		"institution":    in.Institution,
		"degree":         in.Degree,
		"field_of_study": in.FieldOfStudy,
		"description":    in.Description,
		"source":         sourceOrManual(in.Source),
		"start_date":     in.StartDate,
		"end_date":       in.EndDate,
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to update education entry")
	}
	return &row, nil
}

// DeleteEducation removes an education entry by id.
func (s *HistoryService) DeleteEducation(ctx context.Context, userID, id uint) error {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return err
	}
	return s.deleteOwned(ctx, &database.Education{}, id, historyID, "education entry not found")
}

// SkillInput carries the client-settable skill fields.
type SkillInput struct {
	Name     string   `json:"name" binding:"required,max=128"`
	Level    string   `json:"level" binding:"max=32"`
	Source   string   `json:"source"`
	Contexts []string `json:"contexts"`
}

// ListSkills returns the user's skills with their contexts.
func (s *HistoryService) ListSkills(ctx context.Context, userID uint) ([]database.Skill, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var rows []database.Skill
	if err := s.db.WithContext(ctx).
		Where("history_id = ?", historyID).
		Order("name ASC").
		Preload("Contexts").
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list skills")
	}
	return rows, nil
}

// CreateSkill inserts a skill with its contexts.
func (s *HistoryService) CreateSkill(ctx context.Context, userID uint, in SkillInput) (*database.Skill, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	row := database.Skill{
		HistoryID: historyID,
		Name:      in.Name,
		Level:     in.Level,
		Source:    sourceOrManual(in.Source),
	}
	for _, c := range in.Contexts {
		row.Contexts = append(row.Contexts, database.SkillContext{Context: c})
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create skill")
	}
	return &row, nil
}

// UpdateSkill overwrites a skill and replaces its contexts.
func (s *HistoryService) UpdateSkill(ctx context.Context, userID, id uint, in SkillInput) (*database.Skill, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	var row database.Skill
	if err := s.db.WithContext(ctx).
		Where("id = ? AND history_id = ?", id, historyID).
		First(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "skill not found")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&row).Updates(map[string]any{
			"name":   in.Name,
			"level":  in.Level,
			"source": sourceOrManual(in.Source),
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("skill_id = ?", row.ID).Delete(&database.SkillContext{}).Error; err != nil {
			return err
		}
		for _, c := range in.Contexts {
			if err := tx.Create(&database.SkillContext{SkillID: row.ID, Context: c}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to update skill")
	}

	if err := s.db.WithContext(ctx).Preload("Contexts").First(&row, row.ID).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to reload skill")
	}
	return &row, nil
}

// DeleteSkill removes a skill by id.
func (s *HistoryService) DeleteSkill(ctx context.Context, userID, id uint) error {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return err
	}
	return s.deleteOwned(ctx, &database.Skill{}, id, historyID, "skill not found")
}

// CertificationInput carries the client-settable certification fields.
type CertificationInput struct {
	Name       string     `json:"name" binding:"required,max=255"`
	Issuer     string     `json:"issuer" binding:"max=255"`
	Credential string     `json:"credential" binding:"max=255"`
	Source     string     `json:"source"`
	IssueDate  *time.Time `json:"issue_date"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// ListCertifications returns the user's certifications.
func (s *HistoryService) ListCertifications(ctx context.Context, userID uint) ([]database.Certification, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var rows []database.Certification
	if err := s.db.WithContext(ctx).
		Where("history_id = ?", historyID).
		Order("issue_date DESC NULLS LAST, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list certifications")
	}
	return rows, nil
}

// CreateCertification inserts a certification.
func (s *HistoryService) CreateCertification(ctx context.Context, userID uint, in CertificationInput) (*database.Certification, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	row := database.Certification{
		HistoryID:  historyID,
		Name:       in.Name,
		Issuer:     in.Issuer,
		Credential: in.Credential,
		Source:     sourceOrManual(in.Source),
		IssueDate:  in.IssueDate,
		ExpiryDate: in.ExpiryDate,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create certification")
	}
	return &row, nil
}

// UpdateCertification overwrites the client-settable fields of a certification.
func (s *HistoryService) UpdateCertification(ctx context.Context, userID, id uint, in CertificationInput) (*database.Certification, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !validSource(in.Source) {
		return nil, apperr.New(apperr.Validation, "unknown source tag")
	}
	var row database.Certification
	if err := s.db.WithContext(ctx).
		Where("id = ? AND history_id = ?", id, historyID).
		First(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "certification not found")
	}
	updates := map[string]any{
		"name":        in.Name,
		"issuer":      in.Issuer,
		"credential":  in.Credential,
		"source":      sourceOrManual(in.Source),
		"issue_date":  in.IssueDate,
		"expiry_date": in.ExpiryDate,
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to update certification")
	}
	return &row, nil
}

// DeleteCertification removes a certification by id.
func (s *HistoryService) DeleteCertification(ctx context.Context, userID, id uint) error {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return err
	}
	return s.deleteOwned(ctx, &database.Certification{}, id, historyID, "certification not found")
}

// MetricInput is one quantified figure attached to an achievement.
type MetricInput struct {
	Label string         `json:"label" binding:"required,max=128"`
	Value datatypes.JSON `json:"value"`
}

// AchievementInput carries the client-settable achievement fields.
type AchievementInput struct {
	ExperienceID uint          `json:"experience_id" binding:"required"`
	Text         string        `json:"text" binding:"required"`
	Metrics      []MetricInput `json:"metrics"`
}

// ListAchievements returns the achievements attached to the user's experiences.
func (s *HistoryService) ListAchievements(ctx context.Context, userID uint) ([]database.Achievement, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var rows []database.Achievement
	if err := s.db.WithContext(ctx).
		Joins("JOIN work_experiences ON work_experiences.id = achievements.experience_id").
		Where("work_experiences.history_id = ?", historyID).
		Preload("Metrics").
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to list achievements")
	}
	return rows, nil
}

// CreateAchievement inserts an achievement (with metrics) under one of the
// user's experiences.
func (s *HistoryService) CreateAchievement(ctx context.Context, userID uint, in AchievementInput) (*database.Achievement, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var experience database.WorkExperience
	if err := s.db.WithContext(ctx).
		Where("id = ? AND history_id = ?", in.ExperienceID, historyID).
		First(&experience).Error; err != nil {
		return nil, apperr.Wrap(err, "experience not found")
	}

	row := database.Achievement{
		ExperienceID: experience.ID,
		Text:         in.Text,
	}
	for _, m := range in.Metrics {
		row.Metrics = append(row.Metrics, database.AchievementMetric{Label: m.Label, Value: m.Value})
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to create achievement")
	}
	return &row, nil
}

// UpdateAchievement rewrites an achievement's text and replaces its metrics.
func (s *HistoryService) UpdateAchievement(ctx context.Context, userID, id uint, in AchievementInput) (*database.Achievement, error) {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var row database.Achievement
	if err := s.db.WithContext(ctx).
		Joins("JOIN work_experiences ON work_experiences.id = achievements.experience_id").
		Where("achievements.id = ? AND work_experiences.history_id = ?", id, historyID).
		First(&row).Error; err != nil {
		return nil, apperr.Wrap(err, "achievement not found")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&row).Update("text", in.Text).Error; err != nil {
			return err
		}
		if err := tx.Where("achievement_id = ?", row.ID).Delete(&database.AchievementMetric{}).Error; err != nil {
			return err
		}
		for _, m := range in.Metrics {
			metric := database.AchievementMetric{AchievementID: row.ID, Label: m.Label, Value: m.Value}
			if err := tx.Create(&metric).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to update achievement")
	}

	if err := s.db.WithContext(ctx).Preload("Metrics").First(&row, row.ID).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to reload achievement")
	}
	return &row, nil
}

// DeleteAchievement removes an achievement by id.
func (s *HistoryService) DeleteAchievement(ctx context.Context, userID, id uint) error {
	historyID, err := s.historyID(ctx, userID)
	if err != nil {
		return err
	}
	var row database.Achievement
	if err := s.db.WithContext(ctx).
		Joins("JOIN work_experiences ON work_experiences.id = achievements.experience_id").
		Where("achievements.id = ? AND work_experiences.history_id = ?", id, historyID).
		First(&row).Error; err != nil {
		return apperr.Wrap(err, "achievement not found")
	}
	if err := s.db.WithContext(ctx).Delete(&database.Achievement{}, row.ID).Error; err != nil {
		return apperr.Wrap(err, "failed to delete achievement")
	}
	return nil
}

// deleteOwned deletes one history-scoped row, surfacing NotFound when the row
// is absent or owned by someone else.
func (s *HistoryService) deleteOwned(ctx context.Context, model any, id, historyID uint, notFoundMsg string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND history_id = ?", id, historyID).
		Delete(model)
	if result.Error != nil {
		return apperr.Wrap(result.Error, "delete failed")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, notFoundMsg)
	}
	return nil
}

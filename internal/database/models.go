package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account in the system.
type User struct {
	gorm.Model
	Username           string `gorm:"uniqueIndex;size:64"`
	PasswordHash       string `gorm:"size:255"`
	MustChangePassword bool   `gorm:"default:false"`
	Jobs               []Job  `gorm:"constraint:OnDelete:CASCADE"`
	Resumes            []Resume
}

// Job statuses form a closed set; the pipeline summary depends on it.
const (
	JobStatusSaved     = "saved"
	JobStatusApplied   = "applied"
	JobStatusInterview = "interview"
	JobStatusOffer     = "offer"
	JobStatusRejected  = "rejected"
	JobStatusClosed    = "closed"
)

// JobStatuses lists every status in pipeline order.
func JobStatuses() []string {
	return []string{
		JobStatusSaved,
		JobStatusApplied,
		JobStatusInterview,
		JobStatusOffer,
		JobStatusRejected,
		JobStatusClosed,
	}
}

// Job is a tracked job application.
type Job struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	User        User   `gorm:"constraint:OnDelete:CASCADE"`
	Title       string `gorm:"size:255;not null"`
	Company     string `gorm:"size:255"`
	Location    string `gorm:"size:255"`
	URL         string `gorm:"size:512"`
	Salary      string `gorm:"size:128"`
	Description string `gorm:"type:text"`
	Notes       string `gorm:"type:text"`
	Status      string `gorm:"size:32;default:'saved'"`
	DateSaved   time.Time
	DateApplied *time.Time
}

// Entity source tags.
const (
	SourceManual   = "manual"
	SourceImported = "imported"
)

// ProfessionalHistory is the per-user container for career entities.
// Created lazily on the first history write.
type ProfessionalHistory struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`
}

// WorkExperience is one employment entry.
type WorkExperience struct {
	gorm.Model
	HistoryID    uint                `gorm:"index"`
	History      ProfessionalHistory `gorm:"foreignKey:HistoryID;constraint:OnDelete:CASCADE"`
	Title        string              `gorm:"size:255"`
	Company      string              `gorm:"size:255"`
	Location     string              `gorm:"size:255"`
	Description  string              `gorm:"type:text"`
	Source       string              `gorm:"size:16;default:'manual'"`
	StartDate    *time.Time
	EndDate      *time.Time
	Achievements []Achievement `gorm:"foreignKey:ExperienceID;constraint:OnDelete:CASCADE"`
}

// Education is one degree or course of study.
type Education struct {
	gorm.Model
	HistoryID    uint                `gorm:"index"`
	History      ProfessionalHistory `gorm:"foreignKey:HistoryID;constraint:OnDelete:CASCADE"`
	Institution  string              `gorm:"size:255"`
	Degree       string              `gorm:"size:255"`
	FieldOfStudy string              `gorm:"size:255"`
	Description  string              `gorm:"type:text"`
	Source       string              `gorm:"size:16;default:'manual'"`
	StartDate    *time.Time
	EndDate      *time.Time
}

// Project is a portfolio project.
type Project struct {
	gorm.Model
	HistoryID   uint                `gorm:"index"`
	History     ProfessionalHistory `gorm:"foreignKey:HistoryID;constraint:OnDelete:CASCADE"`
	Name        string              `gorm:"size:255"`
	Description string              `gorm:"type:text"`
	URL         string              `gorm:"size:512"`
	Source      string              `gorm:"size:16;default:'manual'"`
	StartDate   *time.Time
	EndDate     *time.Time
}

// Skill is a named skill, optionally with contexts describing where it was used.
type Skill struct {
	gorm.Model
	HistoryID uint                `gorm:"index"`
	History   ProfessionalHistory `gorm:"foreignKey:HistoryID;constraint:OnDelete:CASCADE"`
	Name      string              `gorm:"size:128"`
	Level     string              `gorm:"size:32"`
	Source    string              `gorm:"size:16;default:'manual'"`
	Contexts  []SkillContext      `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

// Certification is a professional certification.
type Certification struct {
	gorm.Model
	HistoryID  uint                `gorm:"index"`
	History    ProfessionalHistory `gorm:"foreignKey:HistoryID;constraint:OnDelete:CASCADE"`
	Name       string              `gorm:"size:255"`
	Issuer     string              `gorm:"size:255"`
	Credential string              `gorm:"size:255"`
	Source     string              `gorm:"size:16;default:'manual'"`
	IssueDate  *time.Time
	ExpiryDate *time.Time
}

// Achievement is a measurable accomplishment inside a work experience.
type Achievement struct {
	gorm.Model
	ExperienceID uint                `gorm:"index"`
	Text         string              `gorm:"type:text"`
	Metrics      []AchievementMetric `gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE"`
}

// AchievementMetric is one quantified figure attached to an achievement.
// Value is jsonb so imported metrics can keep arbitrary shapes.
type AchievementMetric struct {
	gorm.Model
	AchievementID uint           `gorm:"index"`
	Label         string         `gorm:"size:128"`
	Value         datatypes.JSON `gorm:"type:jsonb"`
}

// SkillContext records where a skill was exercised.
type SkillContext struct {
	gorm.Model
	SkillID uint   `gorm:"index"`
	Context string `gorm:"type:text"`
}

// Resume is a named, styled arrangement of sections owned by one user.
// Style columns hold the closed enums defined in internal/resume.
type Resume struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	User        User   `gorm:"constraint:OnDelete:CASCADE"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	FontFamily  string `gorm:"size:32;default:'sans'"`
	FontSize    string `gorm:"size:32;default:'medium'"`
	LineSpacing string `gorm:"size:32;default:'normal'"`
	MarginSize  string `gorm:"size:32;default:'medium'"`
	Ranking     int    `gorm:"default:0"`
	Sections    []ResumeSection
}

// ResumeSection is one ordered block of a resume. OrderIndex is unique and
// contiguous (0..N-1) within a resume; the reorder service keeps it that way
// (no DB constraint; soft-deleted rows would collide with a live index).
type ResumeSection struct {
	gorm.Model
	ResumeID   uint         `gorm:"index"`
	Resume     Resume       `gorm:"constraint:OnDelete:CASCADE"`
	Type       string       `gorm:"size:32"`
	Title      string       `gorm:"size:255"`
	Content    string       `gorm:"type:text"`
	OrderIndex int          `gorm:"index"`
	Items      []ResumeItem `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

// ResumeItem links a section to a concrete professional-history entity.
// Not consulted by the export path.
type ResumeItem struct {
	gorm.Model
	SectionID  uint   `gorm:"index"`
	ItemType   string `gorm:"size:32"`
	ItemID     uint
	OrderIndex int
}

// Export statuses for the async pipeline. The synchronous route leaves the
// row at "created" and streams the bytes directly.
const (
	ExportStatusCreated   = "created"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ResumeExport is the durable trace of one export attempt.
type ResumeExport struct {
	gorm.Model
	ResumeID  uint   `gorm:"index"`
	Resume    Resume `gorm:"constraint:OnDelete:CASCADE"`
	Format    string `gorm:"size:16;default:'pdf'"`
	FilePath  string `gorm:"size:512"`
	Version   int    `gorm:"default:1"`
	Status    string `gorm:"size:32;default:'created'"`
	ObjectKey string `gorm:"size:512"`
}

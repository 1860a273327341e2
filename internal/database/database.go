package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobvault/internal/config"
)

// InitDatabase opens the PostgreSQL connection from config and returns a GORM handle.
// The handle is constructed here and passed to every consumer explicitly; there
// is no package-level singleton.
func InitDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap db: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// AllModels lists every persisted type for AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&Job{},
		&ProfessionalHistory{},
		&WorkExperience{},
		&Education{},
		&Project{},
		&Skill{},
		&Certification{},
		&Achievement{},
		&AchievementMetric{},
		&SkillContext{},
		&Resume{},
		&ResumeSection{},
		&ResumeItem{},
		&ResumeExport{},
	}
}

package models

import "time"

type ImportJob struct {
	ID                string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SourcePath        string    `gorm:"type:text;not null"`
	ColumnMapping     StringMap `gorm:"type:jsonb;not null"`
	DuplicateStrategy string    `gorm:"type:text;not null"`
	Status            string    `gorm:"type:text;not null"`

	TotalRows     int64 `gorm:"not null;default:0"`
	ProcessedRows int64 `gorm:"not null;default:0"`
	Percent       int   `gorm:"not null;default:0"`
	SuccessCount  int64 `gorm:"not null;default:0"`
	SkippedCount  int64 `gorm:"not null;default:0"`
	ErrorCount    int64 `gorm:"not null;default:0"`

	RowErrors     RowErrorList `gorm:"type:jsonb;not null;default:'[]'"`
	ErrorFilePath *string      `gorm:"type:text"`

	Attempts     int     `gorm:"not null;default:0"`
	MaxAttempts  int     `gorm:"not null;default:4"`
	ErrorMessage *string `gorm:"type:text"`

	AvailableAt    *time.Time
	HeartbeatAt    *time.Time
	LeaseExpiresAt *time.Time
	StartedAt      *time.Time
	FinishedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

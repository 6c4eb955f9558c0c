package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
	"github.com/talentbase/candidate-import/internal/infrastructure/db/models"
)

// The attempt budget counts executions: the initial run plus 3 retries.
const defaultMaxAttempts = 4

// ImportJobRepository persists import jobs and doubles as the work queue:
// workers claim queued jobs under a lease, requeued jobs become visible
// again after retryDelay.
type ImportJobRepository struct {
	db         *gorm.DB
	retryDelay time.Duration
}

func NewImportJobRepository(db *gorm.DB, retryDelay time.Duration) *ImportJobRepository {
	if retryDelay <= 0 {
		retryDelay = time.Minute
	}
	return &ImportJobRepository{db: db, retryDelay: retryDelay}
}

func (r *ImportJobRepository) Enqueue(ctx context.Context, sourcePath string, mapping map[string]string, strategy domain.DuplicateStrategy, totalRows int64) (string, error) {
	job := models.ImportJob{
		SourcePath:        sourcePath,
		ColumnMapping:     models.StringMap(mapping),
		DuplicateStrategy: string(strategy),
		Status:            string(domain.JobQueued),
		TotalRows:         totalRows,
		MaxAttempts:       defaultMaxAttempts,
	}

	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		return "", fmt.Errorf("create import job: %w", err)
	}

	return job.ID, nil
}

// ClaimNext picks the oldest runnable job and leases it to the caller.
// Runnable means queued and past its available_at, or running with an
// expired lease (a worker died mid-job).
func (r *ImportJobRepository) ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error) {
	var claimed *domain.ImportJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var row models.ImportJob
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("(status = ? AND (available_at IS NULL OR available_at <= ?)) OR (status = ? AND lease_expires_at < ?)",
				string(domain.JobQueued), now, string(domain.JobRunning), now).
			Order("created_at").
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("select claimable job: %w", err)
		}

		expires := now.Add(leaseDuration)
		updates := map[string]any{
			"status":           string(domain.JobRunning),
			"attempts":         row.Attempts + 1,
			"heartbeat_at":     now,
			"lease_expires_at": expires,
			"updated_at":       now,
		}
		if row.StartedAt == nil {
			updates["started_at"] = now
		}
		if err := tx.Model(&models.ImportJob{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("lease job: %w", err)
		}

		claimed = &domain.ImportJob{
			ID:          row.ID,
			SourcePath:  row.SourcePath,
			Mapping:     map[string]string(row.ColumnMapping),
			Strategy:    domain.DuplicateStrategy(row.DuplicateStrategy),
			TotalRows:   row.TotalRows,
			Attempts:    row.Attempts + 1,
			MaxAttempts: row.MaxAttempts,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func (r *ImportJobRepository) Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"heartbeat_at":     now,
			"lease_expires_at": now.Add(leaseDuration),
			"updated_at":       now,
		}).Error
	if err != nil {
		return fmt.Errorf("heartbeat job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error {
	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"processed_rows": progress.ProcessedCount,
			"total_rows":     progress.TotalCount,
			"percent":        progress.Percent,
			"success_count":  progress.SuccessCount,
			"error_count":    progress.ErrorCount,
			"updated_at":     time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error {
	rowErrors := make(models.RowErrorList, 0, len(summary.Errors))
	for _, rowErr := range summary.Errors {
		rowErrors = append(rowErrors, models.RowErrorRecord{
			Row:     rowErr.Row,
			Name:    rowErr.Name,
			Email:   rowErr.Email,
			Message: rowErr.Message,
		})
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"status":         string(domain.JobSucceeded),
		"total_rows":     summary.TotalCount,
		"processed_rows": summary.TotalCount,
		"success_count":  summary.SuccessCount,
		"skipped_count":  summary.SkippedCount,
		"error_count":    int64(len(summary.Errors)),
		"row_errors":     rowErrors,
		"finished_at":    now,
		"updated_at":     now,
	}
	if summary.ErrorFilePath != "" {
		updates["error_file_path"] = summary.ErrorFilePath
	}

	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) Requeue(ctx context.Context, jobID string, reason string) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":           string(domain.JobQueued),
			"error_message":    reason,
			"available_at":     now.Add(r.retryDelay),
			"lease_expires_at": nil,
			"heartbeat_at":     nil,
			"updated_at":       now,
		}).Error
	if err != nil {
		return fmt.Errorf("requeue job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) Fail(ctx context.Context, jobID string, reason string) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":        string(domain.JobFailed),
			"error_message": reason,
			"finished_at":   now,
			"updated_at":    now,
		}).Error
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) GetByID(ctx context.Context, jobID string) (domain.ImportJobStatus, error) {
	var row models.ImportJob
	err := r.db.WithContext(ctx).First(&row, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ImportJobStatus{}, domain.ErrImportJobNotFound
		}
		return domain.ImportJobStatus{}, fmt.Errorf("get import job: %w", err)
	}

	status := domain.ImportJobStatus{
		ID:    row.ID,
		State: domain.JobState(row.Status),
		Progress: domain.ImportProgress{
			ProcessedCount: row.ProcessedRows,
			TotalCount:     row.TotalRows,
			Percent:        row.Percent,
			SuccessCount:   row.SuccessCount,
			ErrorCount:     row.ErrorCount,
		},
		Summary: domain.ImportSummary{
			TotalCount:   row.TotalRows,
			SuccessCount: row.SuccessCount,
			SkippedCount: row.SkippedCount,
		},
	}
	for _, rowErr := range row.RowErrors {
		status.Summary.Errors = append(status.Summary.Errors, domain.RowError{
			Row:     rowErr.Row,
			Name:    rowErr.Name,
			Email:   rowErr.Email,
			Message: rowErr.Message,
		})
	}
	if row.ErrorFilePath != nil {
		status.Summary.ErrorFilePath = *row.ErrorFilePath
	}
	if row.ErrorMessage != nil {
		status.ErrorMessage = *row.ErrorMessage
	}

	return status, nil
}

package candidate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

type importWorkerJobRepo interface {
	ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error)
	Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error
	UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error
	Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error
	Requeue(ctx context.Context, jobID string, reason string) error
	Fail(ctx context.Context, jobID string, reason string) error
}

type rowHandler interface {
	ProcessRow(ctx context.Context, row map[string]string, mapping map[string]string, strategy domain.DuplicateStrategy) RowResult
}

type errorLogStore interface {
	uploadStore
	WriteErrorLog(ctx context.Context, jobID string, rowErrors []domain.RowError) (string, error)
}

type ImportWorkerConfig struct {
	Workers           int
	BatchSize         int
	PollInterval      time.Duration
	LeaseDuration     time.Duration
	HeartbeatInterval time.Duration
}

// ImportWorker drives queued import jobs through the row processor, one row
// at a time in file order. Batches exist for logging granularity only; a
// row failure never stops the run, while a pipeline failure (unreadable
// file, broken CSV framing) requeues the whole job until MaxAttempts.
type ImportWorker struct {
	repo      importWorkerJobRepo
	store     errorLogStore
	processor rowHandler
	cfg       ImportWorkerConfig
	log       *logrus.Logger

	once sync.Once
}

func NewImportWorker(repo importWorkerJobRepo, store errorLogStore, processor rowHandler, log *logrus.Logger, cfg ImportWorkerConfig) *ImportWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.LeaseDuration <= 0 {
		cfg.LeaseDuration = 60 * time.Second
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = cfg.LeaseDuration / 2
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &ImportWorker{
		repo:      repo,
		store:     store,
		processor: processor,
		cfg:       cfg,
		log:       log,
	}
}

func (w *ImportWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			go w.workerLoop(ctx)
		}
	})
}

func (w *ImportWorker) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.repo.ClaimNext(ctx, w.cfg.LeaseDuration)
		if err != nil {
			w.log.WithError(err).Error("claim next import job failed")
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if job == nil {
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if err := w.ProcessJob(ctx, *job); err != nil {
			w.log.WithField("job_id", job.ID).WithError(err).Error("process import job failed")
		}
	}
}

// ProcessJob runs one claimed job to completion.
func (w *ImportWorker) ProcessJob(ctx context.Context, job domain.ImportJob) error {
	jobLog := w.log.WithField("job_id", job.ID)
	jobLog.WithField("source", job.SourcePath).Info("starting csv import")

	reader, err := w.store.Open(ctx, job.SourcePath)
	if err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("open import source: %w", err))
	}
	defer reader.Close()

	rows, err := newRowReader(reader)
	if err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("read csv header: %w", err))
	}

	ticker := time.NewTicker(w.cfg.HeartbeatInterval)
	defer ticker.Stop()

	summary := domain.ImportSummary{TotalCount: job.TotalRows}
	var processed int64
	batchStart := int64(0)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.repo.Heartbeat(ctx, job.ID, w.cfg.LeaseDuration); err != nil {
				return w.onProcessingError(ctx, job, fmt.Errorf("heartbeat: %w", err))
			}
		default:
		}

		row, err := rows.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return w.onProcessingError(ctx, job, fmt.Errorf("read row %d: %w", processed+2, err))
		}

		result := w.processor.ProcessRow(ctx, row, job.Mapping, job.Strategy)
		processed++

		switch result.Outcome {
		case RowCreated, RowUpdated:
			summary.SuccessCount++
		case RowSkipped:
			summary.SkippedCount++
			summary.Errors = append(summary.Errors, rowErrorFor(row, job.Mapping, processed, result.Message))
		default:
			summary.Errors = append(summary.Errors, rowErrorFor(row, job.Mapping, processed, result.Message))
		}

		if progressDue(processed, summary.TotalCount) {
			if err := w.repo.UpdateProgress(ctx, job.ID, snapshot(processed, summary)); err != nil {
				return w.onProcessingError(ctx, job, fmt.Errorf("update progress: %w", err))
			}
		}

		if processed%int64(w.cfg.BatchSize) == 0 {
			jobLog.WithFields(logrus.Fields{
				"batch_start": batchStart,
				"batch_end":   processed,
				"success":     summary.SuccessCount,
				"errors":      len(summary.Errors),
			}).Info("completed batch")
			batchStart = processed
		}
	}

	// TotalCount announced at trigger time may drift from what the file
	// actually held; the processed count is authoritative.
	summary.TotalCount = processed

	if len(summary.Errors) > 0 {
		path, err := w.store.WriteErrorLog(ctx, job.ID, summary.Errors)
		if err != nil {
			return w.onProcessingError(ctx, job, fmt.Errorf("write error log: %w", err))
		}
		summary.ErrorFilePath = path
		jobLog.WithField("error_file", path).Info("error log created")
	}

	if err := w.store.Remove(ctx, job.SourcePath); err != nil {
		jobLog.WithError(err).Warn("failed to clean up source file")
	}

	if err := w.repo.UpdateProgress(ctx, job.ID, snapshot(processed, summary)); err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("update final progress: %w", err))
	}

	if err := w.repo.Complete(ctx, job.ID, summary); err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("complete job: %w", err))
	}

	jobLog.WithFields(logrus.Fields{
		"total":   summary.TotalCount,
		"success": summary.SuccessCount,
		"skipped": summary.SkippedCount,
		"errors":  len(summary.Errors),
	}).Info("csv import completed")

	return nil
}

func (w *ImportWorker) onProcessingError(ctx context.Context, job domain.ImportJob, err error) error {
	reason := truncateReason(err.Error())
	if job.Attempts < job.MaxAttempts {
		if requeueErr := w.repo.Requeue(ctx, job.ID, reason); requeueErr != nil {
			return fmt.Errorf("%v; requeue failed: %w", err, requeueErr)
		}
		return err
	}

	if failErr := w.repo.Fail(ctx, job.ID, reason); failErr != nil {
		return fmt.Errorf("%v; fail update failed: %w", err, failErr)
	}
	return err
}

// progressDue reports whether a snapshot should be published: after every
// 10 rows, or whenever processing crosses another 10% of the total.
func progressDue(processed, total int64) bool {
	if processed%10 == 0 {
		return true
	}
	step := total / 10
	if step < 1 {
		step = 1
	}
	return processed%step == 0
}

func snapshot(processed int64, summary domain.ImportSummary) domain.ImportProgress {
	progress := domain.ImportProgress{
		ProcessedCount: processed,
		TotalCount:     summary.TotalCount,
		SuccessCount:   summary.SuccessCount,
		ErrorCount:     int64(len(summary.Errors)),
	}
	if summary.TotalCount > 0 {
		progress.Percent = int(processed * 100 / summary.TotalCount)
	}
	return progress
}

// rowErrorFor labels a failed row with its line number and whatever name
// and email the row carried, so the error report is actionable.
func rowErrorFor(row map[string]string, mapping map[string]string, processed int64, message string) domain.RowError {
	return domain.RowError{
		Row:     processed + 1, // header occupies line 1
		Name:    ExtractMappedValue(row, mapping, domain.FieldFullName),
		Email:   ExtractMappedValue(row, mapping, domain.FieldEmail),
		Message: message,
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}

package repository_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
	"github.com/talentbase/candidate-import/internal/infrastructure/repository"
)

const importJobsSchema = `
    CREATE TABLE IF NOT EXISTS import_jobs (
      id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
      source_path TEXT NOT NULL,
      column_mapping JSONB NOT NULL,
      duplicate_strategy TEXT NOT NULL,
      status TEXT NOT NULL,
      total_rows BIGINT NOT NULL DEFAULT 0,
      processed_rows BIGINT NOT NULL DEFAULT 0,
      percent INT NOT NULL DEFAULT 0,
      success_count BIGINT NOT NULL DEFAULT 0,
      skipped_count BIGINT NOT NULL DEFAULT 0,
      error_count BIGINT NOT NULL DEFAULT 0,
      row_errors JSONB NOT NULL DEFAULT '[]',
      error_file_path TEXT,
      attempts INT NOT NULL DEFAULT 0,
      max_attempts INT NOT NULL DEFAULT 4,
      error_message TEXT,
      available_at TIMESTAMPTZ,
      heartbeat_at TIMESTAMPTZ,
      lease_expires_at TIMESTAMPTZ,
      started_at TIMESTAMPTZ,
      finished_at TIMESTAMPTZ,
      created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
      updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
      CHECK (status IN ('queued','running','succeeded','failed'))
    );
    `

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	return db
}

func setupImportJobs(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := db.Exec(importJobsSchema).Error; err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := db.Exec("DELETE FROM import_jobs").Error; err != nil {
		t.Fatalf("failed to cleanup import_jobs: %v", err)
	}
}

func TestImportJobRepositoryEnqueueIntegration(t *testing.T) {
	db := openTestDB(t)
	setupImportJobs(t, db)

	repo := repository.NewImportJobRepository(db, time.Minute)

	mapping := map[string]string{"Nome": "full_name", "Email": "email"}
	jobID, err := repo.Enqueue(context.Background(), "upload-1", mapping, domain.DuplicateSkip, 10)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if strings.TrimSpace(jobID) == "" {
		t.Fatal("expected non-empty job id")
	}

	status, err := repo.GetByID(context.Background(), jobID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if status.State != domain.JobQueued {
		t.Fatalf("unexpected state: %s", status.State)
	}
	if status.Progress.TotalCount != 10 {
		t.Fatalf("unexpected total: %d", status.Progress.TotalCount)
	}
}

func TestImportJobRepositoryClaimAndLifecycleIntegration(t *testing.T) {
	db := openTestDB(t)
	setupImportJobs(t, db)

	repo := repository.NewImportJobRepository(db, time.Minute)
	ctx := context.Background()

	mapping := map[string]string{"Nome": "full_name", "Email": "email"}
	jobID, err := repo.Enqueue(ctx, "upload-1", mapping, domain.DuplicateUpdate, 3)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	claimed, err := repo.ClaimNext(ctx, 30*time.Second)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if claimed == nil {
		t.Fatal("expected claimed job")
	}
	if claimed.ID != jobID {
		t.Fatalf("unexpected job id: %s", claimed.ID)
	}
	if claimed.Strategy != domain.DuplicateUpdate {
		t.Fatalf("unexpected strategy: %s", claimed.Strategy)
	}
	if claimed.Mapping["Nome"] != "full_name" {
		t.Fatalf("unexpected mapping: %v", claimed.Mapping)
	}
	if claimed.Attempts != 1 {
		t.Fatalf("unexpected attempts: %d", claimed.Attempts)
	}

	// Job is leased, a second claim finds nothing.
	again, err := repo.ClaimNext(ctx, 30*time.Second)
	if err != nil {
		t.Fatalf("second claim failed: %v", err)
	}
	if again != nil {
		t.Fatalf("expected no claimable job, got %s", again.ID)
	}

	if err := repo.Heartbeat(ctx, claimed.ID, 30*time.Second); err != nil {
		t.Fatalf("heartbeat failed: %v", err)
	}

	if err := repo.UpdateProgress(ctx, claimed.ID, domain.ImportProgress{
		ProcessedCount: 2,
		TotalCount:     3,
		Percent:        66,
		SuccessCount:   2,
	}); err != nil {
		t.Fatalf("update progress failed: %v", err)
	}

	summary := domain.ImportSummary{
		TotalCount:   3,
		SuccessCount: 2,
		SkippedCount: 0,
		Errors: []domain.RowError{
			{Row: 4, Name: "Carla", Message: "Email obrigatório"},
		},
		ErrorFilePath: "/tmp/import_errors_x.csv",
	}
	if err := repo.Complete(ctx, claimed.ID, summary); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	status, err := repo.GetByID(ctx, claimed.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if status.State != domain.JobSucceeded {
		t.Fatalf("unexpected state: %s", status.State)
	}
	if status.Summary.SuccessCount != 2 {
		t.Fatalf("unexpected success count: %d", status.Summary.SuccessCount)
	}
	if len(status.Summary.Errors) != 1 || status.Summary.Errors[0].Row != 4 {
		t.Fatalf("unexpected errors: %+v", status.Summary.Errors)
	}
	if status.Summary.ErrorFilePath == "" {
		t.Fatal("expected error file path")
	}
}

func TestImportJobRepositoryRequeueDelayIntegration(t *testing.T) {
	db := openTestDB(t)
	setupImportJobs(t, db)

	repo := repository.NewImportJobRepository(db, time.Hour)
	ctx := context.Background()

	mapping := map[string]string{"Email": "email", "Nome": "full_name"}
	jobID, err := repo.Enqueue(ctx, "upload-1", mapping, domain.DuplicateSkip, 1)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	claimed, err := repo.ClaimNext(ctx, 30*time.Second)
	if err != nil || claimed == nil {
		t.Fatalf("claim failed: %v", err)
	}

	if err := repo.Requeue(ctx, jobID, "open import source: boom"); err != nil {
		t.Fatalf("requeue failed: %v", err)
	}

	// Requeued with an hour of delay: not claimable yet.
	again, err := repo.ClaimNext(ctx, 30*time.Second)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if again != nil {
		t.Fatalf("expected delayed job to be unclaimable, got %s", again.ID)
	}

	if err := repo.Fail(ctx, jobID, "retries exhausted"); err != nil {
		t.Fatalf("fail failed: %v", err)
	}

	status, err := repo.GetByID(ctx, jobID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if status.State != domain.JobFailed {
		t.Fatalf("unexpected state: %s", status.State)
	}
	if status.ErrorMessage != "retries exhausted" {
		t.Fatalf("unexpected error message: %q", status.ErrorMessage)
	}
}

package candidate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

type StartCSVImportInput struct {
	UploadID          string
	ColumnMapping     map[string]string
	DuplicateStrategy string
}

type StartCSVImportOutput struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type StartCSVImport interface {
	Execute(ctx context.Context, in StartCSVImportInput) (StartCSVImportOutput, error)
}

type importJobEnqueuer interface {
	Enqueue(ctx context.Context, sourcePath string, mapping map[string]string, strategy domain.DuplicateStrategy, totalRows int64) (string, error)
}

type startCSVImport struct {
	store   uploadStore
	jobRepo importJobEnqueuer
}

func NewStartCSVImport(store uploadStore, jobRepo importJobEnqueuer) StartCSVImport {
	return &startCSVImport{store: store, jobRepo: jobRepo}
}

func (uc *startCSVImport) Execute(ctx context.Context, in StartCSVImportInput) (StartCSVImportOutput, error) {
	strategy, err := domain.ParseDuplicateStrategy(in.DuplicateStrategy)
	if err != nil {
		return StartCSVImportOutput{}, err
	}

	if strings.TrimSpace(in.UploadID) == "" {
		return StartCSVImportOutput{}, ErrUploadNotFound
	}

	for col, target := range in.ColumnMapping {
		if !domain.IsTarget(target) {
			return StartCSVImportOutput{}, fmt.Errorf("%w: column %q mapped to %q", ErrUnknownTarget, col, target)
		}
	}

	if missing := ValidateRequiredFields(in.ColumnMapping); len(missing) > 0 {
		return StartCSVImportOutput{}, &MissingFieldsError{Fields: missing}
	}

	reader, err := uc.store.Open(ctx, in.UploadID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StartCSVImportOutput{}, ErrUploadNotFound
		}
		return StartCSVImportOutput{}, fmt.Errorf("open upload: %w", err)
	}
	defer reader.Close()

	totalRows, err := CountRows(reader)
	if err != nil {
		return StartCSVImportOutput{}, fmt.Errorf("%w: %v", ErrUnparsableUpload, err)
	}

	jobID, err := uc.jobRepo.Enqueue(ctx, in.UploadID, in.ColumnMapping, strategy, totalRows)
	if err != nil {
		return StartCSVImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	return StartCSVImportOutput{
		JobID:  jobID,
		Status: string(domain.JobQueued),
	}, nil
}

package candidate

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

type GetImportStatusInput struct {
	JobID string
}

type ImportProgressOutput struct {
	Current int64 `json:"current"`
	Total   int64 `json:"total"`
	Percent int   `json:"percent"`
	Success int64 `json:"success"`
	Errors  int64 `json:"errors"`
}

type GetImportStatusOutput struct {
	JobID    string                `json:"job_id"`
	Status   string                `json:"status"`
	Progress *ImportProgressOutput `json:"progress,omitempty"`
	Error    string                `json:"error,omitempty"`
}

type GetImportStatus interface {
	Execute(ctx context.Context, in GetImportStatusInput) (GetImportStatusOutput, error)
}

type importJobReader interface {
	GetByID(ctx context.Context, jobID string) (domain.ImportJobStatus, error)
}

type getImportStatus struct {
	repo importJobReader
}

func NewGetImportStatus(repo importJobReader) GetImportStatus {
	return &getImportStatus{repo: repo}
}

func (uc *getImportStatus) Execute(ctx context.Context, in GetImportStatusInput) (GetImportStatusOutput, error) {
	if !uuidPattern.MatchString(in.JobID) {
		return GetImportStatusOutput{}, ErrInvalidJobID
	}

	status, err := uc.repo.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return GetImportStatusOutput{}, ErrImportJobNotFound
		}
		return GetImportStatusOutput{}, fmt.Errorf("%w: %v", ErrGetImportJob, err)
	}

	out := GetImportStatusOutput{
		JobID:  status.ID,
		Status: string(status.State),
	}

	switch status.State {
	case domain.JobRunning, domain.JobSucceeded:
		out.Progress = &ImportProgressOutput{
			Current: status.Progress.ProcessedCount,
			Total:   status.Progress.TotalCount,
			Percent: status.Progress.Percent,
			Success: status.Progress.SuccessCount,
			Errors:  status.Progress.ErrorCount,
		}
	case domain.JobFailed:
		out.Error = status.ErrorMessage
	}

	return out, nil
}

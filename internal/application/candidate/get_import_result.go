package candidate

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

type GetImportResultInput struct {
	JobID string
}

type RowErrorOutput struct {
	Row     int64  `json:"row"`
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Message string `json:"error"`
}

type GetImportResultOutput struct {
	JobID        string           `json:"job_id"`
	Status       string           `json:"status"`
	Total        int64            `json:"total"`
	Success      int64            `json:"success"`
	Skipped      int64            `json:"skipped"`
	Errors       []RowErrorOutput `json:"errors"`
	HasErrorFile bool             `json:"has_error_file"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

type GetImportResult interface {
	Execute(ctx context.Context, in GetImportResultInput) (GetImportResultOutput, error)
}

type getImportResult struct {
	repo importJobReader
}

func NewGetImportResult(repo importJobReader) GetImportResult {
	return &getImportResult{repo: repo}
}

func (uc *getImportResult) Execute(ctx context.Context, in GetImportResultInput) (GetImportResultOutput, error) {
	if !uuidPattern.MatchString(in.JobID) {
		return GetImportResultOutput{}, ErrInvalidJobID
	}

	status, err := uc.repo.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return GetImportResultOutput{}, ErrImportJobNotFound
		}
		return GetImportResultOutput{}, fmt.Errorf("%w: %v", ErrGetImportJob, err)
	}

	if status.State != domain.JobSucceeded && status.State != domain.JobFailed {
		return GetImportResultOutput{}, ErrImportNotFinished
	}

	rowErrors := make([]RowErrorOutput, 0, len(status.Summary.Errors))
	for _, rowErr := range status.Summary.Errors {
		rowErrors = append(rowErrors, RowErrorOutput{
			Row:     rowErr.Row,
			Name:    rowErr.Name,
			Email:   rowErr.Email,
			Message: rowErr.Message,
		})
	}

	return GetImportResultOutput{
		JobID:        status.ID,
		Status:       string(status.State),
		Total:        status.Summary.TotalCount,
		Success:      status.Summary.SuccessCount,
		Skipped:      status.Summary.SkippedCount,
		Errors:       rowErrors,
		HasErrorFile: status.Summary.ErrorFilePath != "",
		ErrorMessage: status.ErrorMessage,
	}, nil
}

type GetImportErrorFileInput struct {
	JobID string
}

type GetImportErrorFileOutput struct {
	Path string
}

// GetImportErrorFile resolves the path of the error-log CSV a finished
// import produced, for download.
type GetImportErrorFile interface {
	Execute(ctx context.Context, in GetImportErrorFileInput) (GetImportErrorFileOutput, error)
}

type getImportErrorFile struct {
	repo importJobReader
}

func NewGetImportErrorFile(repo importJobReader) GetImportErrorFile {
	return &getImportErrorFile{repo: repo}
}

func (uc *getImportErrorFile) Execute(ctx context.Context, in GetImportErrorFileInput) (GetImportErrorFileOutput, error) {
	if !uuidPattern.MatchString(in.JobID) {
		return GetImportErrorFileOutput{}, ErrInvalidJobID
	}

	status, err := uc.repo.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return GetImportErrorFileOutput{}, ErrImportJobNotFound
		}
		return GetImportErrorFileOutput{}, fmt.Errorf("%w: %v", ErrGetImportJob, err)
	}

	if status.State != domain.JobSucceeded && status.State != domain.JobFailed {
		return GetImportErrorFileOutput{}, ErrImportNotFinished
	}
	if status.Summary.ErrorFilePath == "" {
		return GetImportErrorFileOutput{}, ErrNoErrorFile
	}

	return GetImportErrorFileOutput{Path: status.Summary.ErrorFilePath}, nil
}

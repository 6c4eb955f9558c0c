package candidate

import "fmt"

// DuplicateStrategy is the policy applied to every row whose email already
// exists, chosen once per import run.
type DuplicateStrategy string

const (
	DuplicateSkip   DuplicateStrategy = "skip"
	DuplicateUpdate DuplicateStrategy = "update"
	DuplicateError  DuplicateStrategy = "error"
)

func ParseDuplicateStrategy(raw string) (DuplicateStrategy, error) {
	switch DuplicateStrategy(raw) {
	case DuplicateSkip, DuplicateUpdate, DuplicateError:
		return DuplicateStrategy(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDuplicateStrategy, raw)
	}
}

// JobState is the lifecycle state of an import job.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

type ImportJob struct {
	ID          string
	SourcePath  string
	Mapping     map[string]string
	Strategy    DuplicateStrategy
	TotalRows   int64
	Attempts    int
	MaxAttempts int
}

// ImportProgress is the snapshot published while a job is running.
type ImportProgress struct {
	ProcessedCount int64
	TotalCount     int64
	Percent        int
	SuccessCount   int64
	ErrorCount     int64
}

// RowError identifies one failed or skipped row. Row is the line number in
// the source file (header is line 1, the first data row is line 2).
type RowError struct {
	Row     int64
	Name    string
	Email   string
	Message string
}

// ImportSummary is the final outcome of one import run. Errors preserves
// source-file order.
type ImportSummary struct {
	TotalCount    int64
	SuccessCount  int64
	SkippedCount  int64
	Errors        []RowError
	ErrorFilePath string
}

// ImportJobStatus is the pollable view of a job: its state, the latest
// progress snapshot and, once finished, the summary or failure reason.
type ImportJobStatus struct {
	ID           string
	State        JobState
	Progress     ImportProgress
	Summary      ImportSummary
	ErrorMessage string
}

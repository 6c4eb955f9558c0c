package candidate

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

// ErrInvalidDuplicateStrategy is re-exported so HTTP handlers only depend
// on the application package.
var ErrInvalidDuplicateStrategy = domain.ErrInvalidDuplicateStrategy

var (
	ErrInvalidUploadType  = errors.New("invalid upload type")
	ErrEmptyUpload        = errors.New("empty upload")
	ErrUploadTooLarge     = errors.New("upload too large")
	ErrUnparsableUpload   = errors.New("unparsable upload")
	ErrUploadNotFound     = errors.New("upload not found")
	ErrUnknownTarget      = errors.New("unknown mapping target")
	ErrEnqueueImportJob   = errors.New("failed to enqueue import job")
	ErrInvalidJobID       = errors.New("invalid job id")
	ErrImportJobNotFound  = errors.New("import job not found")
	ErrGetImportJob       = errors.New("failed to get import job")
	ErrImportNotFinished  = errors.New("import not finished")
	ErrNoErrorFile        = errors.New("no error file for import")
	ErrInvalidCandidateID = errors.New("invalid candidate id")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrGetCandidateByID   = errors.New("failed to get candidate by id")
)

// MissingFieldsError reports which required targets the confirmed mapping
// does not cover. Matched with errors.As at the HTTP layer so the missing
// list can be returned to the caller.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

package candidate

import "errors"

var (
	ErrCandidateNotFound        = errors.New("candidate not found")
	ErrImportJobNotFound        = errors.New("import job not found")
	ErrInvalidDuplicateStrategy = errors.New("invalid duplicate strategy")
)

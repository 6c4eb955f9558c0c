package candidate

import "context"

// CandidateStore is the import pipeline's only write dependency: find an
// identity by email, create identity + profile, or partially update an
// existing profile. It never deletes or merges identities.
type CandidateStore interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
	Create(ctx context.Context, email string, fields map[string]Value) (string, error)
	UpdateFields(ctx context.Context, id string, fields map[string]Value) error
}

type ImportJobRepository interface {
	Enqueue(ctx context.Context, sourcePath string, mapping map[string]string, strategy DuplicateStrategy, totalRows int64) (string, error)
	GetByID(ctx context.Context, jobID string) (ImportJobStatus, error)
}

type CandidateQueryRepository interface {
	GetByID(ctx context.Context, candidateID string) (*Candidate, error)
}

package candidate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

type RowOutcome string

const (
	RowCreated RowOutcome = "created"
	RowUpdated RowOutcome = "updated"
	RowSkipped RowOutcome = "skipped"
	RowErrored RowOutcome = "errored"
)

// RowResult is the explicit per-row outcome. Message is set for skipped and
// errored rows and feeds the import's error list; a skipped duplicate is
// recorded there too, on purpose, so the report lists every row that was
// not written.
type RowResult struct {
	Outcome     RowOutcome
	CandidateID string
	Message     string
}

type rowCandidateStore interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
	Create(ctx context.Context, email string, fields map[string]domain.Value) (string, error)
	UpdateFields(ctx context.Context, id string, fields map[string]domain.Value) error
}

// RowProcessor resolves one raw row against the candidate store under the
// chosen duplicate strategy. It never returns an error: anything that goes
// wrong for a row becomes an errored RowResult so the batch keeps going.
type RowProcessor struct {
	store rowCandidateStore
}

func NewRowProcessor(store rowCandidateStore) *RowProcessor {
	return &RowProcessor{store: store}
}

func (p *RowProcessor) ProcessRow(ctx context.Context, row map[string]string, mapping map[string]string, strategy domain.DuplicateStrategy) RowResult {
	email := ExtractMappedValue(row, mapping, domain.FieldEmail)
	if email == "" {
		return RowResult{Outcome: RowErrored, Message: "Email obrigatório"}
	}

	// The lookup is exact on the stored value; no case or whitespace
	// normalization is applied to the identity key.
	existingID, err := p.store.FindIDByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrCandidateNotFound) {
		return RowResult{Outcome: RowErrored, Message: err.Error()}
	}

	if errors.Is(err, domain.ErrCandidateNotFound) {
		id, createErr := p.store.Create(ctx, email, buildProfileFields(row, mapping))
		if createErr != nil {
			return RowResult{Outcome: RowErrored, Message: createErr.Error()}
		}
		return RowResult{Outcome: RowCreated, CandidateID: id}
	}

	switch strategy {
	case domain.DuplicateSkip:
		return RowResult{
			Outcome:     RowSkipped,
			CandidateID: existingID,
			Message:     fmt.Sprintf("Email já cadastrado: %s", email),
		}
	case domain.DuplicateError:
		return RowResult{
			Outcome:     RowErrored,
			CandidateID: existingID,
			Message:     fmt.Sprintf("Duplicata encontrada: %s", email),
		}
	default:
		if err := p.store.UpdateFields(ctx, existingID, buildProfileFields(row, mapping)); err != nil {
			return RowResult{Outcome: RowErrored, Message: err.Error()}
		}
		return RowResult{Outcome: RowUpdated, CandidateID: existingID}
	}
}

// ExtractMappedValue returns the trimmed cell of a source column mapped to
// the given target field, or "" if no mapped column holds a value. When
// several columns map to the same target (Email/E-mail), the first
// non-empty cell in lexical column order wins, so the pick is stable
// across runs.
func ExtractMappedValue(row map[string]string, mapping map[string]string, target string) string {
	var columns []string
	for col, field := range mapping {
		if field == target {
			columns = append(columns, col)
		}
	}
	sort.Strings(columns)

	for _, col := range columns {
		if value := strings.TrimSpace(row[col]); value != "" {
			return value
		}
	}
	return ""
}

// buildProfileFields coerces every mapped column except the identity
// column. Unmapped columns never make it into the write set, which is what
// keeps strategy=update partial.
func buildProfileFields(row map[string]string, mapping map[string]string) map[string]domain.Value {
	fields := make(map[string]domain.Value, len(mapping))
	for col, field := range mapping {
		if field == domain.FieldEmail {
			continue
		}
		fields[field] = CoerceField(field, row[col])
	}
	return fields
}

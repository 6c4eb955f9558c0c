package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

// CandidateStore is the pgx-backed write side of the import pipeline:
// find the identity by email, create identity + profile, or overwrite the
// mapped fields of an existing profile. Column names are whitelisted
// through the field vocabulary, never taken from the file.
type CandidateStore struct {
	pool *pgxpool.Pool
}

func NewCandidateStore(pool *pgxpool.Pool) *CandidateStore {
	return &CandidateStore{pool: pool}
}

func (s *CandidateStore) FindIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, "SELECT id FROM candidates WHERE email = $1", email).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrCandidateNotFound
		}
		return "", fmt.Errorf("find candidate by email: %w", err)
	}
	return id, nil
}

func (s *CandidateStore) Create(ctx context.Context, email string, fields map[string]domain.Value) (string, error) {
	columns := []string{"email"}
	args := []any{email}

	for _, field := range sortedFields(fields) {
		arg, err := sqlArg(fields[field])
		if err != nil {
			return "", err
		}
		columns = append(columns, field)
		args = append(args, arg)
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO candidates (%s, created_at, updated_at) VALUES (%s, NOW(), NOW()) RETURNING id",
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	var id string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("create candidate: %w", err)
	}
	return id, nil
}

func (s *CandidateStore) UpdateFields(ctx context.Context, id string, fields map[string]domain.Value) error {
	if len(fields) == 0 {
		return nil
	}

	assignments := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)

	for _, field := range sortedFields(fields) {
		arg, err := sqlArg(fields[field])
		if err != nil {
			return err
		}
		args = append(args, arg)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", field, len(args)))
	}
	assignments = append(assignments, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE candidates SET %s WHERE id = $%d",
		strings.Join(assignments, ", "),
		len(args),
	)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

// sortedFields filters the write set down to recognized profile fields and
// fixes the column order, keeping generated SQL deterministic.
func sortedFields(fields map[string]domain.Value) []string {
	names := make([]string, 0, len(fields))
	for field := range fields {
		if _, ok := domain.ProfileFields[field]; ok {
			names = append(names, field)
		}
	}
	sort.Strings(names)
	return names
}

func sqlArg(v domain.Value) (any, error) {
	switch v.Kind {
	case domain.FieldBool:
		return v.Bool, nil
	case domain.FieldCurrency:
		if !v.Present {
			return nil, nil
		}
		return v.Amount.String(), nil
	case domain.FieldDate:
		if !v.Present {
			return nil, nil
		}
		return v.Date, nil
	case domain.FieldList:
		encoded, err := json.Marshal(v.List)
		if err != nil {
			return nil, fmt.Errorf("encode list field: %w", err)
		}
		return string(encoded), nil
	default:
		return v.Text, nil
	}
}

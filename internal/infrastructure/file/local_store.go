package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

// LocalStore keeps uploaded CSV files and generated error logs in a shared
// temporary directory, keyed by generated identifiers. No two import runs
// share a file, so no locking is needed.
type LocalStore struct {
	BaseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &LocalStore{BaseDir: baseDir}
}

func (s *LocalStore) uploadPath(uploadID string) string {
	return filepath.Join(s.BaseDir, filepath.Base(uploadID)+".csv")
}

// ErrorLogPath returns where the error log for a job lives, whether or not
// it exists yet.
func (s *LocalStore) ErrorLogPath(jobID string) string {
	return filepath.Join(s.BaseDir, fmt.Sprintf("import_errors_%s.csv", filepath.Base(jobID)))
}

func (s *LocalStore) Save(ctx context.Context, uploadID string, content io.Reader) error {
	_ = ctx

	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	dest, err := os.Create(s.uploadPath(uploadID))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, content); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, uploadID string) (io.ReadCloser, error) {
	_ = ctx

	f, err := os.Open(s.uploadPath(uploadID))
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", uploadID, err)
	}
	return f, nil
}

func (s *LocalStore) Remove(ctx context.Context, uploadID string) error {
	_ = ctx

	if err := os.Remove(s.uploadPath(uploadID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload %s: %w", uploadID, err)
	}
	return nil
}

// WriteErrorLog materializes the per-row error list of a finished import as
// a downloadable CSV (row, nome, email, error) and returns its path.
func (s *LocalStore) WriteErrorLog(ctx context.Context, jobID string, rowErrors []domain.RowError) (string, error) {
	_ = ctx

	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return "", fmt.Errorf("create error log dir: %w", err)
	}

	path := s.ErrorLogPath(jobID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create error log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"row", "nome", "email", "error"}); err != nil {
		return "", fmt.Errorf("write error log header: %w", err)
	}
	for _, rowErr := range rowErrors {
		record := []string{
			strconv.FormatInt(rowErr.Row, 10),
			rowErr.Name,
			rowErr.Email,
			rowErr.Message,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write error log row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush error log: %w", err)
	}
	return path, nil
}

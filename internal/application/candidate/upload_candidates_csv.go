package candidate

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type UploadCandidatesCSVInput struct {
	FileName string
	Size     int64
	Content  io.Reader
}

type UploadCandidatesCSVOutput struct {
	UploadID         string              `json:"upload_id"`
	Columns          []string            `json:"columns"`
	PreviewRows      []map[string]string `json:"preview_rows"`
	SuggestedMapping map[string]string   `json:"suggested_mapping"`
	TotalRows        int64               `json:"total_rows"`
}

type UploadCandidatesCSV interface {
	Execute(ctx context.Context, in UploadCandidatesCSVInput) (UploadCandidatesCSVOutput, error)
}

type uploadStore interface {
	Save(ctx context.Context, uploadID string, content io.Reader) error
	Open(ctx context.Context, uploadID string) (io.ReadCloser, error)
	Remove(ctx context.Context, uploadID string) error
}

type uploadCandidatesCSV struct {
	store    uploadStore
	maxBytes int64
}

func NewUploadCandidatesCSV(store uploadStore, maxBytes int64) UploadCandidatesCSV {
	return &uploadCandidatesCSV{store: store, maxBytes: maxBytes}
}

func (uc *uploadCandidatesCSV) Execute(ctx context.Context, in UploadCandidatesCSVInput) (UploadCandidatesCSVOutput, error) {
	if strings.ToLower(filepath.Ext(in.FileName)) != ".csv" {
		return UploadCandidatesCSVOutput{}, ErrInvalidUploadType
	}
	if in.Size <= 0 {
		return UploadCandidatesCSVOutput{}, ErrEmptyUpload
	}
	if uc.maxBytes > 0 && in.Size > uc.maxBytes {
		return UploadCandidatesCSVOutput{}, ErrUploadTooLarge
	}

	uploadID := uuid.NewString()
	if err := uc.store.Save(ctx, uploadID, in.Content); err != nil {
		return UploadCandidatesCSVOutput{}, fmt.Errorf("save upload: %w", err)
	}

	reader, err := uc.store.Open(ctx, uploadID)
	if err != nil {
		return UploadCandidatesCSVOutput{}, fmt.Errorf("reopen upload: %w", err)
	}
	defer reader.Close()

	preview, err := ParseUploadPreview(reader)
	if err != nil {
		_ = uc.store.Remove(ctx, uploadID)
		return UploadCandidatesCSVOutput{}, fmt.Errorf("%w: %v", ErrUnparsableUpload, err)
	}
	if preview.TotalRows == 0 {
		_ = uc.store.Remove(ctx, uploadID)
		return UploadCandidatesCSVOutput{}, ErrEmptyUpload
	}

	return UploadCandidatesCSVOutput{
		UploadID:         uploadID,
		Columns:          preview.Columns,
		PreviewRows:      preview.PreviewRows,
		SuggestedMapping: preview.SuggestedMapping,
		TotalRows:        preview.TotalRows,
	}, nil
}

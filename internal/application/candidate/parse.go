package candidate

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const previewRowCount = 5

// UploadPreview is the synchronous answer to a CSV upload: what the file
// contains and what mapping the dictionary suggests for it.
type UploadPreview struct {
	Columns          []string
	PreviewRows      []map[string]string
	SuggestedMapping map[string]string
	TotalRows        int64
}

func newCSVReader(r io.Reader) *csv.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	return cr
}

// rowReader streams data rows of a CSV file as raw column-name → cell maps,
// the untyped bag-of-strings stage that precedes coercion. Rows shorter
// than the header yield empty cells for the missing columns.
type rowReader struct {
	header []string
	reader *csv.Reader
}

func newRowReader(r io.Reader) (*rowReader, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return &rowReader{header: header, reader: cr}, nil
}

func (rr *rowReader) Columns() []string {
	return rr.header
}

// Next returns the next data row, or io.EOF when the file is exhausted.
func (rr *rowReader) Next() (map[string]string, error) {
	record, err := rr.reader.Read()
	if err != nil {
		return nil, err
	}

	row := make(map[string]string, len(rr.header))
	for i, col := range rr.header {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row, nil
}

// ParseUploadPreview reads the whole file once: header, the first few rows
// for preview, the suggested column mapping and the total data row count.
func ParseUploadPreview(r io.Reader) (UploadPreview, error) {
	rows, err := newRowReader(r)
	if err != nil {
		return UploadPreview{}, err
	}

	preview := UploadPreview{
		Columns:          rows.Columns(),
		PreviewRows:      []map[string]string{},
		SuggestedMapping: AutoDetectColumns(rows.Columns()),
	}

	for {
		row, err := rows.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return preview, nil
			}
			return UploadPreview{}, fmt.Errorf("read row %d: %w", preview.TotalRows+2, err)
		}

		if len(preview.PreviewRows) < previewRowCount {
			preview.PreviewRows = append(preview.PreviewRows, row)
		}
		preview.TotalRows++
	}
}

// CountRows counts the data rows of a CSV file, skipping the header.
func CountRows(r io.Reader) (int64, error) {
	rows, err := newRowReader(r)
	if err != nil {
		return 0, err
	}

	var total int64
	for {
		if _, err := rows.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return 0, fmt.Errorf("read row %d: %w", total+2, err)
		}
		total++
	}
}

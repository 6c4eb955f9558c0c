package candidate_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/talentbase/candidate-import/internal/application/candidate"
	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

type fakeEnqueuer struct {
	jobID       string
	returnErr   error
	called      bool
	gotSource   string
	gotMapping  map[string]string
	gotStrategy domain.DuplicateStrategy
	gotTotal    int64
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, sourcePath string, mapping map[string]string, strategy domain.DuplicateStrategy, totalRows int64) (string, error) {
	f.called = true
	f.gotSource = sourcePath
	f.gotMapping = mapping
	f.gotStrategy = strategy
	f.gotTotal = totalRows
	if f.returnErr != nil {
		return "", f.returnErr
	}
	return f.jobID, nil
}

func validStartInput() app.StartCSVImportInput {
	return app.StartCSVImportInput{
		UploadID: "upload-1",
		ColumnMapping: map[string]string{
			"Nome":  "full_name",
			"Email": "email",
		},
		DuplicateStrategy: "skip",
	}
}

func TestStartCSVImportSuccess(t *testing.T) {
	t.Parallel()

	store := newFakeUploadStore()
	store.files["upload-1"] = "Nome,Email\nAlice,alice@example.com\nBruno,bruno@example.com\n"
	enqueuer := &fakeEnqueuer{jobID: "job-1"}
	uc := app.NewStartCSVImport(store, enqueuer)

	out, err := uc.Execute(context.Background(), validStartInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.JobID != "job-1" {
		t.Fatalf("unexpected job id: %s", out.JobID)
	}
	if out.Status != "queued" {
		t.Fatalf("unexpected status: %s", out.Status)
	}
	if !enqueuer.called {
		t.Fatal("expected job to be enqueued")
	}
	if enqueuer.gotSource != "upload-1" {
		t.Fatalf("unexpected source: %s", enqueuer.gotSource)
	}
	if enqueuer.gotStrategy != domain.DuplicateSkip {
		t.Fatalf("unexpected strategy: %s", enqueuer.gotStrategy)
	}
	if enqueuer.gotTotal != 2 {
		t.Fatalf("expected total rows 2, got %d", enqueuer.gotTotal)
	}
}

func TestStartCSVImportMissingRequiredFields(t *testing.T) {
	t.Parallel()

	uc := app.NewStartCSVImport(newFakeUploadStore(), &fakeEnqueuer{})

	in := validStartInput()
	in.ColumnMapping = map[string]string{"Cidade": "city"}

	_, err := uc.Execute(context.Background(), in)
	var missing *app.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 2 {
		t.Fatalf("expected full_name and email missing, got %v", missing.Fields)
	}
}

func TestStartCSVImportUnknownTarget(t *testing.T) {
	t.Parallel()

	uc := app.NewStartCSVImport(newFakeUploadStore(), &fakeEnqueuer{})

	in := validStartInput()
	in.ColumnMapping["Extra"] = "shoe_size"

	_, err := uc.Execute(context.Background(), in)
	if !errors.Is(err, app.ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestStartCSVImportInvalidStrategy(t *testing.T) {
	t.Parallel()

	uc := app.NewStartCSVImport(newFakeUploadStore(), &fakeEnqueuer{})

	in := validStartInput()
	in.DuplicateStrategy = "merge"

	_, err := uc.Execute(context.Background(), in)
	if !errors.Is(err, app.ErrInvalidDuplicateStrategy) {
		t.Fatalf("expected ErrInvalidDuplicateStrategy, got %v", err)
	}
}

func TestStartCSVImportUploadNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewStartCSVImport(newFakeUploadStore(), &fakeEnqueuer{})

	_, err := uc.Execute(context.Background(), validStartInput())
	if !errors.Is(err, app.ErrUploadNotFound) {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}

func TestStartCSVImportEnqueueFailure(t *testing.T) {
	t.Parallel()

	store := newFakeUploadStore()
	store.files["upload-1"] = "Nome,Email\nAlice,alice@example.com\n"
	uc := app.NewStartCSVImport(store, &fakeEnqueuer{returnErr: errors.New("db down")})

	_, err := uc.Execute(context.Background(), validStartInput())
	if !errors.Is(err, app.ErrEnqueueImportJob) {
		t.Fatalf("expected ErrEnqueueImportJob, got %v", err)
	}
}

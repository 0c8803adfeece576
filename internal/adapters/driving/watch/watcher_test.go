package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
)

// recordingServices captures uploads and ingests across goroutines.
type recordingServices struct {
	mu       sync.Mutex
	uploads  []string
	ingested []string
}

var (
	_ driving.DocumentService = (*recordingServices)(nil)
	_ driving.Ingestor        = (*recordingServices)(nil)
)

func (r *recordingServices) Upload(_ context.Context, ownerID, filename string, _ []byte) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, filename)
	return &domain.Document{ID: "doc-" + filename, OwnerID: ownerID, Filename: filename}, nil
}

func (r *recordingServices) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (r *recordingServices) List(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, nil
}

func (r *recordingServices) Delete(_ context.Context, _ string) error { return nil }

func (r *recordingServices) Content(_ context.Context, _ string) (string, error) { return "", nil }

func (r *recordingServices) Ingest(_ context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ingested = append(r.ingested, documentID)
	return nil
}

func (r *recordingServices) Status(_ context.Context, documentID string) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{DocumentID: documentID}, nil
}

func (r *recordingServices) RecoverStale(_ context.Context) (int, error) { return 0, nil }

func (r *recordingServices) uploadedFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uploads...)
}

func (r *recordingServices) ingestedDocs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ingested...)
}

func TestRun_RejectsMissingDirectory(t *testing.T) {
	services := &recordingServices{}
	watcher := New(services, services, "local")

	err := watcher.Run(context.Background(), "/nonexistent/dir")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch dir")
}

func TestRun_RejectsFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	services := &recordingServices{}
	watcher := New(services, services, "local")

	err := watcher.Run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestRun_IngestsExistingPDFsOnStartup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), []byte("pdf"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UPPER.PDF"), []byte("pdf"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0600))

	services := &recordingServices{}
	watcher := New(services, services, "local")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx, dir) }()

	require.Eventually(t, func() bool {
		return len(services.uploadedFiles()) == 2
	}, 2*time.Second, 10*time.Millisecond, "startup sweep should pick up both PDFs")

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	assert.ElementsMatch(t, []string{"report.pdf", "UPPER.PDF"}, services.uploadedFiles())
	assert.ElementsMatch(t, []string{"doc-report.pdf", "doc-UPPER.PDF"}, services.ingestedDocs())
}

func TestRun_PicksUpNewFileAfterSettle(t *testing.T) {
	dir := t.TempDir()

	services := &recordingServices{}
	watcher := New(services, services, "local")
	watcher.settle = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx, dir) }()

	// Give the watcher a moment to register before creating the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dropped.pdf"), []byte("pdf"), 0600))

	require.Eventually(t, func() bool {
		return len(services.uploadedFiles()) == 1
	}, 3*time.Second, 10*time.Millisecond, "new PDF should be ingested after it settles")

	assert.Equal(t, []string{"dropped.pdf"}, services.uploadedFiles())

	cancel()
	<-done
}

func TestRun_IgnoresNonPDFEvents(t *testing.T) {
	dir := t.TempDir()

	services := &recordingServices{}
	watcher := New(services, services, "local")
	watcher.settle = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx, dir) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0600))

	// Long enough for a settle timer to have fired, had one been armed.
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, services.uploadedFiles())

	cancel()
	<-done
}

func TestIsPDF(t *testing.T) {
	assert.True(t, isPDF("report.pdf"))
	assert.True(t, isPDF("REPORT.PDF"))
	assert.True(t, isPDF("/some/dir/a.Pdf"))
	assert.False(t, isPDF("report.txt"))
	assert.False(t, isPDF("pdf"))
	assert.False(t, isPDF("archive.pdf.zip"))
}

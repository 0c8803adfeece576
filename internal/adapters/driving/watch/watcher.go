// Package watch ingests PDF files dropped into a watched directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
	"github.com/halcyon-labs/docq-cli/internal/logger"
)

// DefaultSettleDelay is how long a file must be quiet before it is
// picked up. Editors and downloads write in bursts; ingesting on the
// first event would read a partial file.
const DefaultSettleDelay = 2 * time.Second

// Watcher monitors a directory and ingests PDFs as they appear.
type Watcher struct {
	documents driving.DocumentService
	ingestor  driving.Ingestor
	ownerID   string
	settle    time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a directory watcher that uploads on behalf of ownerID.
func New(documents driving.DocumentService, ingestor driving.Ingestor, ownerID string) *Watcher {
	return &Watcher{
		documents: documents,
		ingestor:  ingestor,
		ownerID:   ownerID,
		settle:    DefaultSettleDelay,
		timers:    make(map[string]*time.Timer),
	}
}

// Run watches dir until the context is cancelled. Existing PDFs in the
// directory are ingested on startup; new and rewritten files are picked
// up after they settle.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch dir: %s is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Pick up whatever is already there.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read watch dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isPDF(entry.Name()) {
			continue
		}
		w.ingestFile(ctx, filepath.Join(dir, entry.Name()))
	}

	logger.Info("Watching %s for new PDF files", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isPDF(event.Name) {
				continue
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				w.schedule(ctx, event.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// schedule (re)arms the settle timer for a path. Each write event
// pushes ingestion back until the file has been quiet for the settle
// duration.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settle)
		return
	}

	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.ingestFile(ctx, path)
	})
}

// ingestFile uploads and ingests a single file. Failures are logged
// rather than returned so one bad file does not stop the watch loop.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read %s: %v", path, err)
		return
	}

	doc, err := w.documents.Upload(ctx, w.ownerID, filepath.Base(path), data)
	if err != nil {
		logger.Warn("Failed to upload %s: %v", path, err)
		return
	}

	logger.Info("Uploaded %s as document %s", filepath.Base(path), doc.ID)

	if err := w.ingestor.Ingest(ctx, doc.ID); err != nil {
		logger.Warn("Failed to ingest %s: %v", doc.ID, err)
		return
	}

	logger.Info("Ingested document %s", doc.ID)
}

// isPDF reports whether the path looks like a PDF file.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
